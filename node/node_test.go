package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/nodeql/ast"
	"github.com/shyptr/nodeql/errs"
	"github.com/shyptr/nodeql/node"
	"github.com/shyptr/nodeql/schema"
)

type post struct {
	title string
	child *comment
}

func (p *post) Title() string   { return p.title }
func (p *post) Comment() *comment { return p.child }

type comment struct {
	content string
}

func (c *comment) Content() string { return c.content }
func (c *comment) Letters() string { return c.content }

func newRegistry() (*schema.Registry, *schema.NodeType) {
	reg := schema.NewRegistry()
	commentType := schema.NewNodeType("Comment", nil).
		Field(schema.ScalarString, "content").
		Field(schema.StringNodeType, "letters").
		Build()
	reg.RegisterNodeType(commentType)

	postType := schema.NewNodeType("Post", nil).
		Field(schema.ScalarString, "title").
		Field("Comment", "comment").
		Build()
	reg.RegisterNodeType(postType)
	return reg, postType
}

func TestResolve_ScalarLeaf(t *testing.T) {
	reg, postType := newRegistry()
	n := node.New(&post{title: "hi"}, nil, postType)

	res, err := node.Resolve(reg, n, &ast.Call{Identifier: "title"})
	require.NoError(t, err)
	assert.True(t, res.Scalar)
	assert.Equal(t, "hi", res.Value)
}

func TestResolve_UnknownFieldError(t *testing.T) {
	reg, postType := newRegistry()
	n := node.New(&post{title: "hi"}, nil, postType)

	_, err := node.Resolve(reg, n, &ast.Call{Identifier: "nope"})
	require.Error(t, err)
	var fe *errs.FieldNotDefinedError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Post", fe.TypeName)
	assert.Equal(t, "nope", fe.FieldName)
}

func TestResolve_ChainingPastAPlainScalarIsAStructuralError(t *testing.T) {
	reg, postType := newRegistry()
	n := node.New(&post{title: "hi"}, nil, postType)

	call := &ast.Call{Identifier: "title", Chained: &ast.Call{Identifier: "upper"}}
	_, err := node.Resolve(reg, n, call)
	require.Error(t, err)
	var se *errs.StructuralError
	require.ErrorAs(t, err, &se)
}

func TestResolve_ObjectFieldReturnsUnresolvedResultForTheExecutor(t *testing.T) {
	reg, postType := newRegistry()
	child := &comment{content: "I agree"}
	n := node.New(&post{title: "hi", child: child}, nil, postType)

	res, err := node.Resolve(reg, n, &ast.Call{Identifier: "comment"})
	require.NoError(t, err)
	assert.False(t, res.Scalar)
	assert.Equal(t, child, res.Value)
	assert.Equal(t, "Comment", res.NodeType.SchemaName)
}

func TestResolve_ScalarWrapperChainTerminatesAsALeaf(t *testing.T) {
	reg, postType := newRegistry()
	child := &comment{content: "I agree"}
	n := node.New(&post{title: "hi", child: child}, nil, postType)

	call := &ast.Call{
		Identifier: "comment",
		Chained: &ast.Call{
			Identifier: "letters",
			Chained: &ast.Call{
				Identifier: "from",
				Arguments:  []ast.Literal{{Kind: ast.IntLiteral, Int: 3}},
				Chained: &ast.Call{
					Identifier: "for",
					Arguments:  []ast.Literal{{Kind: ast.IntLiteral, Int: 2}},
				},
			},
		},
	}
	res, err := node.Resolve(reg, n, call)
	require.NoError(t, err)
	assert.True(t, res.Scalar)
	assert.Equal(t, "gr", res.Value)
}
