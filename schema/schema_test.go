package schema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/nodeql/ast"
	"github.com/shyptr/nodeql/schema"
)

type widget struct {
	name string
}

func (w *widget) Name() string             { return w.name }
func (w *widget) RepeatName(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += w.name
	}
	return out
}

func TestRegistry_RegisterAndLookupNodeType(t *testing.T) {
	reg := schema.NewRegistry()
	nt := schema.NewNodeType("Widget", nil).
		Field(schema.ScalarString, "name", "the widget's name").
		Build()
	reg.RegisterNodeType(nt)

	got, err := reg.Lookup("Widget")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.SchemaName)

	_, err = reg.Lookup("Missing")
	require.Error(t, err)
}

func TestRegistry_DuplicateNodeTypePanics(t *testing.T) {
	reg := schema.NewRegistry()
	build := func() *schema.NodeType { return schema.NewNodeType("Widget", nil).Build() }
	reg.RegisterNodeType(build())
	assert.Panics(t, func() { reg.RegisterNodeType(build()) })
}

func TestRegistry_LookupFieldWalksParentChain(t *testing.T) {
	reg := schema.NewRegistry()
	base := schema.NewNodeType("Base", nil).
		Field(schema.ScalarString, "name").
		Build()
	reg.RegisterNodeType(base)

	derived := schema.NewNodeType("Derived", base).
		Field(schema.ScalarNumber, "count").
		Build()
	reg.RegisterNodeType(derived)

	fd, err := reg.LookupField(derived, "count")
	require.NoError(t, err)
	assert.Equal(t, schema.ScalarNumber, fd.DeclaredType)

	fd, err = reg.LookupField(derived, "name")
	require.NoError(t, err)
	assert.Equal(t, schema.ScalarString, fd.DeclaredType)

	_, err = reg.LookupField(derived, "nope")
	require.Error(t, err)
}

func TestRegistry_FieldOverrideIsFirstMatchWins(t *testing.T) {
	reg := schema.NewRegistry()
	base := schema.NewNodeType("Base", nil).
		Field(schema.ScalarString, "label").
		Build()
	reg.RegisterNodeType(base)

	derived := schema.NewNodeType("Derived", base).
		FieldFunc(schema.ScalarString, "label", func(_ *schema.ResolveContext, _ interface{}, _ []ast.Literal) (interface{}, error) {
			return "overridden", nil
		}).
		Build()
	reg.RegisterNodeType(derived)

	fd, err := reg.LookupField(derived, "label")
	require.NoError(t, err)
	val, err := fd.Resolve(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "overridden", val)
}

func TestBuilder_DefaultResolverDispatchesToMethod(t *testing.T) {
	reg := schema.NewRegistry()
	nt := schema.NewNodeType("Widget", nil).
		Field(schema.ScalarString, "name").
		Build()
	reg.RegisterNodeType(nt)

	fd, err := reg.LookupField(nt, "name")
	require.NoError(t, err)

	val, err := fd.Resolve(nil, &widget{name: "sprocket"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sprocket", val)
}

func TestBuilder_DefaultResolverConvertsArguments(t *testing.T) {
	reg := schema.NewRegistry()
	nt := schema.NewNodeType("Widget", nil).
		Field(schema.ScalarString, "repeat_name").
		Build()
	reg.RegisterNodeType(nt)

	fd, err := reg.LookupField(nt, "repeat_name")
	require.NoError(t, err)

	val, err := fd.Resolve(nil, &widget{name: "ab"}, []ast.Literal{{Kind: ast.IntLiteral, Int: 3}})
	require.NoError(t, err)
	assert.Equal(t, "ababab", val)

	_, err = fd.Resolve(nil, &widget{name: "ab"}, []ast.Literal{{Kind: ast.StringLiteral, Str: "x"}})
	assert.Error(t, err, "a string literal cannot convert to an int parameter")
}

func TestScalar_DateChaining(t *testing.T) {
	reg := schema.NewRegistry()
	dt, err := reg.Lookup(schema.DateNodeType)
	require.NoError(t, err)

	fd, err := reg.LookupField(dt, "year")
	require.NoError(t, err)
	val, err := fd.Resolve(nil, time.Date(2010, time.January, 4, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, 2010, val)

	fd, err = reg.LookupField(dt, "minus_days")
	require.NoError(t, err)
	val, err = fd.Resolve(nil, time.Date(2010, time.January, 4, 0, 0, 0, 0, time.UTC),
		[]ast.Literal{{Kind: ast.IntLiteral, Int: 200}})
	require.NoError(t, err)
	shifted := val.(time.Time)
	assert.Equal(t, 2009, shifted.Year())
}

func TestScalar_StringChaining(t *testing.T) {
	reg := schema.NewRegistry()
	st, err := reg.Lookup(schema.StringNodeType)
	require.NoError(t, err)

	fromFd, err := reg.LookupField(st, "from")
	require.NoError(t, err)
	after, err := fromFd.Resolve(nil, "I agree", []ast.Literal{{Kind: ast.IntLiteral, Int: 3}})
	require.NoError(t, err)
	assert.Equal(t, "gree", after)

	forFd, err := reg.LookupField(st, "for")
	require.NoError(t, err)
	snippet, err := forFd.Resolve(nil, after, []ast.Literal{{Kind: ast.IntLiteral, Int: 2}})
	require.NoError(t, err)
	assert.Equal(t, "gr", snippet)
}
