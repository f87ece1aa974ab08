package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/shyptr/nodeql/ast"
	"github.com/shyptr/nodeql/introspection"
	"github.com/shyptr/nodeql/schema"
)

// Node type names for the demo schema.
const (
	PostTypeName    = "Post"
	CommentTypeName = "Comment"
	LikeTypeName    = "Like"
	ContextTypeName = "Context"
	CommentConnName = "CommentConnection"
	CommentEdgeName = "CommentEdge"
)

// dataset holds the fixture data spec.md §8's scenarios are written
// against: Post(id=123, ...) with Comments 444/445 and Likes 991/992.
type dataset struct {
	postsByID    map[int64]*Post
	commentsByID map[int64]*Comment
}

func newDataset() *dataset {
	post := &Post{
		id:          123,
		title:       "My great post",
		content:     "So many great things",
		publishedAt: time.Date(2010, time.January, 4, 0, 0, 0, 0, time.UTC),
	}
	agree := &Comment{id: 444, content: "I agree", rating: 5, post: post}
	disagree := &Comment{id: 445, content: "I disagree", rating: 1, post: post}
	post.comments = []*Comment{agree, disagree}
	post.likes = []*Like{{id: 991}, {id: 992}}

	return &dataset{
		postsByID: map[int64]*Post{post.id: post},
		commentsByID: map[int64]*Comment{
			agree.id:    agree,
			disagree.id: disagree,
		},
	}
}

// NewRegistry builds the demo schema registry: the Post/Comment/Like node
// types, the CommentConnection/CommentEdge pair, the Context node type, the
// introspection node types (C6), and the post/comment/context root calls,
// wired against a fixed in-memory dataset matching spec.md §8's scenarios.
func NewRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	data := newDataset()

	likeType := schema.NewNodeType(LikeTypeName, nil).
		Field(schema.ScalarNumber, "id", "the like's id").
		Build()
	reg.RegisterNodeType(likeType)

	commentType := schema.NewNodeType(CommentTypeName, nil).
		Field(schema.ScalarNumber, "id", "the comment's id").
		Field(schema.ScalarString, "content", "the comment's text").
		Field(schema.ScalarNumber, "rating", "the comment's rating, 1-5").
		Field(schema.StringNodeType, "letters", "the comment's text, as a chainable string").
		Field(PostTypeName, "post", "the post this comment belongs to").
		Build()
	reg.RegisterNodeType(commentType)

	schema.RegisterConnectionType(reg, CommentConnName, CommentEdgeName, commentType)

	postType := schema.NewNodeType(PostTypeName, nil).
		Field(schema.ScalarNumber, "id", "the post's id").
		Field(schema.ScalarString, "title", "the post's title").
		Field(schema.ScalarString, "content", "the post's body text").
		Field(schema.DateNodeType, "published_at", "when the post was published").
		Field(CommentConnName, "comments", "a cursor-paginated view of the post's comments").
		Field(LikeTypeName, "likes", "the post's likes").
		Build()
	reg.RegisterNodeType(postType)

	contextType := schema.NewNodeType(ContextTypeName, nil).
		Field(schema.ScalarString, "requester", "who issued the query").
		Field(schema.ScalarString, "locale", "the requester's locale").
		Build()
	reg.RegisterNodeType(contextType)

	registerRootCalls(reg, data)
	introspection.Register(reg)

	return reg
}

func registerRootCalls(reg *schema.Registry, data *dataset) {
	reg.RegisterRootCall(&schema.RootCall{
		SchemaName: "post",
		ArgDecls:   []schema.ArgDecl{{Name: "id", Type: schema.ScalarNumber}},
		ReturnType: PostTypeName,
		Resolve: func(_ *schema.ResolveContext, args []ast.Literal) (interface{}, error) {
			if len(args) != 1 || args[0].Kind != ast.IntLiteral {
				return nil, fmt.Errorf("post: expects a single integer id argument")
			}
			p, ok := data.postsByID[args[0].Int]
			if !ok {
				return nil, fmt.Errorf("post: no post with id %d", args[0].Int)
			}
			return p, nil
		},
	})

	reg.RegisterRootCall(&schema.RootCall{
		SchemaName: "comment",
		ArgDecls:   []schema.ArgDecl{{Name: "id", Type: schema.ScalarNumber}},
		ReturnType: CommentTypeName,
		Resolve: func(_ *schema.ResolveContext, args []ast.Literal) (interface{}, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("comment: expects at least one id argument")
			}
			out := make([]*Comment, len(args))
			for i, a := range args {
				if a.Kind != ast.IntLiteral {
					return nil, fmt.Errorf("comment: argument %d must be an integer id", i)
				}
				c, ok := data.commentsByID[a.Int]
				if !ok {
					return nil, fmt.Errorf("comment: no comment with id %d", a.Int)
				}
				out[i] = c
			}
			return out, nil
		},
	})

	reg.RegisterRootCall(&schema.RootCall{
		SchemaName: "context",
		ReturnType: ContextTypeName,
		Resolve: func(rctx *schema.ResolveContext, args []ast.Literal) (interface{}, error) {
			if len(args) != 0 {
				return nil, fmt.Errorf("context: expects no arguments")
			}
			return rctx.Data, nil
		},
	})
}

// NewContext builds a ResolveContext carrying a RequestContext, for tests
// and the CLI to hand to the executor.
func NewContext(requester, locale string) *schema.ResolveContext {
	return &schema.ResolveContext{
		Context: context.Background(),
		Data:    NewRequestContext(requester, locale),
	}
}
