// Package demo wires a small post/comment/like domain into a schema
// Registry, the same blog-post domain spec.md §8's scenarios are written
// against. It exists for the test suite and the cmd/nodeql CLI to share one
// concrete schema, grounded on the teacher's example/starwars/starwars.go
// (a demo domain wired into a schema for the teacher's own server example).
package demo

import (
	"strconv"
	"time"

	"github.com/shyptr/nodeql/schema"
)

// Post is a blog post: the root entity spec.md §8's scenarios query.
type Post struct {
	id          int64
	title       string
	content     string
	publishedAt time.Time
	comments    []*Comment
	likes       []*Like
}

func (p *Post) Id() int64          { return p.id }
func (p *Post) Title() string      { return p.title }
func (p *Post) Content() string    { return p.content }
func (p *Post) PublishedAt() time.Time { return p.publishedAt }

// Comments exposes the post's comments as a cursor-paginated collection
// (spec.md §4.2's connection convention), cursored by the comment's own id
// (not base64-wrapped — spec.md §8 scenario 5 expects a plain "444").
func (p *Post) Comments() schema.Collection[*Comment] {
	return schema.NewCollection(p.comments, cursorOf)
}

// Likes is a plain multi-valued field (no pagination), exercising the
// executor's ordinary slice-of-NodeType path alongside the connection path.
func (p *Post) Likes() []*Like { return p.likes }

// Comment is a single comment on a Post.
type Comment struct {
	id      int64
	content string
	rating  int64
	post    *Post
}

func (c *Comment) Id() int64      { return c.id }
func (c *Comment) Content() string { return c.content }
func (c *Comment) Rating() int64  { return c.rating }

// Letters exposes the comment's content through the String scalar-chaining
// node type (spec.md §8 scenario 6: `letters.from(3).for(2)`).
func (c *Comment) Letters() string { return c.content }

// Post closes the cycle spec.md §9 calls out (Comment→Post→Comments),
// resolved safely because node-type references are by name, not by pointer.
func (c *Comment) Post() *Post { return c.post }

// Like is a like on a Post; its only declared field is its id.
type Like struct {
	id int64
}

func (l *Like) Id() int64 { return l.id }

func cursorOf(c *Comment) string {
	return strconv.FormatInt(c.id, 10)
}
