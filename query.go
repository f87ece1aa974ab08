// Package nodeql is the public entry point (spec.md §6): parse a query
// once, then execute it against a schema.Registry as many times as needed.
package nodeql

import (
	"github.com/shyptr/nodeql/ast"
	"github.com/shyptr/nodeql/exec"
	"github.com/shyptr/nodeql/parser"
	"github.com/shyptr/nodeql/schema"
)

// Query is a parsed query bound to the registry and context it will
// execute against. Parsing and execution are separate steps (spec.md §6):
// constructing a Query never touches a resolver.
type Query struct {
	doc  *ast.Query
	reg  *schema.Registry
	rctx *schema.ResolveContext
}

// Parse parses source and binds the result to reg and rctx for later
// execution; the registry is not consulted while parsing. This is the engine's "Query(text, context)"
// constructor (spec.md §6); it is named Parse rather than Query because Go
// does not allow a function and a type to share a name in the same package.
func Parse(source string, reg *schema.Registry, rctx *schema.ResolveContext) (*Query, error) {
	doc, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return &Query{doc: doc, reg: reg, rctx: rctx}, nil
}

// Result executes the query and returns its assembled result mapping.
// Repeated calls re-execute every root call from scratch — the engine
// caches nothing across executions (spec.md §5).
func (q *Query) Result() (*exec.OrderedMap, error) {
	return exec.New(q.reg).Execute(q.doc, q.rctx)
}

// AsResult is an alias for Result, matching the source API's two spellings
// (spec.md §6: `query.result()` / `query.as_result()`).
func (q *Query) AsResult() (*exec.OrderedMap, error) {
	return q.Result()
}

// FragmentInfo is the metadata query.Fragments() exposes for one fragment
// definition (spec.md §6).
type FragmentInfo struct {
	Identifier string
	FieldCount int
}

// Fragments returns metadata for every fragment defined in the query,
// keyed by identifier (spec.md §8's parser invariant: accessible via
// query.fragments[identifier] with matching identifier and field count).
func (q *Query) Fragments() map[string]FragmentInfo {
	out := make(map[string]FragmentInfo, len(q.doc.Fragments))
	for id, frag := range q.doc.Fragments {
		out[id] = FragmentInfo{Identifier: frag.Identifier, FieldCount: len(frag.Fields)}
	}
	return out
}
