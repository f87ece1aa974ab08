package schema

import "encoding/base64"

// Edge pairs an element with its cursor, per spec.md §4.2's connection
// convention. It is a generic stand-in for the teacher's own non-generic
// schemabuilder.Edge struct (relay.go), adapted to carry any element type.
// Node/Cursor are exported accessor methods (not fields) so the
// field-declaration DSL's default reflective resolver (schema/builder.go)
// can dispatch "node"/"cursor" the same way it dispatches any other field.
type Edge[T any] struct {
	node   T
	cursor string
}

// NewEdge constructs an Edge.
func NewEdge[T any](node T, cursor string) Edge[T] {
	return Edge[T]{node: node, cursor: cursor}
}

// Node returns the edge's wrapped element.
func (e Edge[T]) Node() T { return e.node }

// Cursor returns the edge's opaque pagination cursor.
func (e Edge[T]) Cursor() string { return e.cursor }

// EncodeCursor matches the teacher's relay.go cursor convention: a
// base64-encoded "arrayconnection:<key>" string.
func EncodeCursor(key string) string {
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + key))
}

const cursorPrefix = "arrayconnection:"

// Collection is a cursor-paginated collection of elements, the runtime
// value behind a connection/edge NodeType (spec.md §4.2). CursorOf converts
// an element to the string used as its edge's cursor (spec.md's examples
// use the stringified primary id, e.g. a comment's id).
type Collection[T any] struct {
	Items    []T
	CursorOf func(T) string
}

// NewCollection builds a Collection, defaulting items to an empty slice so
// Count/Any/Edges behave consistently on a nil input.
func NewCollection[T any](items []T, cursorOf func(T) string) Collection[T] {
	if items == nil {
		items = []T{}
	}
	return Collection[T]{Items: items, CursorOf: cursorOf}
}

// Count implements the conventional "count" field (spec.md §4.2).
func (c Collection[T]) Count() int {
	return len(c.Items)
}

// Any implements the conventional "any" field.
func (c Collection[T]) Any() bool {
	return len(c.Items) > 0
}

// Edges implements the conventional "edges" field.
func (c Collection[T]) Edges() []Edge[T] {
	edges := make([]Edge[T], len(c.Items))
	for i, item := range c.Items {
		cursor := ""
		if c.CursorOf != nil {
			cursor = c.CursorOf(item)
		}
		edges[i] = NewEdge(item, cursor)
	}
	return edges
}

// First implements the "first(n)" pagination call: a collection of the
// same type, filtered to its first n elements.
func (c Collection[T]) First(n int) Collection[T] {
	if n < 0 || n > len(c.Items) {
		n = len(c.Items)
	}
	return Collection[T]{Items: c.Items[:n], CursorOf: c.CursorOf}
}

// After implements the "after(cursor)" pagination call: a collection of
// the same type, filtered to the elements following the one whose cursor
// matches cursor. An unmatched cursor yields an empty collection.
func (c Collection[T]) After(cursor string) Collection[T] {
	for i, item := range c.Items {
		if c.CursorOf != nil && c.CursorOf(item) == cursor {
			return Collection[T]{Items: c.Items[i+1:], CursorOf: c.CursorOf}
		}
	}
	return Collection[T]{Items: nil, CursorOf: c.CursorOf}
}

// RegisterConnectionType builds and registers the pair of NodeTypes a
// connection needs: the Edge type ({cursor, node: elementType}) and the
// connection type itself ({count, any, edges, first(n), after(cursor)}),
// grounded on the teacher's buildConnectionType in schemabuilder/relay.go
// adapted to this engine's explicit NodeType/FieldDef model. The connection
// type it registers carries only those five fields; it adds no
// collection-level custom fields (e.g. average_rating).
func RegisterConnectionType(r *Registry, connectionName, edgeName string, elementType *NodeType) (connection, edge *NodeType) {
	edge = NewNodeType(edgeName, nil).
		Field(ScalarString, "cursor").
		Field(elementType.SchemaName, "node").
		Build()
	r.RegisterNodeType(edge)

	connection = NewNodeType(connectionName, nil).
		Field(ScalarNumber, "count").
		Field(ScalarBoolean, "any").
		Field(edgeName, "edges").
		Field(connectionName, "first").
		Field(connectionName, "after").
		ConnectionFor(elementType).
		Build()
	r.RegisterNodeType(connection)
	return connection, edge
}
