// Package errs defines the typed error surface of the query engine.
package errs

import "fmt"

// SyntaxError is raised by the parser when the input cannot be tokenized or
// violates the grammar. Line and Column are 1-based and refer to the first
// offending character; Excerpt is a bounded-width slice of the offending
// line containing the offending text verbatim.
type SyntaxError struct {
	Line    int
	Column  int
	Excerpt string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d, %d: %s (near %q)", e.Line, e.Column, e.Message, e.Excerpt)
}

// FieldNotDefinedError is raised when a FieldSel identifier does not resolve
// against the current NodeType's transitive own_fields (invariant I1).
type FieldNotDefinedError struct {
	TypeName  string
	FieldName string
}

func (e *FieldNotDefinedError) Error() string {
	return fmt.Sprintf("field %q is not defined on type %q", e.FieldName, e.TypeName)
}

// FragmentNotDefinedError is raised when a FragmentRef identifier has no
// matching entry in Query.Fragments (invariant I2).
type FragmentNotDefinedError struct {
	Identifier string
}

func (e *FragmentNotDefinedError) Error() string {
	return fmt.Sprintf("fragment %q is not defined", e.Identifier)
}

// TypeNotFoundError is raised by the schema registry when looking up a
// NodeType by name that was never registered.
type TypeNotFoundError struct {
	Name string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("type %q is not registered", e.Name)
}

// RootCallNotFoundError is raised when a query's root call identifier has
// no matching entry in the schema registry.
type RootCallNotFoundError struct {
	Name string
}

func (e *RootCallNotFoundError) Error() string {
	return fmt.Sprintf("root call %q is not registered", e.Name)
}

// AliasCollisionError is raised when two selections in the same selection
// set would produce the same output key (invariant I3).
type AliasCollisionError struct {
	Key string
}

func (e *AliasCollisionError) Error() string {
	return fmt.Sprintf("alias or field name %q is used more than once in the same selection set", e.Key)
}

// StructuralError covers the remaining C3 structural violations: sub-selections
// on a scalar leaf, chaining past a value that doesn't support it, and similar.
type StructuralError struct {
	Message string
}

func (e *StructuralError) Error() string {
	return "structural error: " + e.Message
}

// MultiError aggregates several errors produced while assembling a result.
// The first entry is always the abort cause: no error here is ever
// suppressed to produce a partial result tree.
type MultiError []error

func (m MultiError) Error() string {
	if len(m) == 0 {
		return "<no errors>"
	}
	s := m[0].Error()
	for _, e := range m[1:] {
		s += "; " + e.Error()
	}
	return s
}
