// Package schema implements the schema registry (C2): node types, their
// declared fields (including inheritance), root calls, and the
// field-declaration DSL node-type authors use to build them (spec.md §6).
package schema

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/shyptr/nodeql/ast"
	"github.com/shyptr/nodeql/errs"
)

// The three scalar tags a FieldDef's DeclaredType may carry directly,
// per spec.md §3's NodeType/FieldDef data model. Any other DeclaredType
// value names a registered NodeType.
const (
	ScalarString  = "string"
	ScalarNumber  = "number"
	ScalarBoolean = "boolean"
)

// ResolveContext carries the opaque, caller-supplied context handle (C5)
// alongside a real context.Context for cancellation, through every
// resolution frame. The engine never inspects Data; it is strictly
// pass-through, mirroring the teacher's own Context wrapper in context.go.
type ResolveContext struct {
	Context context.Context
	Data    interface{}
}

// ResolveFunc resolves one field-level call: given the wrapped target and
// the call's positional scalar arguments, it returns the field's value.
type ResolveFunc func(ctx *ResolveContext, target interface{}, args []ast.Literal) (interface{}, error)

// FieldDef is a single declared field on a NodeType.
type FieldDef struct {
	Name         string `validate:"required"`
	DeclaredType string `validate:"required"` // one of ScalarString/ScalarNumber/ScalarBoolean, or a registered NodeType's SchemaName
	Description  string
	Resolve      ResolveFunc `validate:"required"`
}

// NodeType maps a schema type name to a Go entity type, a set of declared
// fields, an optional parent (for field inheritance, spec.md §4.2), and an
// optional connection pairing for collection/edge wrapper types.
type NodeType struct {
	SchemaName    string `validate:"required"`
	OwnFields     map[string]*FieldDef
	Parent        *NodeType
	ConnectionFor *NodeType // set when this NodeType represents a collection of ConnectionFor elements

	// ScalarWrapper marks engine-provided chainable-scalar node types
	// (Date, String — spec.md §4.3/§9) whose resolved value, once the
	// call chain bottoms out with no further chaining and no
	// sub-selection, is itself the leaf scalar rather than an object to
	// recurse into.
	ScalarWrapper bool
}

// ArgDecl is one declared argument of a RootCall.
type ArgDecl struct {
	Name string `validate:"required"`
	Type string `validate:"required,oneof=string number"` // ScalarString or ScalarNumber
}

// RootCallResolver invokes the root call's resolver with its arguments and
// the query's context, returning one target entity or a slice of them.
type RootCallResolver func(ctx *ResolveContext, args []ast.Literal) (interface{}, error)

// RootCall is a top-level entry point dispatched by name from a Query's
// root calls.
type RootCall struct {
	SchemaName string           `validate:"required"`
	ArgDecls   []ArgDecl        `validate:"dive"`
	ReturnType string           `validate:"required"` // registered NodeType's SchemaName
	Resolve    RootCallResolver `validate:"required"`
}

// Registry is the schema registry (C2): read-only after initialization,
// per spec.md §5.
type Registry struct {
	nodeTypes map[string]*NodeType
	rootCalls map[string]*RootCall
}

var validate = validator.New()

// validateNodeType runs nt's own struct tags (SchemaName required) and, since
// validator does not reach into map values, separately validates every
// FieldDef nt carries (Name/DeclaredType/Resolve required) — catching a
// malformed or partially-built field declaration at registration time rather
// than the first time a query touches it.
func validateNodeType(nt *NodeType) error {
	if err := validate.Struct(nt); err != nil {
		return fmt.Errorf("invalid node type %q: %w", nt.SchemaName, err)
	}
	for name, fd := range nt.OwnFields {
		if err := validate.Struct(fd); err != nil {
			return fmt.Errorf("invalid field %q on node type %q: %w", name, nt.SchemaName, err)
		}
	}
	return nil
}

// validateRootCall runs rc's struct tags: SchemaName/ReturnType/Resolve
// required, and (via the "dive" tag on ArgDecls) each declared argument's
// Name required and Type restricted to a scalar tag a root call argument can
// actually carry.
func validateRootCall(rc *RootCall) error {
	if err := validate.Struct(rc); err != nil {
		return fmt.Errorf("invalid root call %q: %w", rc.SchemaName, err)
	}
	return nil
}

// NewRegistry creates an empty registry and pre-registers the engine's
// built-in chainable-scalar node types (Date, String — spec.md §4.3).
func NewRegistry() *Registry {
	r := &Registry{
		nodeTypes: map[string]*NodeType{},
		rootCalls: map[string]*RootCall{},
	}
	registerBuiltinScalars(r)
	return r
}

// RegisterNodeType adds a node type keyed by its SchemaName. It panics if
// the name is already registered or fails validation — registration is a
// programmer-time concern (spec.md §5: the registry is built once at init).
func (r *Registry) RegisterNodeType(nt *NodeType) *NodeType {
	if err := validateNodeType(nt); err != nil {
		panic(err)
	}
	if _, ok := r.nodeTypes[nt.SchemaName]; ok {
		panic(fmt.Sprintf("schema: duplicate node type %q", nt.SchemaName))
	}
	if nt.OwnFields == nil {
		nt.OwnFields = map[string]*FieldDef{}
	}
	r.nodeTypes[nt.SchemaName] = nt
	return nt
}

// Lookup retrieves a node type by name.
func (r *Registry) Lookup(name string) (*NodeType, error) {
	nt, ok := r.nodeTypes[name]
	if !ok {
		return nil, &errs.TypeNotFoundError{Name: name}
	}
	return nt, nil
}

// RegisterRootCall adds a root call keyed by its SchemaName. It panics on
// duplicate registration, for the same reason RegisterNodeType does.
func (r *Registry) RegisterRootCall(rc *RootCall) *RootCall {
	if err := validateRootCall(rc); err != nil {
		panic(err)
	}
	if _, ok := r.rootCalls[rc.SchemaName]; ok {
		panic(fmt.Sprintf("schema: duplicate root call %q", rc.SchemaName))
	}
	r.rootCalls[rc.SchemaName] = rc
	return rc
}

// ResolveRoot retrieves a root call by name.
func (r *Registry) ResolveRoot(name string) (*RootCall, error) {
	rc, ok := r.rootCalls[name]
	if !ok {
		return nil, &errs.RootCallNotFoundError{Name: name}
	}
	return rc, nil
}

// RootCallNames returns the registered root call names, for introspection.
func (r *Registry) RootCallNames() []string {
	names := make([]string, 0, len(r.rootCalls))
	for name := range r.rootCalls {
		names = append(names, name)
	}
	return names
}

// NodeTypeNames returns the registered node type names, for introspection.
func (r *Registry) NodeTypeNames() []string {
	names := make([]string, 0, len(r.nodeTypes))
	for name := range r.nodeTypes {
		names = append(names, name)
	}
	return names
}

// LookupField resolves a field name against a NodeType's transitive
// own_fields, walking the parent chain: own_fields is searched first,
// then each ancestor's own_fields in turn, first match wins (spec.md
// §4.2's field-inheritance rule, invariant I1).
func (r *Registry) LookupField(nt *NodeType, name string) (*FieldDef, error) {
	for cur := nt; cur != nil; cur = cur.Parent {
		if fd, ok := cur.OwnFields[name]; ok {
			return fd, nil
		}
	}
	return nil, &errs.FieldNotDefinedError{TypeName: nt.SchemaName, FieldName: name}
}
