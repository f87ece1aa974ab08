// Package introspection exposes a schema Registry's own node types and root
// calls as an ordinary queryable surface (C6), grounded on the teacher's
// internal/introspection/introspection.go: a dedicated __Schema/__Type/
// __Field node-type family built by reading the same registry structures
// the rest of the engine reads, with no separate shadow schema. Unlike the
// teacher's GraphQL-spec-shaped introspection (kinds, interfaces, unions,
// directives), this engine only has node types, scalar tags, and root
// calls, so the introspected shape is reduced to that.
package introspection

import (
	"sort"

	"github.com/shyptr/nodeql/ast"
	"github.com/shyptr/nodeql/schema"
)

const (
	SchemaTypeName   = "__Schema"
	TypeTypeName     = "__Type"
	FieldTypeName    = "__Field"
	RootCallTypeName = "__RootCall"
	RootCallName     = "__schema"
)

// typeInfo is the runtime entity behind __Type: a registered NodeType named
// by the field-declaration DSL it was built with.
type typeInfo struct {
	reg *schema.Registry
	nt  *schema.NodeType
}

func (t typeInfo) Name() string { return t.nt.SchemaName }

// Fields lists the NodeType's transitive own_fields (its own plus every
// ancestor's, first-match-wins order — spec.md §4.2), sorted by name for a
// deterministic introspection result.
func (t typeInfo) Fields() []fieldInfo {
	seen := map[string]bool{}
	var out []fieldInfo
	for cur := t.nt; cur != nil; cur = cur.Parent {
		for name, fd := range cur.OwnFields {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, fieldInfo{fd: fd})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].fd.Name < out[j].fd.Name })
	return out
}

// fieldInfo is the runtime entity behind __Field.
type fieldInfo struct {
	fd *schema.FieldDef
}

func (f fieldInfo) Name() string        { return f.fd.Name }
func (f fieldInfo) Type() string        { return f.fd.DeclaredType }
func (f fieldInfo) Description() string { return f.fd.Description }

// rootCallInfo is the runtime entity behind __RootCall.
type rootCallInfo struct {
	rc *schema.RootCall
}

func (r rootCallInfo) Name() string       { return r.rc.SchemaName }
func (r rootCallInfo) ReturnType() string { return r.rc.ReturnType }

// schemaInfo is the runtime entity behind __Schema, the sole value the
// __schema() root call ever produces.
type schemaInfo struct {
	reg *schema.Registry
}

func (s schemaInfo) Types() []typeInfo {
	names := s.reg.NodeTypeNames()
	sort.Strings(names)
	out := make([]typeInfo, 0, len(names))
	for _, name := range names {
		nt, err := s.reg.Lookup(name)
		if err != nil {
			continue
		}
		out = append(out, typeInfo{reg: s.reg, nt: nt})
	}
	return out
}

func (s schemaInfo) RootCalls() []rootCallInfo {
	names := s.reg.RootCallNames()
	sort.Strings(names)
	out := make([]rootCallInfo, 0, len(names))
	for _, name := range names {
		rc, err := s.reg.ResolveRoot(name)
		if err != nil {
			continue
		}
		out = append(out, rootCallInfo{rc: rc})
	}
	return out
}

// Register builds the __Schema/__Type/__Field/__RootCall node types and the
// __schema() root call against reg, making the registry's own structure
// queryable the same way any other node type is (spec.md §4.6).
func Register(reg *schema.Registry) {
	fieldType := schema.NewNodeType(FieldTypeName, nil).
		Field(schema.ScalarString, "name").
		Field(schema.ScalarString, "type").
		Field(schema.ScalarString, "description").
		Build()
	reg.RegisterNodeType(fieldType)

	rootCallType := schema.NewNodeType(RootCallTypeName, nil).
		Field(schema.ScalarString, "name").
		Field(schema.ScalarString, "return_type").
		Build()
	reg.RegisterNodeType(rootCallType)

	typeType := schema.NewNodeType(TypeTypeName, nil).
		Field(schema.ScalarString, "name").
		Field(FieldTypeName, "fields").
		Build()
	reg.RegisterNodeType(typeType)

	schemaType := schema.NewNodeType(SchemaTypeName, nil).
		Field(TypeTypeName, "types").
		Field(RootCallTypeName, "root_calls").
		Build()
	reg.RegisterNodeType(schemaType)

	reg.RegisterRootCall(&schema.RootCall{
		SchemaName: RootCallName,
		ReturnType: SchemaTypeName,
		Resolve: func(_ *schema.ResolveContext, _ []ast.Literal) (interface{}, error) {
			return schemaInfo{reg: reg}, nil
		},
	})
}
