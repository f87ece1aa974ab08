package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/shyptr/nodeql/ast"
)

// Builder is the field-declaration DSL for node-type authors (spec.md §6):
// each node type is declared with an ordered list of field declarations of
// the form field(typed_tag, field_name, description?). It mirrors the
// teacher's Object(name, type, desc).FieldFunc(name, resolver, desc)
// builder chain in schemabuilder/schema.go, simplified: no GraphQL type
// system, only scalar tags and NodeType-by-name references.
type Builder struct {
	nt *NodeType
}

// NewNodeType starts building a NodeType. parent, when non-nil, is the
// NodeType whose own_fields this type inherits (spec.md §4.2).
func NewNodeType(schemaName string, parent *NodeType) *Builder {
	return &Builder{nt: &NodeType{
		SchemaName: schemaName,
		OwnFields:  map[string]*FieldDef{},
		Parent:     parent,
	}}
}

// Field attaches a field of the given declared type whose resolver
// defaults to invoking the same-named method (PascalCase) on the wrapped
// target entity, per spec.md §6's DSL contract. description is optional;
// pass at most one string.
func (b *Builder) Field(typedTag, name string, description ...string) *Builder {
	desc := ""
	if len(description) > 0 {
		desc = description[0]
	}
	b.nt.OwnFields[name] = &FieldDef{
		Name:         name,
		DeclaredType: typedTag,
		Description:  desc,
		Resolve:      defaultResolver(name),
	}
	return b
}

// FieldFunc attaches a field with an explicit resolver, overriding the
// default method-dispatch behavior of Field.
func (b *Builder) FieldFunc(typedTag, name string, resolve ResolveFunc, description ...string) *Builder {
	desc := ""
	if len(description) > 0 {
		desc = description[0]
	}
	b.nt.OwnFields[name] = &FieldDef{
		Name:         name,
		DeclaredType: typedTag,
		Description:  desc,
		Resolve:      resolve,
	}
	return b
}

// ConnectionFor marks this node type as a collection/edge wrapper around
// element, per spec.md §4.2's connection convention.
func (b *Builder) ConnectionFor(element *NodeType) *Builder {
	b.nt.ConnectionFor = element
	return b
}

// Build finalizes and returns the NodeType. Callers still pass it to
// Registry.RegisterNodeType to make it queryable.
func (b *Builder) Build() *NodeType {
	return b.nt
}

// defaultResolver synthesizes a resolver that invokes the method named
// (after snake_case-to-PascalCase conversion) fieldName on the wrapped
// target via reflection, passing the call's arguments positionally —
// the declarative-builder replacement for the source's method-missing
// dispatch (spec.md §9 design note).
func defaultResolver(fieldName string) ResolveFunc {
	methodName := toPascalCase(fieldName)
	return func(rctx *ResolveContext, target interface{}, args []ast.Literal) (interface{}, error) {
		v := reflect.ValueOf(target)
		m := v.MethodByName(methodName)
		if !m.IsValid() {
			return nil, fmt.Errorf("target %T has no method %s for field %q", target, methodName, fieldName)
		}
		mtype := m.Type()
		if mtype.NumIn() != len(args) {
			return nil, fmt.Errorf("field %q expects %d argument(s), got %d", fieldName, mtype.NumIn(), len(args))
		}
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			val, err := convertLiteral(a, mtype.In(i))
			if err != nil {
				return nil, fmt.Errorf("field %q argument %d: %w", fieldName, i, err)
			}
			in[i] = val
		}
		out := m.Call(in)
		switch len(out) {
		case 1:
			return out[0].Interface(), nil
		case 2:
			if errv := out[1].Interface(); errv != nil {
				return nil, errv.(error)
			}
			return out[0].Interface(), nil
		default:
			return nil, fmt.Errorf("method %s for field %q must return (value) or (value, error)", methodName, fieldName)
		}
	}
}

func convertLiteral(lit ast.Literal, t reflect.Type) (reflect.Value, error) {
	switch lit.Kind {
	case ast.IntLiteral:
		v := reflect.New(t).Elem()
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v.SetInt(lit.Int)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v.SetUint(uint64(lit.Int))
		default:
			return reflect.Value{}, fmt.Errorf("cannot pass integer literal to parameter of type %s", t)
		}
		return v, nil
	case ast.StringLiteral:
		if t.Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("cannot pass string literal to parameter of type %s", t)
		}
		return reflect.ValueOf(lit.Str).Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("unknown literal kind")
	}
}

// toPascalCase converts a snake_case field name (the convention spec.md's
// query examples use: published_at, minus_days, average_rating) to the
// PascalCase Go method name the default resolver looks up.
func toPascalCase(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
