// Package exec implements the Executor (C4): it dispatches a Query's root
// calls, wraps each resolved entity in a node.Node, and recursively walks
// selection sets to assemble the ordered result tree spec.md §4.4 describes.
package exec

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/shyptr/nodeql/ast"
	"github.com/shyptr/nodeql/errs"
	"github.com/shyptr/nodeql/node"
	"github.com/shyptr/nodeql/schema"
)

// Logger receives execution diagnostics. The engine has no logging library
// wired into its execution path by default (the teacher's own
// execution/execute.go carries none either); Executor exposes this
// injectable seam so a host application can plug in the logging library it
// already uses (e.g. logrus, zap) without the engine depending on one.
type Logger interface {
	Logf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Logf(string, ...interface{}) {}

// Executor evaluates queries against a fixed schema Registry.
type Executor struct {
	Registry *schema.Registry
	Logger   Logger
}

// New builds an Executor bound to reg, logging nowhere until a Logger is
// assigned.
func New(reg *schema.Registry) *Executor {
	return &Executor{Registry: reg, Logger: noopLogger{}}
}

func (e *Executor) logf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Logf(format, args...)
	}
}

// Execute runs every root call in q against the bound registry and returns
// the assembled result tree. Per spec.md §7, execution aborts on the first
// error encountered — there are no partial results — and the error is
// reported as a single-entry errs.MultiError so callers always see the same
// error shape regardless of where the query failed.
func (e *Executor) Execute(q *ast.Query, rctx *schema.ResolveContext) (*OrderedMap, error) {
	result := NewOrderedMap()
	for i := range q.RootCalls {
		call := &q.RootCalls[i]
		e.logf("executing root call %q", call.Identifier)
		if err := e.executeRootCall(call, q, rctx, result); err != nil {
			e.logf("root call %q failed: %v", call.Identifier, err)
			return nil, errs.MultiError{err}
		}
	}
	return result, nil
}

func (e *Executor) executeRootCall(call *ast.Call, q *ast.Query, rctx *schema.ResolveContext, result *OrderedMap) error {
	rc, err := e.Registry.ResolveRoot(call.Identifier)
	if err != nil {
		return err
	}
	returnType, err := e.Registry.Lookup(rc.ReturnType)
	if err != nil {
		return err
	}

	raw, err := safeResolveRoot(rctx, rc, call.Arguments)
	if err != nil {
		return err
	}

	// Argument-less root calls (e.g. `context()`) record their single
	// result under the call's own literal name (spec.md §4.4.1.c).
	if len(call.Arguments) == 0 {
		n := node.New(raw, rctx, returnType)
		val, err := e.evalSelectionSet(n, call.Selections, q)
		if err != nil {
			return err
		}
		if result.Has(call.Identifier) {
			return &errs.AliasCollisionError{Key: call.Identifier}
		}
		result.Set(call.Identifier, val)
		return nil
	}

	// A root call that enumerates ids (e.g. `comment(444, 445)`) returns
	// one entity per argument, in argument order; each is recorded under
	// its own stringified argument as the key (spec.md §4.4.1.c, §8
	// scenario 2).
	entities := sliceOfEntities(raw, len(call.Arguments))
	if len(entities) != len(call.Arguments) {
		return fmt.Errorf("root call %q: expected %d result(s) for %d argument(s), resolver returned %d",
			call.Identifier, len(call.Arguments), len(call.Arguments), len(entities))
	}
	for i, lit := range call.Arguments {
		key := lit.String()
		n := node.New(entities[i], rctx, returnType)
		val, err := e.evalSelectionSet(n, call.Selections, q)
		if err != nil {
			return err
		}
		if result.Has(key) {
			return &errs.AliasCollisionError{Key: key}
		}
		result.Set(key, val)
	}
	return nil
}

// sliceOfEntities normalizes a root call's raw resolver result into one
// entity per expected argument: an actual slice/array is unpacked
// element-by-element; a single non-slice value is accepted as-is when
// exactly one entity was expected.
func sliceOfEntities(raw interface{}, expect int) []interface{} {
	if raw == nil {
		return nil
	}
	v := reflect.ValueOf(raw)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = v.Index(i).Interface()
		}
		return out
	}
	if expect == 1 {
		return []interface{}{raw}
	}
	return nil
}

// evalSelectionSet resolves every selection in sels against n and assembles
// them into an ordered result object, per spec.md §4.4's recursive
// evaluation algorithm. Fragment references are spliced inline (invariant
// I2); alias/field-name collisions abort with an AliasCollisionError
// (invariant I3); key order follows selection order (invariant I4).
func (e *Executor) evalSelectionSet(n *node.Node, sels []ast.Selection, q *ast.Query) (*OrderedMap, error) {
	flat, err := expandSelections(sels, q)
	if err != nil {
		return nil, err
	}

	om := NewOrderedMap()
	for _, sel := range flat {
		call := sel.Field
		key := call.Identifier
		if call.Alias != "" {
			key = call.Alias
		}
		if om.Has(key) {
			return nil, &errs.AliasCollisionError{Key: key}
		}

		res, err := safeResolveField(e.Registry, n, call)
		if err != nil {
			return nil, err
		}

		if res.Scalar {
			if len(call.Selections) > 0 {
				return nil, &errs.StructuralError{
					Message: fmt.Sprintf("field %q is a scalar and cannot carry a sub-selection", call.Identifier),
				}
			}
			om.Set(key, res.Value)
			continue
		}

		if len(call.Selections) == 0 {
			return nil, &errs.StructuralError{
				Message: fmt.Sprintf("field %q resolves to an object and requires a sub-selection", call.Identifier),
			}
		}
		val, err := e.evalNodeValue(res, call.Selections, n.Ctx, q)
		if err != nil {
			return nil, err
		}
		om.Set(key, val)
	}
	return om, nil
}

// evalNodeValue recurses into a non-scalar Result: a slice-shaped value
// (ordinary multi-valued fields as well as connection edges, which are
// plain []schema.Edge[T] slices — spec.md §9) is evaluated element by
// element into a JSON array; anything else is wrapped as a single Node.
func (e *Executor) evalNodeValue(res *node.Result, sels []ast.Selection, ctx *schema.ResolveContext, q *ast.Query) (interface{}, error) {
	if res.Value == nil {
		return nil, nil
	}
	v := reflect.ValueOf(res.Value)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		items := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem := node.New(v.Index(i).Interface(), ctx, res.NodeType)
			val, err := e.evalSelectionSet(elem, sels, q)
			if err != nil {
				return nil, err
			}
			items[i] = val
		}
		return items, nil
	}
	child := node.New(res.Value, ctx, res.NodeType)
	return e.evalSelectionSet(child, sels, q)
}

// expandSelections splices every FragmentRef in sels inline with the
// fragment's own fields (invariant I2), recursively, so callers never need
// to special-case fragments again once they have this flattened list.
func expandSelections(sels []ast.Selection, q *ast.Query) ([]ast.Selection, error) {
	out := make([]ast.Selection, 0, len(sels))
	for _, s := range sels {
		if s.Kind == ast.FragmentRefKind {
			frag, ok := q.Fragments[s.Identifier]
			if !ok {
				return nil, &errs.FragmentNotDefinedError{Identifier: s.Identifier}
			}
			inner, err := expandSelections(frag.Fields, q)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// safeResolveRoot and safeResolveField recover panicking resolvers into
// ordinary errors, the way the teacher's safeExecuteResolver does in
// execution/execute.go, so a single buggy field resolver cannot take down
// the whole process hosting the engine.
func safeResolveRoot(rctx *schema.ResolveContext, rc *schema.RootCall, args []ast.Literal) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, panicError("root call", r)
		}
	}()
	return rc.Resolve(rctx, args)
}

func safeResolveField(reg *schema.Registry, n *node.Node, call *ast.Call) (result *node.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, panicError("field "+call.Identifier, r)
		}
	}()
	return node.Resolve(reg, n, call)
}

func panicError(what string, r interface{}) error {
	const size = 64 << 10
	buf := make([]byte, size)
	buf = buf[:runtime.Stack(buf, false)]
	return fmt.Errorf("nodeql: panic resolving %s: %v\n%s", what, r, buf)
}
