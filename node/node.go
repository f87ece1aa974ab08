// Package node implements the Node & Field Model (C3): a Node wraps a
// single target entity and a context, and resolves a field-level Call
// (name, optional arguments, optional chained call) against its bound
// NodeType.
package node

import (
	"github.com/shyptr/nodeql/ast"
	"github.com/shyptr/nodeql/errs"
	"github.com/shyptr/nodeql/schema"
)

// Node is the runtime resolution frame (spec.md §3): a target entity
// bound to a node type and a context. It is created at the start of a
// resolution frame and discarded once its sub-selection completes; it is
// never cached across a query (spec.md §5).
type Node struct {
	Target interface{}
	Ctx    *schema.ResolveContext
	Type   *schema.NodeType
}

// New wraps target in a Node bound to nt.
func New(target interface{}, ctx *schema.ResolveContext, nt *schema.NodeType) *Node {
	return &Node{Target: target, Ctx: ctx, Type: nt}
}

// Result is what resolving a field-level call chain produces: either a
// leaf scalar value, or a value bound to a NodeType for the executor to
// recurse into (possibly a slice, for multi-valued fields and edges).
type Result struct {
	Scalar   bool
	Value    interface{}
	NodeType *schema.NodeType
}

// Resolve dispatches call — a single field name, its arguments, and any
// `.`-chained follow-up calls — against n, per spec.md §4.3:
//
//  1. look up the field on the bound NodeType (inheriting through Parent);
//  2. invoke its resolver with the call's arguments;
//  3. if the declared type is a scalar tag, the result is a leaf value —
//     unless a chained call follows, in which case spec.md §9 has no
//     scalar-tag chaining (scalar chaining only happens through the
//     engine's built-in Date/String node types, which are ordinary
//     NodeType declared-types, not scalar tags, so they fall through to
//     branch 4 below);
//  4. if the declared type is a NodeType, wrap the result in a new Node of
//     that type; either continue the chain against it, or — once the
//     chain ends — return it (unwrapped to its raw scalar leaf when the
//     NodeType is a ScalarWrapper *and* the call carries no sub-selection,
//     per spec.md §4.3/§9 and §8 scenarios 3 and 6) for the caller to
//     recurse into.
//
// Aliases live only on the head of the call chain (per the grammar) and
// Resolve never looks at them — the executor applies them to whatever
// Result this function returns. Selections are the one exception: a
// chainable scalar wrapper (Date, String) can terminate a chain either as
// a leaf value (`letters.from(3).for(2)`, scenario 6) or as an object to
// select further fields from (`published_at.minus_days(200) { year }`,
// scenario 3), and only the head call's Selections — always call itself,
// never an intermediate Chained call, per the grammar — say which.
func Resolve(reg *schema.Registry, n *Node, call *ast.Call) (*Result, error) {
	curType := n.Type
	curTarget := n.Target
	ctx := n.Ctx
	cur := call

	for {
		fd, err := reg.LookupField(curType, cur.Identifier)
		if err != nil {
			return nil, err
		}

		raw, err := fd.Resolve(ctx, curTarget, cur.Arguments)
		if err != nil {
			return nil, err
		}

		switch fd.DeclaredType {
		case schema.ScalarString, schema.ScalarNumber, schema.ScalarBoolean:
			if cur.Chained != nil {
				return nil, &errs.StructuralError{
					Message: "field \"" + cur.Identifier + "\" is a scalar and cannot be chained further",
				}
			}
			return &Result{Scalar: true, Value: raw}, nil
		default:
			nt, err := reg.Lookup(fd.DeclaredType)
			if err != nil {
				return nil, err
			}
			if cur.Chained != nil {
				curType = nt
				curTarget = raw
				cur = cur.Chained
				continue
			}
			if nt.ScalarWrapper && len(call.Selections) == 0 {
				return &Result{Scalar: true, Value: raw}, nil
			}
			return &Result{Scalar: false, Value: raw, NodeType: nt}, nil
		}
	}
}
