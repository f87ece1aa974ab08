package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/shyptr/nodeql/ast"
)

// DateNodeType and StringNodeType are the engine-provided chainable scalar
// types spec.md §4.3/§9 calls for: "each scalar type has an implicit node
// type registering its chainable operations." They are ScalarWrapper node
// types, grounded on the teacher's own built-in scalar set in schema.go
// (NewSchema's preloaded Int/String/Time/... scalars), simplified to the
// two scalars spec.md's scenarios actually exercise (dates and strings).
const (
	DateNodeType   = "Date"
	StringNodeType = "String"
)

func registerBuiltinScalars(r *Registry) {
	r.nodeTypes[DateNodeType] = dateNodeType()
	r.nodeTypes[StringNodeType] = stringNodeType()
}

func dateNodeType() *NodeType {
	fields := map[string]*FieldDef{
		"year": {
			Name: "year", DeclaredType: ScalarNumber,
			Resolve: func(_ *ResolveContext, target interface{}, _ []ast.Literal) (interface{}, error) {
				t, err := asTime(target)
				if err != nil {
					return nil, err
				}
				return t.Year(), nil
			},
		},
		"month": {
			Name: "month", DeclaredType: ScalarNumber,
			Resolve: func(_ *ResolveContext, target interface{}, _ []ast.Literal) (interface{}, error) {
				t, err := asTime(target)
				if err != nil {
					return nil, err
				}
				return int(t.Month()), nil
			},
		},
		"day": {
			Name: "day", DeclaredType: ScalarNumber,
			Resolve: func(_ *ResolveContext, target interface{}, _ []ast.Literal) (interface{}, error) {
				t, err := asTime(target)
				if err != nil {
					return nil, err
				}
				return t.Day(), nil
			},
		},
		"minus_days": {
			Name: "minus_days", DeclaredType: DateNodeType,
			Resolve: func(_ *ResolveContext, target interface{}, args []ast.Literal) (interface{}, error) {
				t, err := asTime(target)
				if err != nil {
					return nil, err
				}
				n, err := intArg(args, 0, "minus_days")
				if err != nil {
					return nil, err
				}
				return t.AddDate(0, 0, -int(n)), nil
			},
		},
		"plus_days": {
			Name: "plus_days", DeclaredType: DateNodeType,
			Resolve: func(_ *ResolveContext, target interface{}, args []ast.Literal) (interface{}, error) {
				t, err := asTime(target)
				if err != nil {
					return nil, err
				}
				n, err := intArg(args, 0, "plus_days")
				if err != nil {
					return nil, err
				}
				return t.AddDate(0, 0, int(n)), nil
			},
		},
	}
	return &NodeType{SchemaName: DateNodeType, OwnFields: fields, ScalarWrapper: true}
}

func stringNodeType() *NodeType {
	fields := map[string]*FieldDef{
		"from": {
			Name: "from", DeclaredType: StringNodeType,
			Resolve: func(_ *ResolveContext, target interface{}, args []ast.Literal) (interface{}, error) {
				s, err := asString(target)
				if err != nil {
					return nil, err
				}
				i, err := intArg(args, 0, "from")
				if err != nil {
					return nil, err
				}
				if i < 0 || int(i) > len(s) {
					return nil, fmt.Errorf("from: index %d out of range for string of length %d", i, len(s))
				}
				return s[i:], nil
			},
		},
		"for": {
			Name: "for", DeclaredType: StringNodeType,
			Resolve: func(_ *ResolveContext, target interface{}, args []ast.Literal) (interface{}, error) {
				s, err := asString(target)
				if err != nil {
					return nil, err
				}
				n, err := intArg(args, 0, "for")
				if err != nil {
					return nil, err
				}
				if n < 0 || int(n) > len(s) {
					return nil, fmt.Errorf("for: length %d out of range for string of length %d", n, len(s))
				}
				return s[:n], nil
			},
		},
		"upper": {
			Name: "upper", DeclaredType: ScalarString,
			Resolve: func(_ *ResolveContext, target interface{}, _ []ast.Literal) (interface{}, error) {
				s, err := asString(target)
				if err != nil {
					return nil, err
				}
				return strings.ToUpper(s), nil
			},
		},
		"lower": {
			Name: "lower", DeclaredType: ScalarString,
			Resolve: func(_ *ResolveContext, target interface{}, _ []ast.Literal) (interface{}, error) {
				s, err := asString(target)
				if err != nil {
					return nil, err
				}
				return strings.ToLower(s), nil
			},
		},
		"length": {
			Name: "length", DeclaredType: ScalarNumber,
			Resolve: func(_ *ResolveContext, target interface{}, _ []ast.Literal) (interface{}, error) {
				s, err := asString(target)
				if err != nil {
					return nil, err
				}
				return len(s), nil
			},
		},
	}
	return &NodeType{SchemaName: StringNodeType, OwnFields: fields, ScalarWrapper: true}
}

func asTime(target interface{}) (time.Time, error) {
	t, ok := target.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("expected time.Time, got %T", target)
	}
	return t, nil
}

func asString(target interface{}) (string, error) {
	s, ok := target.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", target)
	}
	return s, nil
}

func intArg(args []ast.Literal, i int, fieldName string) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%s: missing argument %d", fieldName, i)
	}
	if args[i].Kind != ast.IntLiteral {
		return 0, fmt.Errorf("%s: argument %d must be an integer", fieldName, i)
	}
	return args[i].Int, nil
}
