// This file contains the logic for parsing textual type expressions (e.g.,
// `string`, `list(number)`) into their corresponding cty.Type objects.

package opentype

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Parse converts a type expression into its cty.Type equivalent.
func Parse(src string) (cty.Type, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "type", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilType, fmt.Errorf("invalid type expression %q: %w", src, diags)
	}
	ty, err := typeExprToCtyType(expr)
	if err != nil {
		return cty.NilType, fmt.Errorf("invalid type expression %q: %w", src, err)
	}
	return ty, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) cty.Type {
	ty, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return ty
}

func typeExprToCtyType(expr hclsyntax.Expression) (cty.Type, error) {
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		switch v.Name {
		case "object":
			return objectTypeExpr(v)
		case "tuple":
			return tupleTypeExpr(v)
		case "list", "set", "map":
		default:
			return cty.NilType, fmt.Errorf("unknown type constructor %q", v.Name)
		}

		if len(v.Args) != 1 {
			return cty.NilType, fmt.Errorf("the %s() type constructor requires exactly one argument, got %d", v.Name, len(v.Args))
		}
		elementType, err := typeExprToCtyType(v.Args[0])
		if err != nil {
			return cty.NilType, fmt.Errorf("in %s(): %w", v.Name, err)
		}
		switch v.Name {
		case "list":
			return cty.List(elementType), nil
		case "set":
			return cty.Set(elementType), nil
		default:
			return cty.Map(elementType), nil
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.NilType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		switch name := v.Traversal.RootName(); name {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.DynamicPseudoType, nil
		default:
			return cty.NilType, fmt.Errorf("unknown primitive type %q", name)
		}

	default:
		return cty.NilType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

func objectTypeExpr(call *hclsyntax.FunctionCallExpr) (cty.Type, error) {
	if len(call.Args) != 1 {
		return cty.NilType, fmt.Errorf("the object() type constructor requires exactly one argument, got %d", len(call.Args))
	}
	objExpr, ok := call.Args[0].(*hclsyntax.ObjectConsExpr)
	if !ok {
		return cty.NilType, fmt.Errorf("the argument to object() must be an object literal like { key = type, ... }, got %T", call.Args[0])
	}

	attrTypes := make(map[string]cty.Type, len(objExpr.Items))
	for _, item := range objExpr.Items {
		key := hcl.ExprAsKeyword(item.KeyExpr)
		if key == "" {
			key = quotedKey(item.KeyExpr)
		}
		if key == "" {
			return cty.NilType, fmt.Errorf("invalid key in object type: keys must be identifiers or quoted strings")
		}
		if _, dup := attrTypes[key]; dup {
			return cty.NilType, fmt.Errorf("duplicate attribute %q in object type", key)
		}
		valueType, err := typeExprToCtyType(item.ValueExpr)
		if err != nil {
			return cty.NilType, fmt.Errorf("in object attribute %q: %w", key, err)
		}
		attrTypes[key] = valueType
	}
	return cty.Object(attrTypes), nil
}

func tupleTypeExpr(call *hclsyntax.FunctionCallExpr) (cty.Type, error) {
	if len(call.Args) != 1 {
		return cty.NilType, fmt.Errorf("the tuple() type constructor requires exactly one argument, got %d", len(call.Args))
	}
	tupleExpr, ok := call.Args[0].(*hclsyntax.TupleConsExpr)
	if !ok {
		return cty.NilType, fmt.Errorf("the argument to tuple() must be a list of types like [string, number], got %T", call.Args[0])
	}
	elemTypes := make([]cty.Type, len(tupleExpr.Exprs))
	for i, e := range tupleExpr.Exprs {
		ety, err := typeExprToCtyType(e)
		if err != nil {
			return cty.NilType, fmt.Errorf("in tuple element %d: %w", i, err)
		}
		elemTypes[i] = ety
	}
	return cty.Tuple(elemTypes), nil
}

// quotedKey returns the literal value of a quoted object key such as
// `"content-type" = string`.
func quotedKey(expr hclsyntax.Expression) string {
	keyExpr, ok := expr.(*hclsyntax.ObjectConsKeyExpr)
	if !ok {
		return ""
	}
	tmpl, ok := keyExpr.Wrapped.(*hclsyntax.TemplateExpr)
	if !ok || len(tmpl.Parts) != 1 {
		return ""
	}
	lit, ok := tmpl.Parts[0].(*hclsyntax.LiteralValueExpr)
	if !ok || !lit.Val.Type().Equals(cty.String) {
		return ""
	}
	return lit.Val.AsString()
}
