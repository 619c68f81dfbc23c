package opentype

import (
	"github.com/zclconf/go-cty/cty"
)

// Schema returns the JSON schema (draft 2020-12) that a JSON document must
// satisfy to be decodable as ty. Primitive positions stay lenient because
// the JSON decoder coerces between strings, numbers and bools; the schema
// pins down the structure: arrays vs. objects, known attributes and tuple
// lengths. Null is accepted at every position.
func Schema(ty cty.Type) map[string]any {
	switch {
	case ty == cty.DynamicPseudoType:
		return map[string]any{}
	case ty == cty.String:
		return map[string]any{"type": []any{"string", "number", "boolean", "null"}}
	case ty == cty.Number:
		return map[string]any{"type": []any{"number", "string", "null"}}
	case ty == cty.Bool:
		return map[string]any{"type": []any{"boolean", "string", "null"}}
	case ty.IsListType(), ty.IsSetType():
		return map[string]any{
			"type":  []any{"array", "null"},
			"items": Schema(ty.ElementType()),
		}
	case ty.IsMapType():
		return map[string]any{
			"type":                 []any{"object", "null"},
			"additionalProperties": Schema(ty.ElementType()),
		}
	case ty.IsTupleType():
		etys := ty.TupleElementTypes()
		prefix := make([]any, len(etys))
		for i, ety := range etys {
			prefix[i] = Schema(ety)
		}
		return map[string]any{
			"type":        []any{"array", "null"},
			"prefixItems": prefix,
			"items":       false,
			"minItems":    len(etys),
		}
	case ty.IsObjectType():
		props := make(map[string]any)
		for name, aty := range ty.AttributeTypes() {
			props[name] = Schema(aty)
		}
		return map[string]any{
			"type":                 []any{"object", "null"},
			"properties":           props,
			"additionalProperties": false,
		}
	default:
		return map[string]any{}
	}
}
