// This file contains the logic for converting an arbitrary cty.Value into its
// native Go representation (any). It backs decoding into interface-typed
// targets and FromJSON calls for structured type names.

package converter

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// ctyToNative recursively converts a cty.Value to its most natural Go
// counterpart: string, bool, int64 or float64, []any and map[string]any.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			nativeVal, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nativeVal)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			keyStr := key.AsString()
			nativeVal, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", keyStr, err)
			}
			goMap[keyStr] = nativeVal
		}
		return goMap, nil

	default:
		return nil, fmt.Errorf("unsupported cty type for native conversion: %s", ty.FriendlyName())
	}
}
