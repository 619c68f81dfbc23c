package converter

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"reflect"
	"time"

	"github.com/specialistvlad/beanbridge/internal/opentype"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Decode populates the Go value pointed to by target from val. Struct
// fields are matched by opentype.FieldName, so any value produced by
// FromJSONOpenType for opentype.Implied(T) decodes into a *T.
func (c *Converter) Decode(val cty.Value, target any) error {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", target)
	}
	return decode(val, ptr.Elem())
}

// decode is a recursive function that populates goVal from a cty.Value.
func decode(val cty.Value, goVal reflect.Value) error {
	goType := goVal.Type()

	// If the target is itself a cty.Value there is nothing to decode.
	if goType == ctyValueType {
		goVal.Set(reflect.ValueOf(val))
		return nil
	}

	if !val.IsKnown() {
		return fmt.Errorf("cannot decode an unknown value into %s", goType)
	}
	if val.IsNull() {
		goVal.Set(reflect.Zero(goType))
		return nil
	}

	if opentype.IsTextual(goType) && goType.Kind() != reflect.Ptr {
		return decodeTextual(val, goVal)
	}

	switch goType.Kind() {
	case reflect.Ptr:
		elem := reflect.New(goType.Elem())
		if err := decode(val, elem.Elem()); err != nil {
			return err
		}
		goVal.Set(elem)
		return nil

	case reflect.Interface:
		nativeVal, err := ctyToNative(val)
		if err != nil {
			return err
		}
		if nativeVal == nil {
			goVal.Set(reflect.Zero(goType))
			return nil
		}
		nv := reflect.ValueOf(nativeVal)
		if !nv.Type().AssignableTo(goType) {
			return fmt.Errorf("type mismatch: %s is not assignable to %s", nv.Type(), goType)
		}
		goVal.Set(nv)
		return nil

	case reflect.Struct:
		if !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return fmt.Errorf("type mismatch: cannot decode %s into Go struct %s", val.Type().FriendlyName(), goType)
		}
		attrs := val.AsValueMap()
		for i := 0; i < goType.NumField(); i++ {
			name, ok := opentype.FieldName(goType.Field(i))
			if !ok {
				continue
			}
			attrVal, ok := attrs[name]
			if !ok {
				continue
			}
			if err := decode(attrVal, goVal.Field(i)); err != nil {
				return fmt.Errorf("in attribute '%s': %w", name, err)
			}
		}
		return nil

	case reflect.Map:
		return decodeMap(val, goVal)

	case reflect.Slice, reflect.Array:
		ty := val.Type()
		if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
			return fmt.Errorf("type mismatch: cannot decode %s into Go %s", ty.FriendlyName(), goType)
		}
		n := val.LengthInt()
		var out reflect.Value
		if goType.Kind() == reflect.Slice {
			out = reflect.MakeSlice(goType, n, n)
		} else {
			if n > goType.Len() {
				return fmt.Errorf("%d elements do not fit into Go %s", n, goType)
			}
			out = reflect.New(goType).Elem()
		}
		it := val.ElementIterator()
		for i := 0; it.Next(); i++ {
			_, elem := it.Element()
			if err := decode(elem, out.Index(i)); err != nil {
				return fmt.Errorf("in element %d: %w", i, err)
			}
		}
		goVal.Set(out)
		return nil

	default: // Primitives: string, bool and the numeric kinds.
		want, err := opentype.Implied(goType)
		if err != nil {
			return err
		}
		converted, err := convert.Convert(val, want)
		if err != nil {
			return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
		}
		return gocty.FromCtyValue(converted, goVal.Addr().Interface())
	}
}

// decodeMap handles the recursive decoding of a cty object or map into a Go
// map with string keys.
func decodeMap(val cty.Value, goVal reflect.Value) error {
	goType := goVal.Type()
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return fmt.Errorf("type mismatch: cannot decode %s into Go map %s", ty.FriendlyName(), goType)
	}
	if goType.Key().Kind() != reflect.String {
		return fmt.Errorf("cannot decode into Go map %s: keys must be strings", goType)
	}

	newMap := reflect.MakeMapWithSize(goType, val.LengthInt())
	it := val.ElementIterator()
	for it.Next() {
		key, elem := it.Element()
		keyStr := key.AsString()
		newElem := reflect.New(goType.Elem()).Elem()
		if err := decode(elem, newElem); err != nil {
			return fmt.Errorf("in map element '%s': %w", keyStr, err)
		}
		newMap.SetMapIndex(reflect.ValueOf(keyStr).Convert(goType.Key()), newElem)
	}
	goVal.Set(newMap)
	return nil
}

// decodeTextual decodes values that travel as a single string.
func decodeTextual(val cty.Value, goVal reflect.Value) error {
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return fmt.Errorf("expected a string for %s: %w", goVal.Type(), err)
	}
	s := str.AsString()

	switch goVal.Type() {
	case durationType:
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		goVal.SetInt(int64(d))
		return nil
	case bytesType:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return err
		}
		goVal.SetBytes(b)
		return nil
	}

	if goVal.Addr().Type().Implements(textUnmarshalerType) {
		return goVal.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
	}
	return fmt.Errorf("no text decoding for %s", goVal.Type())
}
