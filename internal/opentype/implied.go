package opentype

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"
)

var (
	durationType      = reflect.TypeOf(time.Duration(0))
	timeType          = reflect.TypeOf(time.Time{})
	bytesType         = reflect.TypeOf([]byte(nil))
	ctyValueType      = reflect.TypeOf(cty.Value{})
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// IsTextual reports whether values of rt are exchanged as a single string
// even though their Go kind is not a string.
func IsTextual(rt reflect.Type) bool {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	switch rt {
	case durationType, timeType, bytesType:
		return true
	}
	if rt.Kind() != reflect.Struct {
		return false
	}
	return rt.Implements(textMarshalerType) || reflect.PointerTo(rt).Implements(textMarshalerType)
}

// Implied returns the open type of values of the Go type rt.
//
// The mapping follows gocty.ImpliedType with three differences: interface
// types imply cty.DynamicPseudoType, struct fields are named by FieldName
// instead of requiring `cty` tags, and textual types (durations, times,
// byte slices and struct types implementing encoding.TextMarshaler) imply
// cty.String.
func Implied(rt reflect.Type) (cty.Type, error) {
	return implied(rt, nil)
}

func implied(rt reflect.Type, seen map[reflect.Type]bool) (cty.Type, error) {
	if rt == nil {
		return cty.DynamicPseudoType, nil
	}
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt == ctyValueType {
		return cty.DynamicPseudoType, nil
	}
	if IsTextual(rt) {
		return cty.String, nil
	}

	switch rt.Kind() {
	case reflect.Bool:
		return cty.Bool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return cty.Number, nil
	case reflect.String:
		return cty.String, nil
	case reflect.Interface:
		return cty.DynamicPseudoType, nil
	case reflect.Slice, reflect.Array:
		ety, err := implied(rt.Elem(), seen)
		if err != nil {
			return cty.NilType, err
		}
		return cty.List(ety), nil
	case reflect.Map:
		if rt.Key().Kind() != reflect.String {
			return cty.NilType, fmt.Errorf("no open type for %s (must have string keys)", rt)
		}
		ety, err := implied(rt.Elem(), seen)
		if err != nil {
			return cty.NilType, err
		}
		return cty.Map(ety), nil
	case reflect.Struct:
		if seen[rt] {
			return cty.NilType, fmt.Errorf("no open type for recursive type %s", rt)
		}
		if seen == nil {
			seen = make(map[reflect.Type]bool)
		}
		seen[rt] = true
		defer delete(seen, rt)

		atys := make(map[string]cty.Type)
		for i := 0; i < rt.NumField(); i++ {
			name, ok := FieldName(rt.Field(i))
			if !ok {
				continue
			}
			aty, err := implied(rt.Field(i).Type, seen)
			if err != nil {
				return cty.NilType, fmt.Errorf("in field %s.%s: %w", rt.Name(), rt.Field(i).Name, err)
			}
			atys[name] = aty
		}
		return cty.Object(atys), nil
	default:
		return cty.NilType, fmt.Errorf("no open type for %s", rt)
	}
}

// FieldName returns the attribute name a struct field is exchanged under.
// It prefers the `cty` tag, then the `json` tag, then the field name.
// Unexported fields and fields tagged "-" are skipped.
func FieldName(sf reflect.StructField) (string, bool) {
	if !sf.IsExported() {
		return "", false
	}
	for _, tagKey := range []string{"cty", "json"} {
		tag, ok := sf.Tag.Lookup(tagKey)
		if !ok {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name == "-" {
			return "", false
		}
		if name != "" {
			return name, true
		}
	}
	return sf.Name, true
}
