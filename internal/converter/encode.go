package converter

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/specialistvlad/beanbridge/internal/opentype"
	"github.com/zclconf/go-cty/cty"
)

// Options bound the native-to-JSON conversion. A zero field means no limit.
type Options struct {
	// MaxDepth is the nesting depth below which values are rendered with
	// fmt.Sprint instead of being serialized structurally.
	MaxDepth int
	// MaxCollectionSize truncates slices, arrays and maps.
	MaxCollectionSize int
	// MaxObjects caps the total number of values serialized.
	MaxObjects int
}

// ObjectLimitMarker replaces values once Options.MaxObjects is reached.
const ObjectLimitMarker = "[object limit exceeded]"

var (
	ctyValueType      = reflect.TypeOf(cty.Value{})
	errorType         = reflect.TypeOf((*error)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// encoder walks a native value and builds its cty representation. Slices
// become tuples and maps/structs become objects so that heterogeneous
// contents never need a common element type.
type encoder struct {
	opts    Options
	objects int
	// visiting holds the addresses of the pointers, maps and slices on the
	// current path, for cycle detection.
	visiting map[uintptr]bool
}

func newEncoder(opts Options) *encoder {
	return &encoder{opts: opts, visiting: make(map[uintptr]bool)}
}

func (e *encoder) encode(rv reflect.Value, depth int) (cty.Value, error) {
	if !rv.IsValid() {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}

	e.objects++
	if e.opts.MaxObjects > 0 && e.objects > e.opts.MaxObjects {
		return cty.StringVal(ObjectLimitMarker), nil
	}

	if rv.Type() == ctyValueType {
		val := rv.Interface().(cty.Value)
		if val == cty.NilVal || !val.IsWhollyKnown() {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		unmarked, _ := val.UnmarkDeep()
		return unmarked, nil
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
	}

	if val, ok, err := e.encodeTextual(rv); ok {
		return val, err
	}

	switch rv.Kind() {
	case reflect.Interface:
		return e.encode(rv.Elem(), depth)

	case reflect.Ptr:
		addr := rv.Pointer()
		if e.visiting[addr] {
			return referenceMarker(rv), nil
		}
		e.visiting[addr] = true
		defer delete(e.visiting, addr)
		return e.encode(rv.Elem(), depth)

	case reflect.Bool:
		return cty.BoolVal(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cty.NumberIntVal(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cty.NumberUIntVal(rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return cty.StringVal(strconv.FormatFloat(f, 'g', -1, 64)), nil
		}
		bits := 64
		if rv.Kind() == reflect.Float32 {
			bits = 32
		}
		return cty.ParseNumberVal(strconv.FormatFloat(f, 'g', -1, bits))

	case reflect.String:
		return cty.StringVal(rv.String()), nil

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice {
			if rv.IsNil() {
				return cty.NullVal(cty.DynamicPseudoType), nil
			}
			if rv.Len() > 0 {
				addr := rv.Pointer()
				if e.visiting[addr] {
					return referenceMarker(rv), nil
				}
				e.visiting[addr] = true
				defer delete(e.visiting, addr)
			}
		}
		if e.tooDeep(depth) {
			return cty.StringVal(fmt.Sprint(rv.Interface())), nil
		}
		n := e.limit(rv.Len())
		if n == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, n)
		for i := 0; i < n; i++ {
			v, err := e.encode(rv.Index(i), depth+1)
			if err != nil {
				return cty.NilVal, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = v
		}
		return cty.TupleVal(elems), nil

	case reflect.Map:
		if rv.IsNil() {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		addr := rv.Pointer()
		if e.visiting[addr] {
			return referenceMarker(rv), nil
		}
		e.visiting[addr] = true
		defer delete(e.visiting, addr)

		if e.tooDeep(depth) {
			return cty.StringVal(fmt.Sprint(rv.Interface())), nil
		}
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := mapKeyString(iter.Key())
			keys = append(keys, k)
			byKey[k] = iter.Value()
		}
		sort.Strings(keys)
		keys = keys[:e.limit(len(keys))]
		if len(keys) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(keys))
		for _, k := range keys {
			v, err := e.encode(byKey[k], depth+1)
			if err != nil {
				return cty.NilVal, fmt.Errorf("key %q: %w", k, err)
			}
			attrs[k] = v
		}
		return cty.ObjectVal(attrs), nil

	case reflect.Struct:
		if e.tooDeep(depth) {
			return cty.StringVal(fmt.Sprint(rv.Interface())), nil
		}
		rt := rv.Type()
		attrs := make(map[string]cty.Value)
		for i := 0; i < rt.NumField(); i++ {
			name, ok := opentype.FieldName(rt.Field(i))
			if !ok {
				continue
			}
			v, err := e.encode(rv.Field(i), depth+1)
			if err != nil {
				return cty.NilVal, fmt.Errorf("field %s: %w", rt.Field(i).Name, err)
			}
			attrs[name] = v
		}
		if len(attrs) == 0 {
			return cty.EmptyObjectVal, nil
		}
		return cty.ObjectVal(attrs), nil

	default:
		// Channels, functions, complex numbers and unsafe pointers have no
		// structural JSON form.
		return cty.StringVal(fmt.Sprint(rv.Interface())), nil
	}
}

// encodeTextual handles values that serialize to a single string.
func (e *encoder) encodeTextual(rv reflect.Value) (cty.Value, bool, error) {
	rt := rv.Type()
	switch rt {
	case durationType:
		return cty.StringVal(time.Duration(rv.Int()).String()), true, nil
	case timeType:
		t := rv.Interface().(time.Time)
		return cty.StringVal(t.Format(time.RFC3339Nano)), true, nil
	case bytesType:
		if rv.IsNil() {
			return cty.NullVal(cty.DynamicPseudoType), true, nil
		}
		return cty.StringVal(base64.StdEncoding.EncodeToString(rv.Bytes())), true, nil
	}

	if isStructLike(rt) && rt.Implements(textMarshalerType) {
		text, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return cty.StringVal(err.Error()), true, nil
		}
		return cty.StringVal(string(text)), true, nil
	}

	if rt.Kind() != reflect.Interface && rt.Implements(errorType) {
		return cty.StringVal(rv.Interface().(error).Error()), true, nil
	}
	return cty.NilVal, false, nil
}

func isStructLike(rt reflect.Type) bool {
	return rt.Kind() == reflect.Struct || rt.Kind() == reflect.Ptr && rt.Elem().Kind() == reflect.Struct
}

func (e *encoder) tooDeep(depth int) bool {
	return e.opts.MaxDepth > 0 && depth >= e.opts.MaxDepth
}

func (e *encoder) limit(n int) int {
	if e.opts.MaxCollectionSize > 0 && n > e.opts.MaxCollectionSize {
		return e.opts.MaxCollectionSize
	}
	return n
}

func mapKeyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		if text, err := tm.MarshalText(); err == nil {
			return string(text)
		}
	}
	return fmt.Sprint(k.Interface())
}

func referenceMarker(rv reflect.Value) cty.Value {
	return cty.StringVal(fmt.Sprintf("[Reference to %s]", rv.Type()))
}
