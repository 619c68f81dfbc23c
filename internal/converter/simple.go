package converter

import (
	"encoding/base64"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
	bytesType    = reflect.TypeOf([]byte(nil))
)

var simpleKinds = map[reflect.Kind]string{
	reflect.Bool:    "bool",
	reflect.Int:     "int",
	reflect.Int8:    "int8",
	reflect.Int16:   "int16",
	reflect.Int32:   "int32",
	reflect.Int64:   "int64",
	reflect.Uint:    "uint",
	reflect.Uint8:   "uint8",
	reflect.Uint16:  "uint16",
	reflect.Uint32:  "uint32",
	reflect.Uint64:  "uint64",
	reflect.Float32: "float32",
	reflect.Float64: "float64",
	reflect.String:  "string",
}

// SimpleTypeName returns the type name FromJSON accepts for values of rt,
// if rt is a simple type. Named types resolve to their underlying kind.
func SimpleTypeName(rt reflect.Type) (string, bool) {
	if rt == nil {
		return "", false
	}
	switch rt {
	case durationType:
		return "time.Duration", true
	case timeType:
		return "time.Time", true
	case bytesType:
		return "[]byte", true
	}
	name, ok := simpleKinds[rt.Kind()]
	return name, ok
}

var simpleParsers = map[string]func(string) (any, error){
	"bool": func(s string) (any, error) {
		return strconv.ParseBool(s)
	},
	"int":     intParser[int](strconv.IntSize),
	"int8":    intParser[int8](8),
	"int16":   intParser[int16](16),
	"int32":   intParser[int32](32),
	"int64":   intParser[int64](64),
	"uint":    uintParser[uint](strconv.IntSize),
	"uint8":   uintParser[uint8](8),
	"uint16":  uintParser[uint16](16),
	"uint32":  uintParser[uint32](32),
	"uint64":  uintParser[uint64](64),
	"float32": floatParser[float32](32),
	"float64": floatParser[float64](64),
	"time.Duration": func(s string) (any, error) {
		return time.ParseDuration(s)
	},
	"time.Time": func(s string) (any, error) {
		return time.Parse(time.RFC3339Nano, s)
	},
	"[]byte": func(s string) (any, error) {
		return base64.StdEncoding.DecodeString(s)
	},
}

func intParser[T int | int8 | int16 | int32 | int64](bits int) func(string) (any, error) {
	return func(s string) (any, error) {
		v, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return nil, err
		}
		return T(v), nil
	}
}

func uintParser[T uint | uint8 | uint16 | uint32 | uint64](bits int) func(string) (any, error) {
	return func(s string) (any, error) {
		v, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return nil, err
		}
		return T(v), nil
	}
}

func floatParser[T float32 | float64](bits int) func(string) (any, error) {
	return func(s string) (any, error) {
		v, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return nil, err
		}
		return T(v), nil
	}
}

// parseSimple converts text to the named simple type. The second result is
// false when typeName is not a simple type. Strings are taken verbatim; all
// other simple values may arrive as JSON string literals.
func parseSimple(typeName, text string) (any, bool, error) {
	if typeName == "string" {
		return text, true, nil
	}
	parse, ok := simpleParsers[typeName]
	if !ok {
		return nil, false, nil
	}
	s := strings.TrimSpace(text)
	if s == "null" {
		return nil, true, nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			s = unquoted
		}
	}
	v, err := parse(s)
	return v, true, err
}
