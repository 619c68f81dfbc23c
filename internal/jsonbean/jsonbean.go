// Package jsonbean defines the marker that makes a bean eligible for a JSON
// shadow, and the per-bean options carried by the marker's struct tag:
//
//	type Cache struct {
//		jsonbean.Marker `jsonbean:"max_depth=3,fault=ignore"`
//		...
//	}
package jsonbean

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/specialistvlad/beanbridge/internal/converter"
)

// TagKey is the struct tag key read from Marker fields.
const TagKey = "jsonbean"

// Marker flags a bean type for shadowing when it is a direct field of the
// bean's struct. It has no methods, so embedding it adds nothing to the
// bean's management interface.
type Marker struct{}

var markerType = reflect.TypeOf(Marker{})

// FaultMode selects how a shadow reports failures of the original bean.
type FaultMode string

const (
	// FaultStrict propagates errors to the caller.
	FaultStrict FaultMode = "strict"
	// FaultIgnore turns read failures into an {"error": ...} document.
	FaultIgnore FaultMode = "ignore"
)

// Options are the per-bean shadow settings.
type Options struct {
	Conversion converter.Options
	Fault      FaultMode
}

// DefaultOptions returns the options used when the marker has no tag.
func DefaultOptions(conv converter.Options) Options {
	return Options{Conversion: conv, Fault: FaultStrict}
}

// MarkerField returns the direct Marker field of the bean type rt, if any.
// Pointers are dereferenced; markers inside embedded structs are not
// considered.
func MarkerField(rt reflect.Type) (reflect.StructField, bool) {
	if rt == nil {
		return reflect.StructField{}, false
	}
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	for i := 0; i < rt.NumField(); i++ {
		if f := rt.Field(i); f.Type == markerType {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

// OptionsFor returns the options of the bean type rt, starting from base
// and applying the marker's tag.
func OptionsFor(rt reflect.Type, base Options) (Options, error) {
	f, ok := MarkerField(rt)
	if !ok {
		return base, nil
	}
	tag, ok := f.Tag.Lookup(TagKey)
	if !ok {
		return base, nil
	}
	opts, err := ParseTag(tag, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", rt, err)
	}
	return opts, nil
}

// ParseTag applies a comma-separated list of key=value settings to base.
func ParseTag(tag string, base Options) (Options, error) {
	opts := base
	if opts.Fault == "" {
		opts.Fault = FaultStrict
	}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return base, fmt.Errorf("invalid %s tag entry %q: expected key=value", TagKey, part)
		}

		var err error
		switch key {
		case "max_depth":
			opts.Conversion.MaxDepth, err = parseLimit(value)
		case "max_collection_size":
			opts.Conversion.MaxCollectionSize, err = parseLimit(value)
		case "max_objects":
			opts.Conversion.MaxObjects, err = parseLimit(value)
		case "fault":
			switch FaultMode(value) {
			case FaultStrict, FaultIgnore:
				opts.Fault = FaultMode(value)
			default:
				err = fmt.Errorf("unknown fault mode %q", value)
			}
		default:
			err = fmt.Errorf("unknown setting")
		}
		if err != nil {
			return base, fmt.Errorf("invalid %s tag entry %q: %w", TagKey, part, err)
		}
	}
	return opts, nil
}

func parseLimit(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("limit must not be negative")
	}
	return n, nil
}
