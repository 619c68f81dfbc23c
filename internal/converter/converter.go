package converter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/specialistvlad/beanbridge/internal/ctxlog"
	"github.com/specialistvlad/beanbridge/internal/opentype"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Converter translates between native values and JSON text. It is safe for
// concurrent use; compiled JSON schemas are cached per open type.
type Converter struct {
	schemas sync.Map // map[string]*jsonschema.Schema, keyed by cty GoString
}

// New creates a new Converter.
func New() *Converter {
	return &Converter{}
}

// ToJSON renders v as JSON text. A top-level string is returned as is,
// without quotes. ToJSON never fails: limits and cycles are resolved as
// described by Options, and values that still cannot be marshalled yield an
// empty string.
func (c *Converter) ToJSON(ctx context.Context, v any, opts Options) string {
	val, err := newEncoder(opts).encode(reflect.ValueOf(v), 0)
	if err != nil {
		ctxlog.FromContext(ctx).Error("Failed to encode value.", "type", fmt.Sprintf("%T", v), "error", err)
		return ""
	}
	if val.Type() == cty.String && !val.IsNull() {
		return val.AsString()
	}
	buf, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		ctxlog.FromContext(ctx).Error("Failed to marshal value.", "type", fmt.Sprintf("%T", v), "error", err)
		return ""
	}
	return string(buf)
}

// FromJSON converts text to a value of the named type. Simple type names
// are the ones SimpleTypeName returns; "any" yields the value implied by
// the JSON document itself, or text verbatim if it is not JSON; every other
// name is parsed with opentype.Parse and decoded through FromJSONOpenType.
func (c *Converter) FromJSON(typeName, text string) (any, error) {
	v, handled, err := parseSimple(typeName, text)
	if handled {
		if err != nil {
			return nil, conversionError(typeName, text, err)
		}
		return v, nil
	}

	if typeName == "any" {
		return c.fromJSONAny(text)
	}

	ty, err := opentype.Parse(typeName)
	if err != nil {
		return nil, conversionError(typeName, text, fmt.Errorf("unknown type: %w", err))
	}
	val, err := c.FromJSONOpenType(ty, text)
	if err != nil {
		return nil, err
	}
	native, err := ctyToNative(val)
	if err != nil {
		return nil, conversionError(typeName, text, err)
	}
	return native, nil
}

// Accepts reports whether FromJSON understands typeName.
func Accepts(typeName string) bool {
	if _, ok := simpleParsers[typeName]; ok || typeName == "string" || typeName == "any" {
		return true
	}
	_, err := opentype.Parse(typeName)
	return err == nil
}

func (c *Converter) fromJSONAny(text string) (any, error) {
	buf := []byte(text)
	if !json.Valid(buf) {
		return text, nil
	}
	val, err := unmarshalImplied(buf)
	if err != nil {
		return nil, conversionError("any", text, err)
	}
	native, err := ctyToNative(val)
	if err != nil {
		return nil, conversionError("any", text, err)
	}
	return native, nil
}

// FromJSONOpenType decodes text into a value of ty. The document is first
// validated against opentype.Schema(ty). Object attributes missing from the
// document decode as nulls.
func (c *Converter) FromJSONOpenType(ty cty.Type, text string) (cty.Value, error) {
	typeName := opentype.String(ty)
	buf := []byte(text)

	if err := c.validate(ty, buf); err != nil {
		return cty.NilVal, conversionError(typeName, text, err)
	}

	val, err := unmarshalImplied(buf)
	if err != nil {
		return cty.NilVal, conversionError(typeName, text, err)
	}
	if ty == cty.DynamicPseudoType {
		return val, nil
	}

	out, err := convert.Convert(val, withOptionalAttrs(ty))
	if err != nil {
		return cty.NilVal, conversionError(typeName, text, err)
	}
	return out, nil
}

// unmarshalImplied decodes a JSON document into the cty value its own
// structure implies: arrays become tuples and objects become objects.
func unmarshalImplied(buf []byte) (cty.Value, error) {
	ity, err := ctyjson.ImpliedType(buf)
	if err != nil {
		return cty.NilVal, err
	}
	return ctyjson.Unmarshal(buf, ity)
}

func (c *Converter) validate(ty cty.Type, buf []byte) error {
	sch, err := c.schema(ty)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf))
	if err != nil {
		return err
	}
	return sch.Validate(inst)
}

func (c *Converter) schema(ty cty.Type) (*jsonschema.Schema, error) {
	key := ty.GoString()
	if cached, ok := c.schemas.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	raw, err := json.Marshal(opentype.Schema(ty))
	if err != nil {
		return nil, fmt.Errorf("failed to render schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("opentype.json", doc); err != nil {
		return nil, fmt.Errorf("failed to add schema: %w", err)
	}
	sch, err := compiler.Compile("opentype.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	actual, _ := c.schemas.LoadOrStore(key, sch)
	return actual.(*jsonschema.Schema), nil
}

// withOptionalAttrs returns ty with every object attribute, at any depth,
// marked optional.
func withOptionalAttrs(ty cty.Type) cty.Type {
	switch {
	case ty.IsObjectType():
		atys := ty.AttributeTypes()
		attrs := make(map[string]cty.Type, len(atys))
		names := make([]string, 0, len(atys))
		for name, aty := range atys {
			attrs[name] = withOptionalAttrs(aty)
			names = append(names, name)
		}
		return cty.ObjectWithOptionalAttrs(attrs, names)
	case ty.IsListType():
		return cty.List(withOptionalAttrs(ty.ElementType()))
	case ty.IsSetType():
		return cty.Set(withOptionalAttrs(ty.ElementType()))
	case ty.IsMapType():
		return cty.Map(withOptionalAttrs(ty.ElementType()))
	case ty.IsTupleType():
		etys := ty.TupleElementTypes()
		out := make([]cty.Type, len(etys))
		for i, ety := range etys {
			out[i] = withOptionalAttrs(ety)
		}
		return cty.Tuple(out)
	default:
		return ty
	}
}
