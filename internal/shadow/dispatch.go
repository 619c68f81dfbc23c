package shadow

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/specialistvlad/beanbridge/internal/beaninfo"
	"github.com/specialistvlad/beanbridge/internal/converter"
	"github.com/specialistvlad/beanbridge/internal/ctxlog"
	"github.com/specialistvlad/beanbridge/internal/jsonbean"
	"github.com/specialistvlad/beanbridge/internal/opentype"
	"github.com/specialistvlad/beanbridge/internal/registry"
)

// GetAttribute reads the attribute from the original bean and renders it
// as JSON text.
func (b *Bean) GetAttribute(ctx context.Context, attr string) (any, error) {
	a, ok := b.original.Attribute(attr)
	if !ok || !a.Readable {
		return nil, fmt.Errorf("%w: %s has no readable attribute %q", registry.ErrNoSuchMember, b.name, attr)
	}

	v, err := b.delegate.GetAttribute(ctx, b.name, attr)
	if err != nil {
		return b.readFailure(ctx, "attribute "+attr, err)
	}
	return b.delegate.ToJSON(ctx, v, b.opts.Conversion), nil
}

// SetAttribute converts the JSON text value to the attribute's type and
// writes it to the original bean.
func (b *Bean) SetAttribute(ctx context.Context, attr string, value any) error {
	a, ok := b.original.Attribute(attr)
	if !ok || !a.Writable {
		return fmt.Errorf("%w: %s has no writable attribute %q", registry.ErrNoSuchMember, b.name, attr)
	}

	native, err := b.fromJSON(a.Type, value)
	if err != nil {
		return fmt.Errorf("attribute %s: %w", attr, err)
	}
	return b.delegate.SetAttribute(ctx, b.name, attr, native)
}

// Invoke converts every JSON text parameter to the original parameter type,
// invokes the operation on the original bean with the original signature
// and renders the result as JSON text.
func (b *Bean) Invoke(ctx context.Context, op string, params []any, signature []string) (any, error) {
	orig, ok := b.original.Operation(op, len(params))
	if !ok {
		if b.original.HasOperation(op) {
			return nil, fmt.Errorf("%w: operation %s does not take %d parameters", converter.ErrInvalidArgument, op, len(params))
		}
		return nil, fmt.Errorf("%w: %s has no operation %q", registry.ErrNoSuchMember, b.name, op)
	}
	if len(signature) > 0 {
		own, _ := b.info.Operation(op, len(params))
		if !slices.Equal(signature, own.Signature()) {
			return nil, fmt.Errorf("%w: %s has no operation %s%v", registry.ErrNoSuchMember, b.name, op, signature)
		}
	}

	args := make([]any, len(params))
	for i, p := range params {
		native, err := b.fromJSON(orig.Params[i].Type, p)
		if err != nil {
			return nil, fmt.Errorf("operation %s parameter %s: %w", op, orig.Params[i].Name, err)
		}
		args[i] = native
	}

	result, err := b.delegate.Invoke(ctx, b.name, op, args, orig.Signature())
	if err != nil {
		return nil, err
	}
	return b.delegate.ToJSON(ctx, result, b.opts.Conversion), nil
}

// readFailure applies the fault mode to an error of the original bean.
func (b *Bean) readFailure(ctx context.Context, member string, err error) (any, error) {
	if b.opts.Fault != jsonbean.FaultIgnore || errors.Is(err, registry.ErrNotFound) {
		return nil, err
	}
	ctxlog.FromContext(ctx).Warn("Reporting read failure as JSON.", "name", b.name.String(), "member", member, "error", err)
	return b.delegate.ToJSON(ctx, map[string]string{"error": err.Error()}, b.opts.Conversion), nil
}

// fromJSON converts a JSON text value to the type described by ref.
func (b *Bean) fromJSON(ref beaninfo.TypeRef, value any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return nil, &converter.ConversionError{
			Type:  ref.Name,
			Input: fmt.Sprint(value),
			Err:   fmt.Errorf("expected JSON text, got %T", value),
		}
	}

	var native any
	if ref.GoType != nil && opentype.IsStructured(ref.OpenType) {
		val, err := b.delegate.FromJSONOpenType(ref.OpenType, text)
		if err != nil {
			return nil, err
		}
		target := reflect.New(ref.GoType)
		if err := b.delegate.Decode(val, target.Interface()); err != nil {
			return nil, &converter.ConversionError{Type: ref.Name, Input: text, Err: err}
		}
		native = target.Elem().Interface()
		if val.IsNull() {
			native = nil
		}
	} else {
		var err error
		native, err = b.delegate.FromJSON(ref.Name, text)
		if err != nil {
			return nil, err
		}
	}

	if native == nil && ref.GoType != nil && !nillable(ref.GoType) {
		return nil, &converter.ConversionError{Type: ref.Name, Input: text, Err: errors.New("null is not allowed")}
	}
	return native, nil
}

func nillable(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
