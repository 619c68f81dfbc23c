package registry

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/specialistvlad/beanbridge/internal/beanid"
	"github.com/specialistvlad/beanbridge/internal/beaninfo"
)

// GetAttribute reads an attribute of the named bean.
func (r *Registry) GetAttribute(ctx context.Context, name beanid.Name, attr string) (any, error) {
	e, err := r.lookup(r.resolve(name))
	if err != nil {
		return nil, err
	}
	if e.dynamic != nil {
		return e.dynamic.GetAttribute(ctx, attr)
	}

	a, ok := e.info.Attribute(attr)
	if !ok || !a.Readable {
		return nil, fmt.Errorf("%w: %s has no readable attribute %q", ErrNoSuchMember, name, attr)
	}
	method := "Get" + attr
	if a.IsGetter {
		method = "Is" + attr
	}
	return call(e.bean, method, nil)
}

// SetAttribute writes an attribute of the named bean. The value must be
// assignable or convertible to the attribute's type.
func (r *Registry) SetAttribute(ctx context.Context, name beanid.Name, attr string, value any) error {
	e, err := r.lookup(r.resolve(name))
	if err != nil {
		return err
	}
	if e.dynamic != nil {
		return e.dynamic.SetAttribute(ctx, attr, value)
	}

	a, ok := e.info.Attribute(attr)
	if !ok || !a.Writable {
		return fmt.Errorf("%w: %s has no writable attribute %q", ErrNoSuchMember, name, attr)
	}
	arg, err := coerce(value, a.Type.GoType)
	if err != nil {
		return fmt.Errorf("attribute %q: %w", attr, err)
	}
	_, err = call(e.bean, "Set"+attr, []reflect.Value{arg})
	return err
}

// Invoke calls an operation of the named bean.
func (r *Registry) Invoke(ctx context.Context, name beanid.Name, op string, params []any, signature []string) (any, error) {
	e, err := r.lookup(r.resolve(name))
	if err != nil {
		return nil, err
	}
	if e.dynamic != nil {
		return e.dynamic.Invoke(ctx, op, params, signature)
	}

	o, ok := e.info.Operation(op, len(params))
	if !ok || len(signature) > 0 && !slices.Equal(signature, o.Signature()) {
		return nil, fmt.Errorf("%w: %s has no operation %s%v", ErrNoSuchMember, name, op, signature)
	}

	args := make([]reflect.Value, len(params))
	for i, p := range params {
		arg, err := coerce(p, o.Params[i].Type.GoType)
		if err != nil {
			return nil, fmt.Errorf("operation %s parameter %s: %w", op, o.Params[i].Name, err)
		}
		args[i] = arg
	}
	return call(e.bean, op, args)
}

// call invokes a method by name and splits off a trailing error result.
// Panics inside the bean are returned as errors.
func call(bean any, method string, args []reflect.Value) (result any, err error) {
	m := reflect.ValueOf(bean).MethodByName(method)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: method %s", ErrNoSuchMember, method)
	}

	defer func() {
		if p := recover(); p != nil {
			result, err = nil, fmt.Errorf("%s panicked: %v", method, p)
		}
	}()

	out := m.Call(args)
	if beaninfo.ReturnsError(m.Type()) {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

// coerce adapts value to the parameter type want. Nil becomes the zero
// value of nillable types; values of a different type with the same kind
// (such as int for a named integer type) are converted.
func coerce(value any, want reflect.Type) (reflect.Value, error) {
	if want == nil {
		return reflect.Value{}, fmt.Errorf("%w: member has no Go type", ErrInvalidValue)
	}
	if value == nil {
		switch want.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil is not a valid %s", ErrInvalidValue, want)
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(want) {
		return rv, nil
	}
	if rv.Kind() == want.Kind() && rv.Type().ConvertibleTo(want) {
		return rv.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %T is not a valid %s", ErrInvalidValue, value, want)
}
