package beaninfo

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/beanbridge/internal/converter"
	"github.com/specialistvlad/beanbridge/internal/opentype"
	"github.com/zclconf/go-cty/cty"
)

// Describer is implemented by beans that describe themselves.
type Describer interface {
	Description() string
}

// MemberDescriber is implemented by beans that describe their attributes
// and operations.
type MemberDescriber interface {
	DescribeMember(name string) string
}

// NotificationEmitter is implemented by beans that emit notifications.
type NotificationEmitter interface {
	Notifications() []NotificationInfo
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// reservedMethods are never exposed as members: they belong to the optional
// metadata interfaces, the registry lifecycle hooks and fmt.Stringer.
var reservedMethods = map[string]bool{
	"Description":    true,
	"DescribeMember": true,
	"Notifications":  true,
	"PreRegister":    true,
	"PostRegister":   true,
	"PreDeregister":  true,
	"PostDeregister": true,
	"String":         true,
}

// ErrNilBean is returned by Introspect for nil beans.
var ErrNilBean = errors.New("bean is nil")

// ClassName returns the fully qualified name of the bean's type.
func ClassName(rt reflect.Type) string {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.PkgPath() == "" || rt.Name() == "" {
		return rt.String()
	}
	return rt.PkgPath() + "." + rt.Name()
}

// RefOf describes the Go type rt. A nil rt yields the void reference.
func RefOf(rt reflect.Type) TypeRef {
	if rt == nil {
		return TypeRef{}
	}
	if name, ok := converter.SimpleTypeName(rt); ok {
		ty, _ := opentype.Implied(rt)
		return TypeRef{Name: name, OpenType: ty, GoType: rt}
	}
	ty, err := opentype.Implied(rt)
	if err != nil {
		return TypeRef{Name: rt.String(), OpenType: cty.NilType, GoType: rt}
	}
	return TypeRef{Name: opentype.String(ty), OpenType: ty, GoType: rt}
}

type accessor struct {
	getter   reflect.Type
	isGetter bool
	setter   reflect.Type
}

// Introspect derives the Info of a standard bean from its exported methods.
//
//   - GetX() T and IsX() bool make X a readable attribute,
//   - SetX(T) makes X a writable attribute,
//   - every other exported method is an operation.
//
// Getters and operations may additionally return an error. A bean that does
// not follow these rules is reported with all of its violations combined.
func Introspect(bean any) (Info, error) {
	if bean == nil {
		return Info{}, ErrNilBean
	}
	rv := reflect.ValueOf(bean)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return Info{}, ErrNilBean
	}
	rt := rv.Type()

	var violations *multierror.Error
	accessors := make(map[string]*accessor)
	acc := func(name string) *accessor {
		a, ok := accessors[name]
		if !ok {
			a = &accessor{}
			accessors[name] = a
		}
		return a
	}
	var ops []OperationInfo

	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if reservedMethods[m.Name] {
			continue
		}
		mt := m.Type
		numIn := mt.NumIn() - 1 // receiver

		switch {
		case strings.HasPrefix(m.Name, "Get") && len(m.Name) > 3:
			name := m.Name[3:]
			if numIn != 0 {
				violations = multierror.Append(violations, fmt.Errorf("getter %s must not take parameters", m.Name))
				continue
			}
			result, ok := resultType(mt)
			if !ok || result == nil {
				violations = multierror.Append(violations, fmt.Errorf("getter %s must return a value and optionally an error", m.Name))
				continue
			}
			a := acc(name)
			if a.getter != nil {
				violations = multierror.Append(violations, fmt.Errorf("attribute %s has more than one getter", name))
				continue
			}
			a.getter = result

		case strings.HasPrefix(m.Name, "Is") && len(m.Name) > 2 && numIn == 0 && isBoolGetter(mt):
			name := m.Name[2:]
			a := acc(name)
			if a.getter != nil {
				violations = multierror.Append(violations, fmt.Errorf("attribute %s has more than one getter", name))
				continue
			}
			a.getter = mt.Out(0)
			a.isGetter = true

		case strings.HasPrefix(m.Name, "Set") && len(m.Name) > 3 && numIn == 1 && !mt.IsVariadic():
			name := m.Name[3:]
			if mt.NumOut() > 1 || mt.NumOut() == 1 && mt.Out(0) != errorType {
				violations = multierror.Append(violations, fmt.Errorf("setter %s may only return an error", m.Name))
				continue
			}
			acc(name).setter = mt.In(1)

		default:
			op, err := operationInfo(m)
			if err != nil {
				violations = multierror.Append(violations, err)
				continue
			}
			ops = append(ops, op)
		}
	}

	names := make([]string, 0, len(accessors))
	for name := range accessors {
		names = append(names, name)
	}
	sort.Strings(names)

	var attrs []AttributeInfo
	for _, name := range names {
		a := accessors[name]
		if a.getter != nil && a.setter != nil && a.getter != a.setter {
			violations = multierror.Append(violations,
				fmt.Errorf("attribute %s: getter returns %s but setter takes %s", name, a.getter, a.setter))
			continue
		}
		goType := a.getter
		if goType == nil {
			goType = a.setter
		}
		attrs = append(attrs, AttributeInfo{
			Name:     name,
			Type:     RefOf(goType),
			Readable: a.getter != nil,
			Writable: a.setter != nil,
			IsGetter: a.isGetter,
		})
	}

	if len(attrs) == 0 && len(ops) == 0 && violations.ErrorOrNil() == nil {
		violations = multierror.Append(violations, fmt.Errorf("%s exposes no attributes or operations", rt))
	}
	if err := violations.ErrorOrNil(); err != nil {
		return Info{}, err
	}

	info := Info{
		ClassName:  ClassName(rt),
		Attributes: attrs,
		Operations: ops,
	}
	describe(bean, &info)
	return info, nil
}

func describe(bean any, info *Info) {
	if d, ok := bean.(Describer); ok {
		info.Description = d.Description()
	}
	if md, ok := bean.(MemberDescriber); ok {
		for i := range info.Attributes {
			info.Attributes[i].Description = md.DescribeMember(info.Attributes[i].Name)
		}
		for i := range info.Operations {
			info.Operations[i].Description = md.DescribeMember(info.Operations[i].Name)
		}
	}
	if ne, ok := bean.(NotificationEmitter); ok {
		info.Notifications = ne.Notifications()
	}
}

func operationInfo(m reflect.Method) (OperationInfo, error) {
	mt := m.Type
	if mt.IsVariadic() {
		return OperationInfo{}, fmt.Errorf("operation %s must not be variadic", m.Name)
	}
	result, ok := resultType(mt)
	if !ok {
		return OperationInfo{}, fmt.Errorf("operation %s must return at most one value and optionally an error", m.Name)
	}

	params := make([]ParameterInfo, mt.NumIn()-1)
	for i := range params {
		params[i] = ParameterInfo{
			Name: fmt.Sprintf("p%d", i+1),
			Type: RefOf(mt.In(i + 1)),
		}
	}
	return OperationInfo{
		Name:   m.Name,
		Params: params,
		Return: RefOf(result),
	}, nil
}

// resultType returns the value type of a method returning (), (error), (T)
// or (T, error). The type is nil when there is no value.
func resultType(mt reflect.Type) (reflect.Type, bool) {
	switch mt.NumOut() {
	case 0:
		return nil, true
	case 1:
		if mt.Out(0) == errorType {
			return nil, true
		}
		return mt.Out(0), true
	case 2:
		if mt.Out(1) != errorType || mt.Out(0) == errorType {
			return nil, false
		}
		return mt.Out(0), true
	default:
		return nil, false
	}
}

func isBoolGetter(mt reflect.Type) bool {
	result, ok := resultType(mt)
	return ok && result != nil && result.Kind() == reflect.Bool
}

// ReturnsError reports whether the last result of the method type is an error.
func ReturnsError(mt reflect.Type) bool {
	return mt.NumOut() > 0 && mt.Out(mt.NumOut()-1) == errorType
}
