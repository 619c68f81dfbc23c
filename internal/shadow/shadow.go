package shadow

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/specialistvlad/beanbridge/internal/beanid"
	"github.com/specialistvlad/beanbridge/internal/beaninfo"
	"github.com/specialistvlad/beanbridge/internal/converter"
	"github.com/specialistvlad/beanbridge/internal/jsonbean"
	"github.com/specialistvlad/beanbridge/internal/opentype"
	"github.com/specialistvlad/beanbridge/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// ClassName is the class name reported by every shadow.
const ClassName = "beanbridge.JSONShadow"

// DescriptionPrefix starts the description of every shadow.
const DescriptionPrefix = "JSON shadow of"

// Delegate reaches the original bean and converts values for the shadow.
type Delegate interface {
	GetAttribute(ctx context.Context, name beanid.Name, attr string) (any, error)
	SetAttribute(ctx context.Context, name beanid.Name, attr string, value any) error
	Invoke(ctx context.Context, name beanid.Name, op string, params []any, signature []string) (any, error)

	ToJSON(ctx context.Context, v any, opts converter.Options) string
	FromJSON(typeName, text string) (any, error)
	FromJSONOpenType(ty cty.Type, text string) (cty.Value, error)
	Decode(val cty.Value, target any) error
}

var stringType = reflect.TypeOf("")

func stringRef() beaninfo.TypeRef {
	return beaninfo.TypeRef{Name: "string", OpenType: cty.String, GoType: stringType}
}

// Bean is the JSON shadow of one original bean.
type Bean struct {
	delegate Delegate
	name     beanid.Name
	original beaninfo.Info
	info     beaninfo.Info
	opts     jsonbean.Options
}

var _ registry.DynamicBean = (*Bean)(nil)

// Build creates the shadow of the bean registered as name, whose metadata
// is info. It fails if a writable attribute or an operation parameter has a
// type that cannot be decoded from JSON.
func Build(delegate Delegate, name beanid.Name, info beaninfo.Info, opts jsonbean.Options) (*Bean, error) {
	if delegate == nil {
		return nil, errors.New("shadow needs a delegate")
	}
	if name.IsZero() || name.IsPattern() {
		return nil, fmt.Errorf("cannot shadow %q: not a bean name", name)
	}

	original := info.Clone()
	shadowInfo := beaninfo.Info{
		ClassName:     ClassName,
		Description:   describe(original),
		Notifications: slices.Clone(original.Notifications),
	}

	for _, a := range original.Attributes {
		if a.Writable && !decodable(a.Type) {
			return nil, fmt.Errorf("cannot shadow %s: attribute %s has type %s, which has no JSON form", name, a.Name, a.Type.Name)
		}
		shadowInfo.Attributes = append(shadowInfo.Attributes, beaninfo.AttributeInfo{
			Name:        a.Name,
			Description: a.Description,
			Type:        stringRef(),
			Readable:    a.Readable,
			Writable:    a.Writable,
		})
	}

	for _, o := range original.Operations {
		params := make([]beaninfo.ParameterInfo, len(o.Params))
		for i, p := range o.Params {
			if !decodable(p.Type) {
				return nil, fmt.Errorf("cannot shadow %s: parameter %s of %s has type %s, which has no JSON form", name, p.Name, o.Name, p.Type.Name)
			}
			params[i] = beaninfo.ParameterInfo{Name: p.Name, Description: p.Description, Type: paramRef(p.Type)}
		}
		shadowInfo.Operations = append(shadowInfo.Operations, beaninfo.OperationInfo{
			Name:        o.Name,
			Description: o.Description,
			Params:      params,
			Return:      stringRef(),
			Impact:      o.Impact,
		})
	}

	return &Bean{
		delegate: delegate,
		name:     name,
		original: original,
		info:     shadowInfo,
		opts:     opts,
	}, nil
}

func describe(info beaninfo.Info) string {
	desc := DescriptionPrefix + " " + info.ClassName
	if info.Description != "" {
		desc += ": " + info.Description
	}
	return desc
}

// paramRef keeps structured open types, with their JSON schema attached;
// everything else is exchanged as a plain string.
func paramRef(ref beaninfo.TypeRef) beaninfo.TypeRef {
	if !opentype.IsStructured(ref.OpenType) {
		return stringRef()
	}
	return beaninfo.TypeRef{
		Name:     opentype.String(ref.OpenType),
		OpenType: ref.OpenType,
		GoType:   stringType,
		Schema:   opentype.Schema(ref.OpenType),
	}
}

func decodable(ref beaninfo.TypeRef) bool {
	if ref.GoType != nil {
		if _, ok := converter.SimpleTypeName(ref.GoType); ok {
			return true
		}
	}
	return ref.OpenType != cty.NilType || converter.Accepts(ref.Name)
}

// Name returns the name of the original bean.
func (b *Bean) Name() beanid.Name {
	return b.name
}

// Original returns the metadata of the original bean.
func (b *Bean) Original() beaninfo.Info {
	return b.original.Clone()
}

// Info returns the shadow's own metadata.
func (b *Bean) Info() beaninfo.Info {
	return b.info.Clone()
}
