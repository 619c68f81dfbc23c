package bridge

import (
	"reflect"

	"github.com/specialistvlad/beanbridge/internal/jsonbean"
)

// Policy decides which beans get a JSON shadow.
type Policy interface {
	// IsShadowEligible is given the dynamic type of the bean.
	IsShadowEligible(rt reflect.Type) bool
}

// MarkerPolicy selects beans whose struct type has a direct jsonbean.Marker
// field. Markers that are only reachable through embedded structs do not
// count.
type MarkerPolicy struct{}

func (MarkerPolicy) IsShadowEligible(rt reflect.Type) bool {
	_, ok := jsonbean.MarkerField(rt)
	return ok
}

// TypeSetPolicy selects beans by their exact dynamic type.
type TypeSetPolicy map[reflect.Type]struct{}

// NewTypeSetPolicy selects the dynamic types of the given sample values.
func NewTypeSetPolicy(samples ...any) TypeSetPolicy {
	p := make(TypeSetPolicy, len(samples))
	for _, s := range samples {
		p[reflect.TypeOf(s)] = struct{}{}
	}
	return p
}

func (p TypeSetPolicy) IsShadowEligible(rt reflect.Type) bool {
	_, ok := p[rt]
	return ok
}
