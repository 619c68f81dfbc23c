package beaninfo

import (
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// Impact classifies what an operation does.
type Impact int

const (
	ImpactUnknown Impact = iota
	// ImpactInfo operations only return information.
	ImpactInfo
	// ImpactAction operations change state and return nothing useful.
	ImpactAction
	// ImpactActionInfo operations change state and return information.
	ImpactActionInfo
)

func (i Impact) String() string {
	switch i {
	case ImpactInfo:
		return "info"
	case ImpactAction:
		return "action"
	case ImpactActionInfo:
		return "action_info"
	default:
		return "unknown"
	}
}

// TypeRef names the type of an attribute, parameter or return value.
type TypeRef struct {
	// Name is the type name understood by converter.FromJSON.
	Name string
	// OpenType is cty.NilType when the Go type has no open type (channels,
	// functions, maps with non-string keys).
	OpenType cty.Type
	// GoType is nil for types that only exist as metadata, such as the
	// rewritten members of a shadow bean.
	GoType reflect.Type
	// Schema is an optional JSON schema describing accepted JSON input.
	Schema map[string]any
}

// IsVoid reports whether the reference denotes the absence of a value.
func (t TypeRef) IsVoid() bool {
	return t.Name == ""
}

// AttributeInfo describes one attribute.
type AttributeInfo struct {
	Name        string
	Description string
	Type        TypeRef
	Readable    bool
	Writable    bool
	// IsGetter is set for boolean attributes read through an IsX method.
	IsGetter bool
}

// ParameterInfo describes one operation parameter.
type ParameterInfo struct {
	Name        string
	Description string
	Type        TypeRef
}

// OperationInfo describes one operation.
type OperationInfo struct {
	Name        string
	Description string
	Params      []ParameterInfo
	// Return is void for operations without a result.
	Return TypeRef
	Impact Impact
}

// Signature returns the parameter type names in order.
func (o OperationInfo) Signature() []string {
	sig := make([]string, len(o.Params))
	for i, p := range o.Params {
		sig[i] = p.Type.Name
	}
	return sig
}

// NotificationInfo describes a family of notifications a bean may emit.
type NotificationInfo struct {
	Name        string
	Description string
	Types       []string
}

// Info is the complete management interface of a bean.
type Info struct {
	ClassName     string
	Description   string
	Attributes    []AttributeInfo
	Operations    []OperationInfo
	Notifications []NotificationInfo
}

// Attribute looks up an attribute by name.
func (i Info) Attribute(name string) (AttributeInfo, bool) {
	for _, a := range i.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeInfo{}, false
}

// Operation looks up an operation by name and arity.
func (i Info) Operation(name string, arity int) (OperationInfo, bool) {
	for _, o := range i.Operations {
		if o.Name == name && len(o.Params) == arity {
			return o, true
		}
	}
	return OperationInfo{}, false
}

// HasOperation reports whether an operation with the given name exists,
// regardless of arity.
func (i Info) HasOperation(name string) bool {
	for _, o := range i.Operations {
		if o.Name == name {
			return true
		}
	}
	return false
}

// Clone returns a copy of i that shares no slices with it.
func (i Info) Clone() Info {
	out := i
	out.Attributes = cloneSlice(i.Attributes)
	out.Operations = cloneSlice(i.Operations)
	for n := range out.Operations {
		out.Operations[n].Params = cloneSlice(out.Operations[n].Params)
	}
	out.Notifications = cloneSlice(i.Notifications)
	for n := range out.Notifications {
		out.Notifications[n].Types = cloneSlice(out.Notifications[n].Types)
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}
