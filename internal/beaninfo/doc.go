// Package beaninfo describes the management interface of a bean: its
// attributes, operations and notifications.
//
// Metadata for standard beans is derived by reflection from the bean's
// exported method set (see Introspect). Dynamic beans supply their own Info.
// Every type in the metadata carries three forms: the Go type, the open type
// (a cty.Type) and the type name accepted by the converter, so that a
// consumer can convert JSON text to a member's native type without access
// to the bean itself.
package beaninfo
