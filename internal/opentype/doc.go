// Package opentype describes structured values independently of any Go type.
//
// An open type is a cty.Type. Primitive open types are string, number and
// bool; composite ones are object (record-like values), list, set and map
// (collections, including tabular list(object) and map(object) shapes) and
// tuple. The package converts between three representations of the same
// type: the cty.Type itself, its textual type expression (the HCL type
// constraint syntax, e.g. `list(object({name=string}))`) and the JSON schema
// that a JSON document of that type must satisfy.
package opentype
