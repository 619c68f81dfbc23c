// Package converter translates between native Go values and JSON text.
//
// Every conversion goes through go-cty: native values are first turned into
// a cty.Value and marshalled with cty/json, and JSON text is decoded into a
// cty.Value of the requested open type before it is bound to a Go value.
// Going through cty keeps one type system for simple types, structured open
// types and the metadata that describes them.
//
// Conversion in the native-to-JSON direction never fails: limits on depth,
// collection size and object count truncate the output instead, and cyclic
// references are replaced by a reference marker. Conversion from JSON fails
// with a *ConversionError, which matches ErrInvalidArgument.
package converter
