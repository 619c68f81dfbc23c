package converter

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every error caused by JSON input that
// cannot be parsed or bound to the requested type.
var ErrInvalidArgument = errors.New("invalid argument")

// ConversionError reports JSON text that could not be converted to Type.
type ConversionError struct {
	Type  string
	Input string
	Err   error
}

func (e *ConversionError) Error() string {
	input := e.Input
	if len(input) > 64 {
		input = input[:61] + "..."
	}
	return fmt.Sprintf("cannot convert %q to %s: %v", input, e.Type, e.Err)
}

// Unwrap exposes both ErrInvalidArgument and the underlying cause.
func (e *ConversionError) Unwrap() []error {
	return []error{ErrInvalidArgument, e.Err}
}

func conversionError(typeName, input string, err error) error {
	return &ConversionError{Type: typeName, Input: input, Err: err}
}
