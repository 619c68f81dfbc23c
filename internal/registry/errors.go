package registry

import "errors"

var (
	// ErrAlreadyExists is returned when a bean is registered under a name
	// that is already taken.
	ErrAlreadyExists = errors.New("bean already exists")
	// ErrNotFound is returned for names that are not registered.
	ErrNotFound = errors.New("bean not found")
	// ErrNotCompliant is returned for beans whose method set cannot be
	// exposed as attributes and operations.
	ErrNotCompliant = errors.New("bean is not compliant")
	// ErrInvalidName is returned for missing names and patterns.
	ErrInvalidName = errors.New("invalid bean name")
	// ErrNoSuchMember is returned for unknown attributes and operations.
	ErrNoSuchMember = errors.New("no such attribute or operation")
	// ErrInvalidValue is returned when an attribute value or operation
	// parameter does not fit the member's type.
	ErrInvalidValue = errors.New("invalid value")
	// ErrRegistrationHook wraps errors returned by lifecycle hooks.
	ErrRegistrationHook = errors.New("registration hook failed")
)
