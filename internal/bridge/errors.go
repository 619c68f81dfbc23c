package bridge

import (
	"fmt"

	"github.com/specialistvlad/beanbridge/internal/beanid"
)

// Operations reported in a RegistrationError.
const (
	OpRegister   = "register"
	OpUnregister = "unregister"
)

// RegistrationError reports a failure on the shadow side of a registration
// or unregistration. The primary side of the operation has succeeded.
type RegistrationError struct {
	Name beanid.Name
	Op   string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("cannot %s JSON shadow of %s: %v", e.Op, e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
