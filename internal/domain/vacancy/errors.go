package vacancy

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrMissingRequiredInput = errors.New("missing required input")
	ErrIndexOutOfRange      = errors.New("item index out of range")
)

// MissingRequiredInputError blocks a run before any data-source work.
type MissingRequiredInputError struct {
	Field string // json name of the offending field
	Rule  string // validation rule that failed
}

func (e *MissingRequiredInputError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrMissingRequiredInput, e.Field, e.Rule)
}

// Is reports whether target is ErrMissingRequiredInput.
func (e *MissingRequiredInputError) Is(target error) bool { return target == ErrMissingRequiredInput }
