package scoring

import (
	"errors"
	"fmt"
)

// ErrNoOverlap is the sentinel kind matched by NoOverlapError.
var ErrNoOverlap = errors.New("no overlapping traits")

// NoOverlapError marks a candidate that shares no trait with the target
// profile. It is reported per candidate and never aborts a run.
type NoOverlapError struct {
	EmployeeID int64
}

func (e *NoOverlapError) Error() string {
	return fmt.Sprintf("employee %d: %s", e.EmployeeID, ErrNoOverlap)
}

// Is reports whether target is ErrNoOverlap.
func (e *NoOverlapError) Is(target error) bool { return target == ErrNoOverlap }
