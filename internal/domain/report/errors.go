package report

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is the sentinel kind matched by EmptyResultError.
var ErrEmptyResult = errors.New("empty result")

// EmptyResultError is a warning: the run succeeded but produced no rows.
type EmptyResultError struct {
	RunID    int64
	Excluded int
}

func (e *EmptyResultError) Error() string {
	if e.Excluded > 0 {
		return fmt.Sprintf("run %d: no candidate rows (%d excluded for lack of overlap)", e.RunID, e.Excluded)
	}
	return fmt.Sprintf("run %d: no candidate rows", e.RunID)
}

// Is reports whether target is ErrEmptyResult.
func (e *EmptyResultError) Is(target error) bool { return target == ErrEmptyResult }
