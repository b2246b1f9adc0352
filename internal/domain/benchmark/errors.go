package benchmark

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBenchmark is the sentinel kind matched by InvalidBenchmarkError.
var ErrInvalidBenchmark = errors.New("invalid benchmark")

// Reason names the rule a benchmark set broke.
type Reason string

// Reasons reported by InvalidBenchmarkError.
const (
	ReasonEmpty          Reason = "empty"
	ReasonOversized      Reason = "oversized"
	ReasonDuplicate      Reason = "duplicate"
	ReasonUnknown        Reason = "unknown employee"
	ReasonMalformed      Reason = "malformed token"
	ReasonNoObservations Reason = "no observations"
)

// InvalidBenchmarkError rejects a benchmark set before any scoring happens.
type InvalidBenchmarkError struct {
	Reason Reason
	IDs    []int64 // offending ids, if any
	Token  string  // offending token for ReasonMalformed
}

func (e *InvalidBenchmarkError) Error() string {
	var b strings.Builder
	b.WriteString("invalid benchmark: ")
	b.WriteString(string(e.Reason))
	switch {
	case e.Token != "":
		fmt.Fprintf(&b, " %q", e.Token)
	case len(e.IDs) > 0:
		fmt.Fprintf(&b, " %v", e.IDs)
	}
	return b.String()
}

// Is reports whether target is ErrInvalidBenchmark.
func (e *InvalidBenchmarkError) Is(target error) bool { return target == ErrInvalidBenchmark }
