package api

import (
	stderrors "errors"
	"net/http"

	"github.com/pkg/errors"

	"github.com/okian/talentmatch/internal/adapters/repository"
	"github.com/okian/talentmatch/internal/domain/benchmark"
	"github.com/okian/talentmatch/internal/domain/vacancy"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = stderrors.New("bad request")
	ErrLimitExceeded = stderrors.New("limit exceeded")
)

// Error codes written in the response body.
const (
	codeBadRequest       = "bad_request"
	codeInvalidBenchmark = "invalid_benchmark"
	codeMissingInput     = "missing_input"
	codeNotFound         = "not_found"
	codeDataSource       = "data_source"
	codeInternal         = "internal_error"
)

// kindError tags a cause with an API kind so both match errors.Is.
type kindError struct {
	op   string
	kind error
	err  error
}

func (e *kindError) Error() string {
	return e.op + ": " + e.kind.Error() + ": " + e.err.Error()
}

func (e *kindError) Is(target error) bool { return target == e.kind }

func (e *kindError) Unwrap() error { return e.err }

// NewKind returns kind annotated with the failing operation.
func NewKind(op string, kind error) error {
	return errors.WithMessage(kind, op)
}

// Wrap annotates err with the failing operation.
func Wrap(op string, err error) error {
	return errors.Wrap(err, op)
}

// WrapKind annotates err with op and tags it with kind.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return NewKind(op, kind)
	}
	return &kindError{op: op, kind: kind, err: errors.WithStack(err)}
}

// classify maps an error to its HTTP status and body code.
func classify(err error) (int, string) {
	switch {
	case stderrors.Is(err, ErrBadRequest), stderrors.Is(err, ErrLimitExceeded):
		return http.StatusBadRequest, codeBadRequest
	case stderrors.Is(err, benchmark.ErrInvalidBenchmark):
		return http.StatusBadRequest, codeInvalidBenchmark
	case stderrors.Is(err, vacancy.ErrMissingRequiredInput):
		return http.StatusBadRequest, codeMissingInput
	case stderrors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case stderrors.Is(err, repository.ErrDataSource):
		return http.StatusServiceUnavailable, codeDataSource
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
