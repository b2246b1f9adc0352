package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for repository errors.
var (
	ErrNotFound   = errors.New("run not found")
	ErrDataSource = errors.New("data source failure")
)

// DataSourceError wraps a failure to reach, read or write the repository.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataSource, e.Op, e.Err)
}

// Is reports whether target is ErrDataSource.
func (e *DataSourceError) Is(target error) bool { return target == ErrDataSource }

// Unwrap exposes the underlying driver error.
func (e *DataSourceError) Unwrap() error { return e.Err }

func dataSource(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DataSourceError{Op: op, Err: err}
}
