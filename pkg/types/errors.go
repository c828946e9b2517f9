package types

import (
	"errors"
	"fmt"
)

// Lookup errors. Absence is a soft condition: readers return nil values and
// only the outermost fetch reports ErrNotFound.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrTableNotFound = errors.New("table not found")
)

// Store errors. ErrStoreFailure and ErrQueryFailure are the sentinels behind
// StoreError and QueryError so callers can test with errors.Is.
var (
	ErrStoreFailure  = errors.New("store failure")
	ErrQueryFailure  = errors.New("query failure")
	ErrEmptyDatabase = errors.New("database buffer is empty")
	ErrStoreClosed   = errors.New("store is closed")
)

// StoreError reports that the store engine could not be initialized or that
// a buffer could not be opened as a database.
type StoreError struct {
	Op  string // operation that failed, e.g. "open" or "init"
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("store %s failed", e.Op)
	}
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStoreFailure}
	}
	return []error{ErrStoreFailure, e.Err}
}

// QueryError reports that a query against an opened store raised an error.
// Zero rows is never a QueryError.
type QueryError struct {
	Query string // short label of the query, e.g. "cards by id"
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrQueryFailure}
	}
	return []error{ErrQueryFailure, e.Err}
}

// IsHardError reports whether err is a store or query failure as opposed to
// a soft condition or a usage error.
func IsHardError(err error) bool {
	return errors.Is(err, ErrStoreFailure) || errors.Is(err, ErrQueryFailure)
}
