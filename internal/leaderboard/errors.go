package leaderboard

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is returned by UserRank when no score record exists for
// the requested id.
var ErrUserNotFound = errors.New("user not found")

// ValidationError reports malformed paging arguments. It is returned before
// any store access happens.
type ValidationError struct {
	message string
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.message
}

func IsValidationError(err error) bool {
	validation := &ValidationError{}
	return errors.As(err, &validation)
}

// StoreError wraps a failure of the underlying score store. The engine never
// retries; callers own the retry policy and must not leak the nested
// diagnostics to end users.
type StoreError struct {
	nested error
}

func (e *StoreError) Error() string {
	return "score store failure: " + e.nested.Error()
}

func (e *StoreError) Unwrap() error {
	return e.nested
}

func IsStoreError(err error) bool {
	storeErr := &StoreError{}
	return errors.As(err, &storeErr)
}
