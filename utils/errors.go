package utils

import (
	"errors"
	"fmt"
)

// Error kinds distinguished at the API boundary. Handlers use the Is*
// helpers to pick a status code; anything unmatched maps to 500.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
	ErrStore            = errors.New("store error")

	// ErrChangeLogFailed marks a mutation that committed but whose audit
	// entry could not be written. Callers treat it as partial success.
	ErrChangeLogFailed = errors.New("change log write failed")
)

// ValidationError wraps ErrValidation with a message
func ValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundError wraps ErrNotFound with a message
func NotFoundError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// PermissionDeniedError wraps ErrPermissionDenied with a message
func PermissionDeniedError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPermissionDenied, fmt.Sprintf(format, args...))
}

// ConflictError wraps ErrConflict with a message
func ConflictError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// StoreError wraps an underlying store failure
func StoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsPermissionDenied reports whether err is a permission error
func IsPermissionDenied(err error) bool { return errors.Is(err, ErrPermissionDenied) }

// IsConflict reports whether err is a conflict error
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsChangeLogFailed reports whether err marks a failed audit write
func IsChangeLogFailed(err error) bool { return errors.Is(err, ErrChangeLogFailed) }
