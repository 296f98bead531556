// Package errors provides the error taxonomy shared by the store and tool layers.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying failures across package boundaries.
// Callers distinguish them with errors.Is via the wrappers below.
var (
	// ErrValidation marks caller-supplied input that fails a precondition.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersistence marks a failure to read or write the backing store.
	ErrPersistence = errors.New("persistence failed")
)

// Validation creates a validation error with the given message.
func Validation(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) error {
	return Validation(fmt.Sprintf(format, args...))
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Persistencef creates a persistence error with a formatted message.
func Persistencef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPersistence, fmt.Sprintf(format, args...))
}

// PersistenceWithCause creates a persistence error that keeps the underlying
// cause in the error chain.
func PersistenceWithCause(message string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, message, cause)
}

// Wrap creates a new error by wrapping an existing error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
