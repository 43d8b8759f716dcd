// Package apperror defines the domain error kinds used across the client and the
// server. Callers wrap these with fmt.Errorf("...: %w", err) and the edges map them
// with errors.Is/As — HTTP handlers to status codes, the CLI to exit messages.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")

	// ErrBusy means another operation of the same class is still in flight.
	// Duplicate submissions are rejected rather than racing to overwrite
	// each other's result.
	ErrBusy = errors.New("operation already in flight")

	// ErrCancelled means the user declined a confirmation gate. No request
	// was issued.
	ErrCancelled = errors.New("cancelled")

	// ErrRemote is an application-level failure reported by the backend:
	// a success:false payload or a non-2xx status with an error body.
	ErrRemote = errors.New("remote error")

	// ErrUnavailable is a transport failure — the backend could not be
	// reached at all.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrBadResponse is a 2xx response whose body is not valid JSON. Kept
	// distinct from ErrRemote so the caller can tell "the server said no"
	// from "the server said something unintelligible".
	ErrBadResponse = errors.New("invalid response format")
)

// AppError carries a human-readable message alongside the sentinel kind.
type AppError struct {
	Err     error  // sentinel, reachable via errors.Is
	Message string // shown to the user verbatim
	Field   string // optional: form field that failed validation
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Busy reports a rejected duplicate submission for the named operation.
func Busy(operation string) *AppError {
	return &AppError{
		Err:     ErrBusy,
		Message: fmt.Sprintf("a %s request is already in flight", operation),
	}
}

// Cancelled reports a confirmation gate answered with "no".
func Cancelled(operation string) *AppError {
	return &AppError{
		Err:     ErrCancelled,
		Message: fmt.Sprintf("%s cancelled", operation),
	}
}

// Remote wraps the backend's own error text. The message is reported to the
// user verbatim, as received.
func Remote(message string) *AppError {
	return &AppError{
		Err:     ErrRemote,
		Message: message,
	}
}

// Unavailable wraps a transport-level failure.
func Unavailable(err error) *AppError {
	return &AppError{
		Err:     ErrUnavailable,
		Message: fmt.Sprintf("backend unavailable: %v", err),
	}
}

// BadResponse wraps a decode failure on an otherwise successful response.
func BadResponse(err error) *AppError {
	return &AppError{
		Err:     ErrBadResponse,
		Message: fmt.Sprintf("invalid response format: %v", err),
	}
}
