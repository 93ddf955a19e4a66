package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates user-correctable input: missing account resolution,
// unbalanced manual entry, wrong lifecycle status for the requested operation.
// State is left unchanged and the caller may correct and retry.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates an attempt to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvariant indicates a programming-bug class failure: a posting generator
// produced an imbalanced entry, or a sequence number collided. It must never
// be swallowed; the whole operation aborts.
var ErrInvariant = errors.New("accounting invariant violated")

// ErrConfiguration indicates a required parameter is unset or does not resolve
// in the current chart of accounts. The message names the parameter.
var ErrConfiguration = errors.New("configuration error")

// ErrConflict indicates a concurrency race on sequence assignment or an
// exclusive flag. The caller should retry the whole operation.
var ErrConflict = errors.New("concurrent modification conflict")

// AppError wraps a lower-level error with an HTTP-ish status code and a
// message suitable for surfacing to the caller.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
