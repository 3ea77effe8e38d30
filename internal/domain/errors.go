package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when a request carries no valid principal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when an authenticated principal lacks the
	// capability required by an operation. See AccessError.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError wrapping err.
// If err is nil, ErrValidation is wrapped.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AccessError is a refused operation. Message is meant for the client and is
// returned verbatim in the 403 response body.
type AccessError struct {
	Op      string
	Message string
}

// NewAccessError creates an AccessError for the named operation.
func NewAccessError(op, message string) *AccessError {
	return &AccessError{Op: op, Message: message}
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *AccessError) Unwrap() error {
	return ErrForbidden
}
