// Package apperr defines the application error taxonomy. Handlers translate
// these into the HTTP responses the routes promise: validation errors become
// field-scoped 400s, conflicts 403, missing sessions a redirect to /login,
// and not-found/not-owned collapse into one 404.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing record and an ownership mismatch.
	// The two are deliberately indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated signals that no valid session identity resolved.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError is a user-correctable input problem scoped to one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports a uniqueness violation, scoped to the offending field.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Field, e.Message)
}

func NewConflict(field, message string) *ConflictError {
	return &ConflictError{Field: field, Message: message}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}
