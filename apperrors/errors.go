// Package apperrors defines the error taxonomy shared by the recorder,
// the aggregator and the HTTP layer. Handlers never inspect error
// strings; they switch on these types to pick a status code.
package apperrors

import "fmt"

// ValidationError reports malformed or out-of-range input with
// per-field detail. Nothing is persisted when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AuthorizationError means the actor's role does not permit the
// requested resource. No data accompanies it.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// ConflictError means the state changed underneath the request, e.g.
// stock ran out between validation and commit.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// InfrastructureError wraps persistence-layer failures. It is surfaced
// as an opaque failure and never retried by the core.
type InfrastructureError struct {
	Err error
}

func (e *InfrastructureError) Error() string {
	return "infrastructure failure: " + e.Err.Error()
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}
