package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrNoProfile  = errors.New("profile missing from request")
)

// Upstream (external AI model) failures. Each request fails terminally on any
// of these; nothing in the core retries.
var (
	ErrUpstreamCredential = errors.New("upstream credential missing or invalid")
	ErrContentBlocked     = errors.New("content blocked by safety policy")
	ErrEmptyResponse      = errors.New("empty response from model")
	ErrUpstream           = errors.New("upstream failure")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// UpstreamError carries the provider's raw message next to the taxonomy
// sentinel so callers can both classify and display it.
type UpstreamError struct {
	Kind    error
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Kind }

// NewUpstreamError wraps a provider failure under the given sentinel.
func NewUpstreamError(kind error, message string) *UpstreamError {
	return &UpstreamError{Kind: kind, Message: message}
}
