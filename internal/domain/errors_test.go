package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("image", "required")

	if got := err.Error(); got != "validation: image: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "title", Message: "required"},
		{Field: "content", Message: "required"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestValidationError_WrappedStillMatches(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("scan: %w", NewValidationError("image", "too large"))

	var ve *ValidationError
	if !errors.As(wrapped, &ve) {
		t.Fatal("errors.As should find *ValidationError through wrapping")
	}
	if ve.Errors[0].Field != "image" {
		t.Errorf("field = %q, want image", ve.Errors[0].Field)
	}
}

func TestUpstreamError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     *UpstreamError
		kind    error
		wantMsg string
	}{
		{"with message", NewUpstreamError(ErrUpstream, "quota exceeded"), ErrUpstream, "quota exceeded"},
		{"without message", NewUpstreamError(ErrContentBlocked, ""), ErrContentBlocked, ErrContentBlocked.Error()},
		{"credential", NewUpstreamError(ErrUpstreamCredential, "API_KEY invalid"), ErrUpstreamCredential, "API_KEY invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
