package assistant

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// Turn is one earlier message of the conversation as the client keeps it.
type Turn struct {
	Role    domain.ChatRole `json:"role"`
	Content string          `json:"content"`
}

// ChatInput is a new message plus the transcript so far.
type ChatInput struct {
	Message string `json:"message"`
	History []Turn `json:"history"`
}

func (i ChatInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Message) == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	for n, t := range i.History {
		if !t.Role.IsValid() {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("history[%d].role", n),
				Message: "must be user or assistant",
			})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// LookupInput asks the library about one disease.
type LookupInput struct {
	Query    string          `json:"message"`
	Language domain.Language `json:"language"`
}

func (i LookupInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Query) == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if i.Language != "" && !i.Language.IsValid() {
		errs = append(errs, domain.FieldError{Field: "language", Message: "must be EN or HI"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
