package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/service/scan"
	"github.com/heartmarshall/nivara-backend/internal/store"
)

// maxJSONBody caps every JSON request body.
const maxJSONBody = 1 << 20

// Fallback messages when an upstream failure carries no text of its own.
const (
	msgInternal   = "internal server error"
	msgUpstream   = "Failed to analyze image. Please try again."
	msgTimeout    = "The model took too long to respond. Please try again."
	msgNoProfile  = "missing or invalid profile"
	msgBadBody    = "invalid request body"
	msgSuperseded = "This scan was replaced by a newer one."
	msgCancelled  = "request cancelled"
)

// statusClientClosed is written when the client gave up before the response
// was ready. Nobody usually reads it; it shows up in access logs.
const statusClientClosed = 499

type stateRegistry interface {
	FromContext(ctx context.Context) (*store.Store, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads a single JSON object into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", msgBadBody)
	}
	return nil
}

// validationMessage flattens a ValidationError into one line. A single field
// error shows its message alone so fixed user-facing texts pass through.
func validationMessage(err error) string {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Errors) == 0 {
		return err.Error()
	}
	if len(ve.Errors) == 1 {
		fe := ve.Errors[0]
		if fe.Field == "image" || fe.Field == "body" || fe.Field == "cart" {
			return fe.Message
		}
		return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(parts, "; ")
}

// upstreamMessage returns the provider's own text, or fallback.
func upstreamMessage(err error, fallback string) string {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	return fallback
}

// respondError maps err onto a status code and a single {"error": "..."}
// message. Unexpected errors are logged and hidden.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrNoProfile):
		writeError(w, http.StatusBadRequest, msgNoProfile)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUpstreamCredential):
		writeError(w, http.StatusInternalServerError, upstreamMessage(err, msgInternal))
	case errors.Is(err, domain.ErrContentBlocked):
		writeError(w, http.StatusBadRequest, upstreamMessage(err, msgUpstream))
	case errors.Is(err, domain.ErrEmptyResponse), errors.Is(err, domain.ErrUpstream):
		log.WarnContext(r.Context(), "upstream failure", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, upstreamMessage(err, msgUpstream))
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, msgTimeout)
	case errors.Is(err, scan.ErrSuperseded):
		writeError(w, http.StatusConflict, msgSuperseded)
	case errors.Is(err, context.Canceled):
		writeError(w, statusClientClosed, msgCancelled)
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
