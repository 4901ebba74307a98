package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/service/assistant"
)

// Chat error texts.
const (
	msgChatConfig = "Configuration Error: API Key missing."
	chatErrPrefix = "AgriGuru Error: "
)

type assistantService interface {
	Reply(ctx context.Context, in assistant.ChatInput) (string, error)
	CommonDiseases() []assistant.CommonDisease
	LookupDisease(ctx context.Context, in assistant.LookupInput) (assistant.DiseaseInfo, error)
}

// AssistantHandler serves the AgriGuru chat and the disease library.
type AssistantHandler struct {
	svc assistantService
	log *slog.Logger
}

// NewAssistantHandler creates an AssistantHandler.
func NewAssistantHandler(svc assistantService, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{svc: svc, log: logger.With("handler", "assistant")}
}

// Chat handles POST /api/chat.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req assistant.ChatInput
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	reply, err := h.svc.Reply(r.Context(), req)
	if err != nil {
		h.chatError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// chatError keeps the chat's own wording: every model failure is a 500
// prefixed with the assistant's name.
func (h *AssistantHandler) chatError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondError(w, r, h.log, err)
	case errors.Is(err, domain.ErrUpstreamCredential):
		writeError(w, http.StatusInternalServerError, msgChatConfig)
	default:
		h.log.ErrorContext(r.Context(), "chat failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, chatErrPrefix+upstreamMessage(err, err.Error()))
	}
}

// Library handles GET /api/library.
func (h *AssistantHandler) Library(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"diseases": h.svc.CommonDiseases()})
}

// SearchLibrary handles POST /api/library/search.
func (h *AssistantHandler) SearchLibrary(w http.ResponseWriter, r *http.Request) {
	var req assistant.LookupInput
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	info, err := h.svc.LookupDisease(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
