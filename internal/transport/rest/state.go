package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// StateHandler serves a profile's preferences, translations and history.
type StateHandler struct {
	states stateRegistry
	log    *slog.Logger
}

// NewStateHandler creates a StateHandler.
func NewStateHandler(states stateRegistry, logger *slog.Logger) *StateHandler {
	return &StateHandler{states: states, log: logger.With("handler", "state")}
}

type preferencesRequest struct {
	Language *domain.Language `json:"language"`
	DarkMode *bool            `json:"isDarkMode"`
}

func (p preferencesRequest) Validate() error {
	if p.Language != nil && !p.Language.IsValid() {
		return domain.NewValidationError("language", "must be EN or HI")
	}
	return nil
}

type preferencesResponse struct {
	Preferences domain.Preferences `json:"preferences"`
	Theme       domain.Theme       `json:"theme"`
}

// State handles GET /api/state.
func (h *StateHandler) State(w http.ResponseWriter, r *http.Request) {
	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, st.Snapshot())
}

// UpdatePreferences handles PUT /api/preferences. Absent fields keep their
// current value.
func (h *StateHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if req.Language != nil {
		if err := st.SetLanguage(r.Context(), *req.Language); err != nil {
			respondError(w, r, h.log, err)
			return
		}
	}
	if req.DarkMode != nil {
		if err := st.SetDarkMode(r.Context(), *req.DarkMode); err != nil {
			respondError(w, r, h.log, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, preferencesResponse{Preferences: st.Preferences(), Theme: st.Theme()})
}

// ToggleTheme handles POST /api/preferences/theme.
func (h *StateHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if _, err := st.ToggleTheme(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse{Preferences: st.Preferences(), Theme: st.Theme()})
}

// Translate handles GET /api/translate?key=. Several keys may be given as
// repeated parameters; unknown keys come back verbatim.
func (h *StateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	keys := r.URL.Query()["key"]
	if len(keys) == 0 || strings.TrimSpace(keys[0]) == "" {
		respondError(w, r, h.log, domain.NewValidationError("key", "required"))
		return
	}

	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = st.Translate(k)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"language":     st.Preferences().Language,
		"translations": out,
	})
}

// History handles GET /api/history.
func (h *StateHandler) History(w http.ResponseWriter, r *http.Request) {
	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": st.History()})
}
