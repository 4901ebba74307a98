package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// Defaults for a post submitted without an author block.
const (
	defaultAuthor = "You"
	defaultTag    = "Question"
)

// CommunityHandler serves the community board.
type CommunityHandler struct {
	states stateRegistry
	log    *slog.Logger
}

// NewCommunityHandler creates a CommunityHandler.
func NewCommunityHandler(states stateRegistry, logger *slog.Logger) *CommunityHandler {
	return &CommunityHandler{states: states, log: logger.With("handler", "community")}
}

type postRequest struct {
	Author  string `json:"author"`
	Role    string `json:"role"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag"`
}

func (p postRequest) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(p.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (p postRequest) draft() domain.PostDraft {
	d := domain.PostDraft{
		Author:  strings.TrimSpace(p.Author),
		Role:    strings.TrimSpace(p.Role),
		Title:   strings.TrimSpace(p.Title),
		Content: strings.TrimSpace(p.Content),
		Tag:     strings.TrimSpace(p.Tag),
	}
	if d.Author == "" {
		d.Author = defaultAuthor
	}
	if d.Role == "" {
		d.Role = domain.RoleUser
	}
	if d.Tag == "" {
		d.Tag = defaultTag
	}
	return d
}

// List handles GET /api/community.
func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": st.CommunityPosts()})
}

// Create handles POST /api/community.
func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
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
	post, err := st.AddCommunityPost(r.Context(), req.draft())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}
