package rest

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// TrackerHandler serves the recovery tracker.
type TrackerHandler struct {
	states stateRegistry
	log    *slog.Logger
}

// NewTrackerHandler creates a TrackerHandler.
func NewTrackerHandler(states stateRegistry, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{states: states, log: logger.With("handler", "tracker")}
}

type trackerRequest struct {
	Plant    string `json:"plant"`
	Issue    string `json:"issue"`
	Progress int    `json:"progress"`
	Severity string `json:"severity"`
	Cure     string `json:"cure"`
	Schedule string `json:"schedule"`
}

func (t trackerRequest) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(t.Plant) == "" {
		errs = append(errs, domain.FieldError{Field: "plant", Message: "required"})
	}
	if strings.TrimSpace(t.Issue) == "" {
		errs = append(errs, domain.FieldError{Field: "issue", Message: "required"})
	}
	if t.Progress < 0 || t.Progress > 100 {
		errs = append(errs, domain.FieldError{Field: "progress", Message: "must be between 0 and 100"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

type trackerPatch struct {
	Plant    *string `json:"plant"`
	Issue    *string `json:"issue"`
	Progress *int    `json:"progress"`
	Severity *string `json:"severity"`
	Cure     *string `json:"cure"`
	Schedule *string `json:"schedule"`
	IsDone   *bool   `json:"isDone"`
}

func (p trackerPatch) Validate() error {
	if p.Progress != nil && (*p.Progress < 0 || *p.Progress > 100) {
		return domain.NewValidationError("progress", "must be between 0 and 100")
	}
	return nil
}

// trackerView adds the derived display fields to an item.
type trackerView struct {
	domain.TrackerItem
	DisplaySeverity string   `json:"displaySeverity"`
	CureSteps       []string `json:"cureSteps"`
}

func toTrackerView(it domain.TrackerItem) trackerView {
	return trackerView{TrackerItem: it, DisplaySeverity: it.DisplaySeverity(), CureSteps: it.CureSteps()}
}

// mutationResponse reports whether an id matched. Unknown ids are not an
// error: the item is simply omitted.
type mutationResponse struct {
	Updated bool         `json:"updated"`
	Item    *trackerView `json:"item,omitempty"`
}

// List handles GET /api/tracker.
func (h *TrackerHandler) List(w http.ResponseWriter, r *http.Request) {
	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	items := st.Tracker()
	views := make([]trackerView, len(items))
	for i, it := range items {
		views[i] = toTrackerView(it)
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracker": views})
}

// Create handles POST /api/tracker.
func (h *TrackerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req trackerRequest
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
	severity := req.Severity
	if severity == "" {
		severity = domain.SeverityModerate
	}
	item, err := st.AddTrackerItem(r.Context(), domain.TrackerDraft{
		Plant:    req.Plant,
		Issue:    req.Issue,
		Progress: req.Progress,
		Severity: severity,
		Cure:     req.Cure,
		Schedule: req.Schedule,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTrackerView(item))
}

// Update handles PATCH /api/tracker/{id}.
func (h *TrackerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	var req trackerPatch
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
	updated, err := st.UpdateTrackerItem(r.Context(), id, domain.TrackerUpdate{
		Plant:    req.Plant,
		Issue:    req.Issue,
		Progress: req.Progress,
		Severity: req.Severity,
		Cure:     req.Cure,
		Schedule: req.Schedule,
		IsDone:   req.IsDone,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := mutationResponse{Updated: updated}
	if item, ok := st.TrackerItem(id); ok && updated {
		v := toTrackerView(item)
		resp.Item = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

// MarkDose handles POST /api/tracker/{id}/dose.
func (h *TrackerHandler) MarkDose(w http.ResponseWriter, r *http.Request) {
	h.dose(w, r, true)
}

// ResetDose handles DELETE /api/tracker/{id}/dose.
func (h *TrackerHandler) ResetDose(w http.ResponseWriter, r *http.Request) {
	h.dose(w, r, false)
}

func (h *TrackerHandler) dose(w http.ResponseWriter, r *http.Request, done bool) {
	id, err := pathInt64(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var (
		item  domain.TrackerItem
		found bool
	)
	if done {
		item, found, err = st.MarkDoseDone(r.Context(), id)
	} else {
		item, found, err = st.ResetDose(r.Context(), id)
	}
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp := mutationResponse{Updated: found}
	if found {
		v := toTrackerView(item)
		resp.Item = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func pathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return v, nil
}
