package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/service/weather"
)

type weatherService interface {
	Report(ctx context.Context, lat, lon *float64) (weather.Report, error)
}

// WeatherHandler serves the dashboard weather card.
type WeatherHandler struct {
	svc weatherService
	log *slog.Logger
}

// NewWeatherHandler creates a WeatherHandler.
func NewWeatherHandler(svc weatherService, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{svc: svc, log: logger.With("handler", "weather")}
}

// Report handles GET /api/weather?lat=&lon=. Both coordinates or neither.
func (h *WeatherHandler) Report(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "lat")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if (lat == nil) != (lon == nil) {
		respondError(w, r, h.log, domain.NewValidationError("lat", "lat and lon must be given together"))
		return
	}

	rep, err := h.svc.Report(r.Context(), lat, lon)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func queryFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a number")
	}
	return &v, nil
}
