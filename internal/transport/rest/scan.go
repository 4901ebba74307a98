package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/nivara-backend/internal/diagnosis"
	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/service/scan"
)

// multipartOverhead is the room left for form boundaries and headers on top
// of the image itself.
const multipartOverhead = 1 << 20

type scanService interface {
	Analyze(ctx context.Context, in scan.ImageInput) (scan.Analysis, error)
	TrackRecovery(ctx context.Context, r diagnosis.Result) (domain.TrackerItem, error)
}

// ScanHandler serves photo diagnosis.
type ScanHandler struct {
	svc           scanService
	maxImageBytes int64
	log           *slog.Logger
}

// NewScanHandler creates a ScanHandler.
func NewScanHandler(svc scanService, maxImageBytes int64, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{svc: svc, maxImageBytes: maxImageBytes, log: logger.With("handler", "scan")}
}

// Analyze handles POST /api/scan with the photo in the multipart field "image".
func (h *ScanHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	in, err := h.readImage(w, r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	res, err := h.svc.Analyze(r.Context(), in)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Track handles POST /api/scan/track: it starts a recovery plan from a
// diagnosis the client already holds.
func (h *ScanHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req diagnosis.Result
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	item, err := h.svc.TrackRecovery(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTrackerView(item))
}

// readImage pulls the upload out of the form. A missing file yields an empty
// input so the service reports it with its own message.
func (h *ScanHandler) readImage(w http.ResponseWriter, r *http.Request) (scan.ImageInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBytes+multipartOverhead)

	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return scan.ImageInput{}, domain.NewValidationError("image", scan.MsgTooLarge)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return scan.ImageInput{}, nil
		default:
			return scan.ImageInput{}, domain.NewValidationError("image", scan.MsgNoImage)
		}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return scan.ImageInput{}, domain.NewValidationError("image", scan.MsgTooLarge)
		}
		return scan.ImageInput{}, err
	}

	return scan.ImageInput{
		Data:     data,
		MimeType: header.Header.Get("Content-Type"),
		Filename: header.Filename,
	}, nil
}
