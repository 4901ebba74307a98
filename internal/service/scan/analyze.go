package scan

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/nivara-backend/internal/diagnosis"
	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/provider"
)

// UnknownPlant names the plant of every scanned record; the model does not
// identify species.
const UnknownPlant = "Unknown Plant"

// Analysis is the outcome of one scan.
type Analysis struct {
	diagnosis.Result
	ConfidenceScore int                  `json:"confidenceScore"`
	Record          domain.HistoryRecord `json:"record"`
}

// ConfidenceScore maps a textual confidence level to the percentage shown in
// history. Only the exact labels High and Medium are recognised.
func ConfidenceScore(level string) int {
	switch level {
	case diagnosis.ConfidenceHigh:
		return 92
	case diagnosis.ConfidenceMedium:
		return 75
	default:
		return 45
	}
}

// Analyze diagnoses the image and prepends the result to the profile's
// history. When a newer scan for the same profile starts, or the timeout
// fires, the model's late answer is discarded and nothing is recorded.
func (s *Service) Analyze(ctx context.Context, in ImageInput) (Analysis, error) {
	if err := in.Validate(s.maxImageBytes); err != nil {
		return Analysis{}, err
	}

	st, err := s.states.FromContext(ctx)
	if err != nil {
		return Analysis{}, err
	}

	scanCtx, release := s.begin(ctx, st.Profile())
	defer release()

	text, err := s.diagnoser.Diagnose(scanCtx, provider.Image{Data: in.Data, MimeType: in.MimeType}, diagnosis.Prompt)
	if scanCtx.Err() != nil {
		cause := context.Cause(scanCtx)
		s.log.InfoContext(ctx, "scan discarded",
			slog.String("profile", st.Profile()),
			slog.String("reason", cause.Error()),
		)
		return Analysis{}, fmt.Errorf("analyze: %w", cause)
	}
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return Analysis{}, fmt.Errorf("analyze: %w", domain.NewUpstreamError(domain.ErrEmptyResponse, "Empty response from model"))
	}

	result := diagnosis.Normalize(text)
	score := ConfidenceScore(result.Confidence)

	rec, err := st.AddHistoryRecord(scanCtx, domain.HistoryDraft{
		Plant:       UnknownPlant,
		Diagnosis:   result.Disease,
		Confidence:  score,
		Image:       in.DataURI(),
		Description: result.Description,
		Symptoms:    []string{},
		Treatment:   []string{result.Treatment},
		Prevention:  []string{result.Prevention},
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze: %w", err)
	}

	s.log.InfoContext(ctx, "scan recorded",
		slog.String("profile", st.Profile()),
		slog.String("record_id", rec.ID),
		slog.String("disease", result.Disease),
		slog.String("confidence", result.Confidence),
	)

	return Analysis{Result: result, ConfidenceScore: score, Record: rec}, nil
}

func encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
