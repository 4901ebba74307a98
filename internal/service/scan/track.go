package scan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/nivara-backend/internal/diagnosis"
	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// Tracker defaults for regimens started from a scan result.
const (
	DiagnosedPlant = "Diagnosed Plant"
	DailySchedule  = "Daily treatment required"
)

// TrackRecovery starts a recovery regimen for a diagnosis.
func (s *Service) TrackRecovery(ctx context.Context, res diagnosis.Result) (domain.TrackerItem, error) {
	if res.Disease == "" {
		return domain.TrackerItem{}, domain.NewValidationError("disease", "required")
	}

	st, err := s.states.FromContext(ctx)
	if err != nil {
		return domain.TrackerItem{}, err
	}

	severity := domain.SeverityModerate
	if res.Confidence == diagnosis.ConfidenceHigh {
		severity = domain.SeverityHigh
	}

	item, err := st.AddTrackerItem(ctx, domain.TrackerDraft{
		Plant:    DiagnosedPlant,
		Issue:    res.Disease,
		Progress: 0,
		Severity: severity,
		Cure:     res.Treatment,
		Schedule: DailySchedule,
	})
	if err != nil {
		return domain.TrackerItem{}, fmt.Errorf("track recovery: %w", err)
	}

	s.log.InfoContext(ctx, "recovery tracked",
		slog.String("profile", st.Profile()),
		slog.Int64("item_id", item.ID),
		slog.String("issue", item.Issue),
	)
	return item, nil
}
