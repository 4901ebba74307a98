// Package scan runs a photo through the vision model, normalizes the answer
// and records it in the profile's history.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/nivara-backend/internal/provider"
	"github.com/heartmarshall/nivara-backend/internal/store"
)

// ErrSuperseded cancels a scan when the same profile starts a newer one.
var ErrSuperseded = fmt.Errorf("scan superseded by a newer request: %w", context.Canceled)

type diagnoser interface {
	Diagnose(ctx context.Context, img provider.Image, prompt string) (string, error)
}

type stateRegistry interface {
	FromContext(ctx context.Context) (*store.Store, error)
}

// Service runs diagnoses. At most one scan per profile is in flight.
type Service struct {
	diagnoser     diagnoser
	states        stateRegistry
	log           *slog.Logger
	timeout       time.Duration
	maxImageBytes int64

	mu       sync.Mutex
	inflight map[string]*inflight
}

type inflight struct {
	cancel context.CancelCauseFunc
}

// NewService creates a scan Service.
func NewService(
	log *slog.Logger,
	diagnoser diagnoser,
	states stateRegistry,
	timeout time.Duration,
	maxImageBytes int64,
) *Service {
	return &Service{
		diagnoser:     diagnoser,
		states:        states,
		log:           log.With("service", "scan"),
		timeout:       timeout,
		maxImageBytes: maxImageBytes,
		inflight:      make(map[string]*inflight),
	}
}

// begin registers a scan for profile, cancelling the previous one. The
// returned release must be called when the scan ends.
func (s *Service) begin(ctx context.Context, profile string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(ctx)
	ctx, stop := context.WithTimeout(ctx, s.timeout)
	mine := &inflight{cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.inflight[profile]; ok {
		prev.cancel(ErrSuperseded)
	}
	s.inflight[profile] = mine
	s.mu.Unlock()

	return ctx, func() {
		s.mu.Lock()
		if s.inflight[profile] == mine {
			delete(s.inflight, profile)
		}
		s.mu.Unlock()
		stop()
		cancel(nil)
	}
}
