// Package shop serves the remedy catalog and a simulated checkout. No payment
// is processed: the card details are checked for presence and dropped.
package shop

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/store"
)

type stateRegistry interface {
	FromContext(ctx context.Context) (*store.Store, error)
}

// Service implements the storefront.
type Service struct {
	states  stateRegistry
	catalog domain.Catalog
	clock   clockwork.Clock
	delay   time.Duration
	log     *slog.Logger
}

// NewService creates a shop Service. delay is how long a checkout pretends
// to talk to a payment gateway.
func NewService(
	log *slog.Logger,
	states stateRegistry,
	catalog domain.Catalog,
	clock clockwork.Clock,
	delay time.Duration,
) *Service {
	return &Service{
		states:  states,
		catalog: catalog,
		clock:   clock,
		delay:   delay,
		log:     log.With("service", "shop"),
	}
}

// Products returns the catalog.
func (s *Service) Products() []domain.Product {
	out := make([]domain.Product, len(s.catalog))
	copy(out, s.catalog)
	return out
}
