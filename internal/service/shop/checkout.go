package shop

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// MsgEmptyCart rejects a checkout with nothing to pay for.
const MsgEmptyCart = "Your cart is empty"

// Order is a completed checkout.
type Order struct {
	ID       uuid.UUID        `json:"id"`
	Total    int              `json:"total"`
	Items    []domain.Product `json:"items"`
	PlacedAt time.Time        `json:"placedAt"`
}

// Checkout waits out the simulated payment, then clears the cart. Cancelling
// ctx during the wait leaves the cart untouched.
func (s *Service) Checkout(ctx context.Context, in PaymentInput) (Order, error) {
	if err := in.Validate(); err != nil {
		return Order{}, err
	}

	st, err := s.states.FromContext(ctx)
	if err != nil {
		return Order{}, err
	}
	if len(st.Cart()) == 0 {
		return Order{}, domain.NewValidationError("cart", MsgEmptyCart)
	}

	if s.delay > 0 {
		timer := s.clock.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Order{}, fmt.Errorf("checkout: %w", ctx.Err())
		case <-timer.Chan():
		}
	}

	// Items added while the payment was pending are part of this order.
	items, total, err := st.TakeCart(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("checkout: %w", err)
	}
	if items == nil {
		return Order{}, domain.NewValidationError("cart", MsgEmptyCart)
	}

	order := Order{
		ID:       uuid.New(),
		Total:    total,
		Items:    items,
		PlacedAt: s.clock.Now().UTC(),
	}

	s.log.InfoContext(ctx, "order placed",
		slog.String("profile", st.Profile()),
		slog.String("order_id", order.ID.String()),
		slog.Int("total", order.Total),
		slog.Int("items", len(order.Items)),
	)

	return order, nil
}
