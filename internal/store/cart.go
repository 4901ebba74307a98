package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// AddToCart appends productID. Ids are not checked here; unknown ids are
// dropped the next time the cart is loaded.
func (s *Store) AddToCart(ctx context.Context, productID int) error {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.cart), productID)
	if err := s.persist(ctx, KeyCart, next); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	s.cart = next
	return nil
}

// RemoveFromCart drops the line at index. An out-of-range index removes
// nothing and reports false; the cart is written back either way.
func (s *Store) RemoveFromCart(ctx context.Context, index int) (bool, error) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.cart)
	removed := index >= 0 && index < len(next)
	if removed {
		next = slices.Delete(next, index, index+1)
	}
	if err := s.persist(ctx, KeyCart, next); err != nil {
		return false, fmt.Errorf("remove from cart: %w", err)
	}
	s.cart = next
	return removed, nil
}

// ClearCart empties the cart and stores an empty list.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	next := []int{}
	if err := s.persist(ctx, KeyCart, next); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.cart = next
	return nil
}

// TakeCart empties the cart in one step and returns what it held: the
// resolved lines and their total. An empty cart is left as is and returns
// nil lines.
func (s *Store) TakeCart(ctx context.Context) ([]domain.Product, int, error) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return nil, 0, nil
	}
	lines := s.resolveLocked()
	total := s.catalog.Total(s.cart)

	next := []int{}
	if err := s.persist(ctx, KeyCart, next); err != nil {
		return nil, 0, fmt.Errorf("take cart: %w", err)
	}
	s.cart = next
	return lines, total, nil
}

// Cart returns the product ids in insertion order.
func (s *Store) Cart() []int {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.cart)
}

// Products returns the catalog.
func (s *Store) Products() []domain.Product {
	s.mustBeReady()
	return slices.Clone(s.catalog)
}

// CartLines resolves the cart against the catalog, skipping dangling ids.
func (s *Store) CartLines() []domain.Product {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolveLocked()
}

func (s *Store) resolveLocked() []domain.Product {
	lines := make([]domain.Product, 0, len(s.cart))
	for _, id := range s.cart {
		if p, ok := s.catalog.Lookup(id); ok {
			lines = append(lines, p)
		}
	}
	return lines
}

// CartTotal sums catalog prices; dangling ids contribute zero.
func (s *Store) CartTotal() int {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalog.Total(s.cart)
}
