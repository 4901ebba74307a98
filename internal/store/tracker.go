package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// AddTrackerItem prepends a new treatment regimen.
func (s *Store) AddTrackerItem(ctx context.Context, d domain.TrackerDraft) (domain.TrackerItem, error) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	item := domain.TrackerItem{
		ID:       s.ids.next(),
		Plant:    d.Plant,
		Issue:    d.Issue,
		Progress: d.Progress,
		Severity: d.Severity,
		Cure:     d.Cure,
		Schedule: d.Schedule,
		IsDone:   d.IsDone,
	}

	next := append([]domain.TrackerItem{item}, s.tracker...)
	if err := s.persist(ctx, KeyTracker, next); err != nil {
		return domain.TrackerItem{}, fmt.Errorf("add tracker item: %w", err)
	}
	s.tracker = next
	return item, nil
}

// UpdateTrackerItem merges upd into the item with the given id. An unknown id
// is not an error: nothing changes and false is returned. The collection is
// written back either way.
func (s *Store) UpdateTrackerItem(ctx context.Context, id int64, upd domain.TrackerUpdate) (bool, error) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	_, found, err := s.updateTrackerLocked(ctx, id, upd.Apply)
	if err != nil {
		return false, fmt.Errorf("update tracker item: %w", err)
	}
	return found, nil
}

// MarkDoseDone records today's dose: progress grows by DoseIncrement, capped
// at domain.MaxProgress, and the daily gate closes. While the gate is closed
// further calls change nothing.
func (s *Store) MarkDoseDone(ctx context.Context, id int64) (domain.TrackerItem, bool, error) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.trackerIndex(id)
	if i < 0 {
		return domain.TrackerItem{}, false, nil
	}
	if s.tracker[i].IsDone {
		return s.tracker[i], true, nil
	}

	item, _, err := s.updateTrackerLocked(ctx, id, func(t domain.TrackerItem) domain.TrackerItem {
		t.Progress = min(t.Progress+DoseIncrement, domain.MaxProgress)
		t.IsDone = true
		return t
	})
	if err != nil {
		return domain.TrackerItem{}, false, fmt.Errorf("mark dose done: %w", err)
	}
	return item, true, nil
}

// ResetDose reopens the daily gate.
func (s *Store) ResetDose(ctx context.Context, id int64) (domain.TrackerItem, bool, error) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	item, found, err := s.updateTrackerLocked(ctx, id, func(t domain.TrackerItem) domain.TrackerItem {
		t.IsDone = false
		return t
	})
	if err != nil {
		return domain.TrackerItem{}, false, fmt.Errorf("reset dose: %w", err)
	}
	return item, found, nil
}

// updateTrackerLocked applies fn to the matching item in a copy of the
// collection, persists the copy and swaps it in.
func (s *Store) updateTrackerLocked(ctx context.Context, id int64, fn func(domain.TrackerItem) domain.TrackerItem) (domain.TrackerItem, bool, error) {
	next := slices.Clone(s.tracker)

	var updated domain.TrackerItem
	i := s.trackerIndex(id)
	found := i >= 0
	if found {
		next[i] = fn(next[i])
		next[i].ID = id
		updated = next[i]
	}

	if err := s.persist(ctx, KeyTracker, next); err != nil {
		return domain.TrackerItem{}, false, err
	}
	s.tracker = next
	return updated, found, nil
}

func (s *Store) trackerIndex(id int64) int {
	return slices.IndexFunc(s.tracker, func(t domain.TrackerItem) bool { return t.ID == id })
}

// Tracker returns all regimens, newest first.
func (s *Store) Tracker() []domain.TrackerItem {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.tracker)
}

// TrackerItem returns the regimen with the given id.
func (s *Store) TrackerItem(id int64) (domain.TrackerItem, bool) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.trackerIndex(id)
	if i < 0 {
		return domain.TrackerItem{}, false
	}
	return s.tracker[i], true
}
