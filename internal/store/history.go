package store

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// AddHistoryRecord stamps the draft with an id and today's date and
// prepends it to the history.
func (s *Store) AddHistoryRecord(ctx context.Context, d domain.HistoryDraft) (domain.HistoryRecord, error) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := domain.HistoryRecord{
		ID:          strconv.FormatInt(s.ids.next(), 10),
		Date:        s.clock.Now().Format(dateLayout),
		Plant:       d.Plant,
		Diagnosis:   d.Diagnosis,
		Confidence:  d.Confidence,
		Image:       d.Image,
		Description: d.Description,
		Symptoms:    cloneStrings(d.Symptoms),
		Treatment:   cloneStrings(d.Treatment),
		Prevention:  cloneStrings(d.Prevention),
	}

	next := append([]domain.HistoryRecord{rec}, s.history...)
	if err := s.persist(ctx, KeyHistory, next); err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("add history record: %w", err)
	}
	s.history = next
	return cloneRecord(rec), nil
}

// History returns the scan history, newest first.
func (s *Store) History() []domain.HistoryRecord {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.HistoryRecord, len(s.history))
	for i, r := range s.history {
		out[i] = cloneRecord(r)
	}
	return out
}

func cloneRecord(r domain.HistoryRecord) domain.HistoryRecord {
	r.Symptoms = cloneStrings(r.Symptoms)
	r.Treatment = cloneStrings(r.Treatment)
	r.Prevention = cloneStrings(r.Prevention)
	return r
}

// cloneStrings copies s, mapping nil to an empty list so it encodes as [].
func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
