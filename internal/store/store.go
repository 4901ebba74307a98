// Package store owns the mutable per-profile application state: preferences,
// scan history, recovery tracker, community posts and the shopping cart.
// Every mutation is written through to a Backend before it becomes visible.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/i18n"
)

// Persisted keys. Each holds one JSON document.
const (
	KeyHistory     = "nivara_history"
	KeyTracker     = "nivara_tracker"
	KeyCommunity   = "nivara_community"
	KeyCart        = "nivara_cart"
	KeyPreferences = "nivara_preferences"
)

// Keys lists every key a store may write, in load order.
var Keys = []string{KeyHistory, KeyTracker, KeyCommunity, KeyCart, KeyPreferences}

// DoseIncrement is the progress gained per completed daily dose.
const DoseIncrement = 10

const dateLayout = "Jan 2, 2006"

// Backend is durable key/value storage partitioned by profile.
type Backend interface {
	Get(ctx context.Context, profile, key string) ([]byte, bool, error)
	Put(ctx context.Context, profile, key string, value []byte) error
	Delete(ctx context.Context, profile, key string) error
	Ping(ctx context.Context) error
}

// Store is the state of one profile. Construct it with New; the zero value
// panics on use.
type Store struct {
	mu      sync.Mutex
	ready   bool
	backend Backend
	profile string
	clock   clockwork.Clock
	log     *slog.Logger
	catalog domain.Catalog
	table   i18n.Table
	ids     idGenerator

	prefs   domain.Preferences
	history []domain.HistoryRecord
	tracker []domain.TrackerItem
	posts   []domain.CommunityPost
	cart    []int
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for ids and dates.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger used to report recovered corruption.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithCatalog replaces the product catalog.
func WithCatalog(c domain.Catalog) Option {
	return func(s *Store) { s.catalog = c }
}

// WithTranslations replaces the UI string table.
func WithTranslations(t i18n.Table) Option {
	return func(s *Store) { s.table = t }
}

// New loads the profile's state from backend, seeding collections that were
// never written. Corrupt documents are reset to empty and logged. A backend
// read or seed write failure aborts construction.
func New(ctx context.Context, backend Backend, profile string, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		profile: profile,
		clock:   clockwork.NewRealClock(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = domain.DefaultCatalog()
	}
	if s.table == nil {
		s.table = i18n.Default()
	}
	s.log = s.log.With("component", "store", "profile", profile)
	s.ids = idGenerator{clock: s.clock}

	var err error
	if s.history, err = loadOrSeed(ctx, s, KeyHistory, seedHistory); err != nil {
		return nil, err
	}
	if s.tracker, err = loadOrSeed(ctx, s, KeyTracker, seedTracker); err != nil {
		return nil, err
	}
	if s.posts, err = loadOrSeed(ctx, s, KeyCommunity, seedCommunity); err != nil {
		return nil, err
	}
	if s.cart, err = s.loadCart(ctx); err != nil {
		return nil, err
	}
	if s.prefs, err = s.loadPreferences(ctx); err != nil {
		return nil, err
	}

	for _, h := range s.history {
		if id, err := strconv.ParseInt(h.ID, 10, 64); err == nil {
			s.ids.observe(id)
		}
	}
	for _, t := range s.tracker {
		s.ids.observe(t.ID)
	}
	for _, p := range s.posts {
		s.ids.observe(p.ID)
	}

	s.ready = true
	return s, nil
}

// Profile returns the profile id this store belongs to.
func (s *Store) Profile() string {
	s.mustBeReady()
	return s.profile
}

func (s *Store) mustBeReady() {
	if s == nil || !s.ready {
		panic("store: used before initialization")
	}
}

func loadOrSeed[T any](ctx context.Context, s *Store, key string, seed func() []T) ([]T, error) {
	raw, ok, err := s.backend.Get(ctx, s.profile, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		items := seed()
		if err := s.persist(ctx, key, items); err != nil {
			return nil, fmt.Errorf("seed %s: %w", key, err)
		}
		return items, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn("corrupt persisted collection, resetting to empty", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// loadCart keeps integer entries that resolve in the catalog, in order.
func (s *Store) loadCart(ctx context.Context) ([]int, error) {
	raw, ok, err := s.backend.Get(ctx, s.profile, KeyCart)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyCart, err)
	}
	if !ok {
		return []int{}, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.log.Warn("corrupt persisted cart, resetting to empty", "key", KeyCart, "error", err)
		return []int{}, nil
	}

	cart := make([]int, 0, len(entries))
	dropped := 0
	for _, e := range entries {
		var id int
		if err := json.Unmarshal(e, &id); err != nil || !s.catalog.Contains(id) {
			dropped++
			continue
		}
		cart = append(cart, id)
	}
	if dropped > 0 {
		s.log.Warn("dropped unknown cart entries", "count", dropped)
	}
	return cart, nil
}

func (s *Store) loadPreferences(ctx context.Context) (domain.Preferences, error) {
	raw, ok, err := s.backend.Get(ctx, s.profile, KeyPreferences)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("load %s: %w", KeyPreferences, err)
	}
	if !ok {
		return domain.DefaultPreferences(), nil
	}

	var p domain.Preferences
	if err := json.Unmarshal(raw, &p); err != nil {
		s.log.Warn("corrupt persisted preferences, using defaults", "key", KeyPreferences, "error", err)
		return domain.DefaultPreferences(), nil
	}
	if !p.Language.IsValid() {
		p.Language = domain.LanguageEN
	}
	return p, nil
}

func (s *Store) persist(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Put(ctx, s.profile, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
