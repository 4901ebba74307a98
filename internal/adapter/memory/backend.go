// Package memory is a process-local state backend. Data is lost on restart;
// it serves tests and the "memory" storage driver.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

type entry struct {
	value     []byte
	updatedAt time.Time
}

// Backend stores profile state in a map.
type Backend struct {
	mu   sync.RWMutex
	data map[string]map[string]entry
	now  func() time.Time
}

// New creates an empty Backend.
func New() *Backend {
	return &Backend{
		data: make(map[string]map[string]entry),
		now:  time.Now,
	}
}

func (b *Backend) Get(_ context.Context, profile, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.data[profile][key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(e.value), true, nil
}

func (b *Backend) Put(_ context.Context, profile, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys, ok := b.data[profile]
	if !ok {
		keys = make(map[string]entry)
		b.data[profile] = keys
	}
	keys[key] = entry{value: slices.Clone(value), updatedAt: b.now()}
	return nil
}

func (b *Backend) Delete(_ context.Context, profile, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.data[profile], key)
	if len(b.data[profile]) == 0 {
		delete(b.data, profile)
	}
	return nil
}

func (b *Backend) Ping(context.Context) error { return nil }

// List returns every key stored for profile, sorted by key.
func (b *Backend) List(_ context.Context, profile string) ([]domain.StateEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.StateEntry, 0, len(b.data[profile]))
	for k, e := range b.data[profile] {
		out = append(out, domain.StateEntry{Key: k, Value: slices.Clone(e.value), UpdatedAt: e.updatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Close is a no-op.
func (b *Backend) Close() error { return nil }
