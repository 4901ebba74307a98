package store

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"weak"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/pkg/ctxutil"
)

// Registry keeps recently used profile stores in memory and builds the rest
// on demand. Concurrent first requests for one profile share a single load.
//
// A store evicted from the LRU while a request still holds it is tracked
// through a weak pointer and adopted back on the next Get, so one profile
// never has two live stores overwriting each other's collections.
type Registry struct {
	backend Backend
	opts    []Option
	loads   singleflight.Group

	mu      sync.Mutex // guards cache writes and evicted
	cache   *lru.Cache[string, *Store]
	evicted map[string]weak.Pointer[Store]
}

// NewRegistry creates a registry holding at most size stores.
func NewRegistry(backend Backend, size int, opts ...Option) (*Registry, error) {
	r := &Registry{
		backend: backend,
		opts:    opts,
		evicted: make(map[string]weak.Pointer[Store]),
	}
	cache, err := lru.NewWithEvict(size, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("create store cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

// onEvict runs inside cache.Add and cache.Remove, which are only called with
// r.mu held.
func (r *Registry) onEvict(profile string, s *Store) {
	r.evicted[profile] = weak.Make(s)
}

// Get returns the store for profile, loading it from the backend on a miss.
func (r *Registry) Get(ctx context.Context, profile string) (*Store, error) {
	if s, ok := r.cache.Get(profile); ok {
		return s, nil
	}

	v, err, _ := r.loads.Do(profile, func() (any, error) {
		if s, ok := r.adopt(profile); ok {
			return s, nil
		}
		// Detach from the caller so one cancelled request does not fail
		// every waiter on the same profile.
		s, err := New(context.WithoutCancel(ctx), r.backend, profile, r.opts...)
		if err != nil {
			return nil, err
		}
		return r.install(profile, s), nil
	})
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", profile, err)
	}
	return v.(*Store), nil
}

// adopt returns the cached store of profile, or an evicted one that is still
// referenced somewhere.
func (r *Registry) adopt(profile string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.adoptLocked(profile)
}

func (r *Registry) adoptLocked(profile string) (*Store, bool) {
	if s, ok := r.cache.Peek(profile); ok {
		return s, true
	}
	wp, ok := r.evicted[profile]
	if !ok {
		return nil, false
	}
	delete(r.evicted, profile)
	s := wp.Value()
	if s == nil {
		return nil, false
	}
	r.cache.Add(profile, s)
	return s, true
}

// install caches s unless another store for profile showed up while s was
// loading; that one wins.
func (r *Registry) install(profile string, s *Store) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.adoptLocked(profile); ok {
		return existing
	}
	r.cache.Add(profile, s)

	wp := weak.Make(s)
	runtime.AddCleanup(s, func(wp weak.Pointer[Store]) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.evicted[profile] == wp {
			delete(r.evicted, profile)
		}
	}, wp)
	return s
}

// FromContext returns the store of the profile carried by ctx.
func (r *Registry) FromContext(ctx context.Context) (*Store, error) {
	id, ok := ctxutil.ProfileIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrNoProfile
	}
	return r.Get(ctx, id.String())
}

// Reset deletes every persisted key of profile and drops its cached store.
// The next Get seeds it afresh.
func (r *Registry) Reset(ctx context.Context, profile string) error {
	for _, key := range Keys {
		if err := r.backend.Delete(ctx, profile, key); err != nil {
			return fmt.Errorf("reset profile %s: %w", profile, err)
		}
	}
	r.mu.Lock()
	r.cache.Remove(profile)
	delete(r.evicted, profile)
	r.mu.Unlock()
	return nil
}

// Ping checks the backend.
func (r *Registry) Ping(ctx context.Context) error {
	return r.backend.Ping(ctx)
}

// Len returns the number of cached stores.
func (r *Registry) Len() int {
	return r.cache.Len()
}
