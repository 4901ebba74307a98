package store

import (
	"context"
	"errors"
	"sync"
)

var errBackendDown = errors.New("backend down")

// fakeBackend is an in-memory Backend with failure switches and call counts.
type fakeBackend struct {
	mu       sync.Mutex
	data     map[string][]byte
	gets     map[string]int
	puts     map[string]int
	failGet  bool
	failPut  bool
	failKeys map[string]bool
}

var _ Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		data:     make(map[string][]byte),
		gets:     make(map[string]int),
		puts:     make(map[string]int),
		failKeys: make(map[string]bool),
	}
}

func fakeKey(profile, key string) string { return profile + "/" + key }

func (f *fakeBackend) Get(_ context.Context, profile, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets[key]++
	if f.failGet {
		return nil, false, errBackendDown
	}
	v, ok := f.data[fakeKey(profile, key)]
	return v, ok, nil
}

func (f *fakeBackend) Put(_ context.Context, profile, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut || f.failKeys[key] {
		return errBackendDown
	}
	f.puts[key]++
	f.data[fakeKey(profile, key)] = append([]byte(nil), value...)
	return nil
}

func (f *fakeBackend) Delete(_ context.Context, profile, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, fakeKey(profile, key))
	return nil
}

func (f *fakeBackend) Ping(context.Context) error { return nil }

func (f *fakeBackend) raw(profile, key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[fakeKey(profile, key)]
	return string(v), ok
}

func (f *fakeBackend) set(profile, key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[fakeKey(profile, key)] = []byte(value)
}

func (f *fakeBackend) putCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts[key]
}

func (f *fakeBackend) getCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets[key]
}

func (f *fakeBackend) setFailPut(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPut = v
}
