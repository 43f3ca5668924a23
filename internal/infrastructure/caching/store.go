// Package caching provides a small in-memory TTL store shared by widget output
// caches and repository read-through caches.
package caching

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value  V
	expiry time.Time
}

// Store is a concurrency-safe key/value cache with a fixed TTL.
// A zero or negative TTL means entries never expire.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
	hits    int64
	misses  int64
}

// NewStore creates a store whose entries live for ttl.
func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.misses++
		var zero V
		return zero, false
	}
	if s.ttl > 0 && s.now().After(e.expiry) {
		// Lazy deletion; Purge sweeps the rest.
		delete(s.entries, key)
		s.misses++
		var zero V
		return zero, false
	}
	s.hits++
	return e.value, true
}

func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[V]{value: value, expiry: s.now().Add(s.ttl)}
}

func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Flush removes every entry.
func (s *Store[V]) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry[V])
}

// Purge removes expired entries and returns how many were dropped.
func (s *Store[V]) Purge() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if now.After(e.expiry) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns hit and miss counts since creation.
func (s *Store[V]) Stats() (hits, misses int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits, s.misses
}
