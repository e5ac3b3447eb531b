// Package cache tracks listing ids already processed in this run, so the
// same vehicle surfacing on several list pages (pagination overlap, promoted
// rows) is written once.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	createdAt time.Time
}

// Seen is an in-memory registry of processed listing ids.
// It is safe for concurrent use.
type Seen struct {
	mu         sync.RWMutex
	store      map[string]entry
	maxEntries int
	ttl        time.Duration
}

// NewSeen creates a registry holding at most maxEntries ids. Entries older
// than ttl count as unseen again; a ttl of 0 means entries never expire.
func NewSeen(maxEntries int, ttl time.Duration) *Seen {
	if maxEntries <= 0 {
		maxEntries = 100_000
	}
	return &Seen{
		store:      make(map[string]entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// Has reports whether id was marked and has not expired.
func (s *Seen) Has(id string) bool {
	s.mu.RLock()
	e, ok := s.store[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if s.ttl > 0 && time.Since(e.createdAt) > s.ttl {
		return false
	}
	return true
}

// Mark records id. Returns false when the id was already present, so the
// caller can use it as a claim.
func (s *Seen) Mark(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.store[id]; ok {
		if s.ttl <= 0 || time.Since(e.createdAt) <= s.ttl {
			return false
		}
	}
	// Evict one random entry if at capacity (map iteration is random in Go).
	if len(s.store) >= s.maxEntries {
		for k := range s.store {
			delete(s.store, k)
			break
		}
	}
	s.store[id] = entry{createdAt: time.Now()}
	return true
}

// Len is the number of ids currently held.
func (s *Seen) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}
