package blacklist

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process expiring key set. Entries are dropped lazily
// on read and by a background sweep, so the set never outlives the tokens it
// shadows. Suitable for single-instance deployments; use the Redis store when
// revocations must be shared.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time // key -> expiry
	now     func() time.Time
}

const sweepInterval = time.Minute

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
	go s.sweep()
	return s
}

// Add records key until ttl elapses. A non-positive ttl is ignored.
func (s *MemoryStore) Add(_ context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	s.entries[key] = s.now().Add(ttl)
	s.mu.Unlock()
	return nil
}

// Exists reports whether key is present and not yet expired. Expired entries
// are removed on the spot.
func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiry) {
		delete(s.entries, key)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// sweep drops expired entries periodically so abandoned keys do not linger
// between reads.
func (s *MemoryStore) sweep() {
	for {
		time.Sleep(sweepInterval)
		now := s.now()
		s.mu.Lock()
		for key, expiry := range s.entries {
			if !now.Before(expiry) {
				delete(s.entries, key)
			}
		}
		s.mu.Unlock()
	}
}
