package blacklist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store with a controllable clock and no background
// sweep goroutine racing the test.
func newTestStore() (*MemoryStore, *time.Time) {
	now := time.Now()
	s := &MemoryStore{
		entries: make(map[string]time.Time),
		now:     func() time.Time { return now },
	}
	return s, &now
}

func TestMemoryStore_AddExists(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "k1", time.Minute))

	ok, err := s.Exists(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_EntryGoneAfterTTL(t *testing.T) {
	s, now := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "k1", time.Minute))

	*now = now.Add(time.Minute)

	ok, err := s.Exists(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	// The lazy check also removed the entry.
	s.mu.Lock()
	_, present := s.entries["k1"]
	s.mu.Unlock()
	assert.False(t, present)
}

func TestMemoryStore_NonPositiveTTLIgnored(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "k1", 0))
	require.NoError(t, s.Add(ctx, "k2", -time.Second))

	ok, _ := s.Exists(ctx, "k1")
	assert.False(t, ok)
	ok, _ = s.Exists(ctx, "k2")
	assert.False(t, ok)
}

func TestMemoryStore_Remove(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "k1", time.Minute))
	require.NoError(t, s.Remove(ctx, "k1"))

	ok, _ := s.Exists(ctx, "k1")
	assert.False(t, ok)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%26))
			_ = s.Add(ctx, key, time.Minute)
			_, _ = s.Exists(ctx, key)
		}(i)
	}
	wg.Wait()
}
