package tablestore

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

// CachedStore serves reads from a short-lived cache in front of another
// Store. Every ReplaceAll flushes the cache before returning so the next
// read observes the write.
type CachedStore struct {
	next  Store
	cache *cache.Cache
	mu    sync.Mutex
	stats CacheStats
	// generation changes on every invalidation; a read-through only fills
	// the cache if no invalidation happened while it was reading.
	generation uint64
}

// NewCachedStore wraps next with a read cache of the given TTL. A TTL of zero
// or less disables caching and every read goes to next.
func NewCachedStore(next Store, ttl time.Duration) *CachedStore {
	s := &CachedStore{next: next}
	if ttl > 0 {
		s.cache = cache.New(ttl, ttl*2)
	}
	return s
}

// ReadAll returns the cached copy of a table, reading through on a miss.
func (s *CachedStore) ReadAll(ctx context.Context, table string) ([]Row, error) {
	if s.cache == nil {
		return s.next.ReadAll(ctx, table)
	}

	s.mu.Lock()
	s.stats.LastAccess = time.Now()
	if v, found := s.cache.Get(table); found {
		s.stats.Hits++
		s.mu.Unlock()
		return CloneRows(v.([]Row)), nil
	}
	s.stats.Misses++
	gen := s.generation
	s.mu.Unlock()

	rows, err := s.next.ReadAll(ctx, table)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.generation == gen {
		s.cache.Set(table, CloneRows(rows), cache.DefaultExpiration)
	}
	s.mu.Unlock()
	return rows, nil
}

// ReplaceAll writes through and invalidates, even when the write fails,
// since a failed replace may have partially reached the store.
func (s *CachedStore) ReplaceAll(ctx context.Context, table string, rows []Row) error {
	err := s.next.ReplaceAll(ctx, table, rows)
	s.InvalidateCache()
	return err
}

// InvalidateCache flushes this cache and any cache below it.
func (s *CachedStore) InvalidateCache() {
	s.mu.Lock()
	s.generation++
	if s.cache != nil {
		s.cache.Flush()
	}
	s.mu.Unlock()
	s.next.InvalidateCache()
}

// Stats returns a snapshot of hit/miss counters.
func (s *CachedStore) Stats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	if s.cache != nil {
		st.Size = s.cache.ItemCount()
	}
	return st
}
