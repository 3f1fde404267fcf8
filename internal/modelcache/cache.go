// Package modelcache stores encoded model artifacts keyed by content hash.
package modelcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrCacheMiss is returned by Get when no artifact is stored for a key.
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrKeyEmpty is returned when an empty key is provided.
	ErrKeyEmpty = errors.New("cache: key cannot be empty")
)

// Cache is a byte store for encoded model artifacts.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}

// HitRate returns hits / (hits + misses), or 0 when nothing was looked up.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Counting wraps a Cache and records hit/miss statistics for Get.
type Counting struct {
	Cache
	hits, misses, errs atomic.Int64
}

// WithStats wraps c with hit/miss counting.
func WithStats(c Cache) *Counting {
	return &Counting{Cache: c}
}

func (c *Counting) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.Cache.Get(ctx, key)
	switch {
	case err == nil:
		c.hits.Add(1)
	case errors.Is(err, ErrCacheMiss):
		c.misses.Add(1)
	default:
		c.errs.Add(1)
	}
	return b, err
}

// Stats returns a snapshot of the counters.
func (c *Counting) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Errors: c.errs.Load()}
}

// MemoryCache is an in-process Cache. It does not survive restarts.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrKeyEmpty
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryCache) Put(_ context.Context, key string, payload []byte) error {
	if key == "" {
		return ErrKeyEmpty
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]byte(nil), payload...)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryCache) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}

// Len returns the number of stored artifacts.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
