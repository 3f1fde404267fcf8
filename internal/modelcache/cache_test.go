package modelcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetPut(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, ErrCacheMiss)

	payload := []byte(`{"a":1}`)
	require.NoError(t, c.Put(ctx, "k", payload))
	payload[0] = 'X' // caller mutation must not leak into the cache

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_EmptyKey(t *testing.T) {
	c := NewMemoryCache()
	assert.ErrorIs(t, c.Put(context.Background(), "", nil), ErrKeyEmpty)
	_, err := c.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrKeyEmpty)
}

func TestMemoryCache_Clear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Put(ctx, "a", []byte("1")))
	require.NoError(t, c.Put(ctx, "b", []byte("2")))
	require.NoError(t, c.Clear(ctx))
	assert.Zero(t, c.Len())
}

type failingCache struct{ MemoryCache }

func (*failingCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestCounting(t *testing.T) {
	ctx := context.Background()
	c := WithStats(NewMemoryCache())

	_, _ = c.Get(ctx, "k")
	require.NoError(t, c.Put(ctx, "k", []byte("v")))
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "k")

	s := c.Stats()
	assert.Equal(t, int64(2), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.InDelta(t, 2.0/3.0, s.HitRate(), 1e-12)

	f := WithStats(&failingCache{})
	_, err := f.Get(ctx, "k")
	require.Error(t, err)
	assert.Equal(t, Stats{Errors: 1}, f.Stats())
}

func TestStats_HitRateEmpty(t *testing.T) {
	assert.Zero(t, Stats{}.HitRate())
}

func TestRedisConfig(t *testing.T) {
	cfg := DefaultRedisConfig()
	assert.Equal(t, "localhost:6379", cfg.Addr())
	assert.Equal(t, 7*24*time.Hour, cfg.TTL)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	cfg := DefaultRedisConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	cfg.DialTimeout = 200 * time.Millisecond

	_, err := NewRedisCache(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
}
