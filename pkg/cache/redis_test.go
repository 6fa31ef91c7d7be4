package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := NewRedisCache(WithRedisAddr(mr.Addr()), WithRedisPrefix("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return mr, rc
}

func TestRedisCacheSetGet(t *testing.T) {
	ctx := context.Background()
	mr, rc := newTestRedis(t)

	require.NoError(t, rc.Set(ctx, "md:AAPL:1y", []byte(`{"a":1}`), time.Minute))
	assert.True(t, mr.Exists("test:md:AAPL:1y"))

	got, err := rc.Get(ctx, "md:AAPL:1y")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	ttl, err := rc.TTL(ctx, "md:AAPL:1y")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	mr.FastForward(time.Minute)
	_, err = rc.Get(ctx, "md:AAPL:1y")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = rc.TTL(ctx, "md:AAPL:1y")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCachePoolSettings(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := NewRedisCache(WithRedisAddr(mr.Addr()), WithRedisPool(4, 1, time.Second))
	require.NoError(t, err)
	defer rc.Close()

	opts := rc.Client().Options()
	assert.Equal(t, 4, opts.PoolSize)
	assert.Equal(t, 1, opts.MinIdleConns)
	assert.Equal(t, time.Second, opts.PoolTimeout)
}

func TestRedisCacheUnreachable(t *testing.T) {
	_, err := NewRedisCache(WithRedisAddr("127.0.0.1:1"))
	assert.Error(t, err)
}

func TestLayeredCacheBackfillsMemory(t *testing.T) {
	ctx := context.Background()
	mr, rc := newTestRedis(t)
	lc := NewLayeredCache(rc)

	require.NoError(t, mr.Set("test:k", "remote"))
	mr.SetTTL("test:k", 30*time.Second)

	got, err := lc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "remote", string(got))

	ttl, err := lc.memCache.TTL(ctx, "k")
	require.NoError(t, err)
	assert.InDelta(t, float64(30*time.Second), float64(ttl), float64(time.Second))

	mr.Del("test:k")
	got, err = lc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "remote", string(got))
}

func TestLayeredCacheWriteThrough(t *testing.T) {
	ctx := context.Background()
	mr, rc := newTestRedis(t)
	lc := NewLayeredCache(rc)

	require.NoError(t, lc.Set(ctx, "k", []byte("v"), time.Minute))
	v, err := mr.Get("test:k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	ok, err := lc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, lc.Delete(ctx, "k"))
	_, err = lc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
