package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)}
	mc := NewMemoryCache(WithMemoryClock(clock.Now))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), 5*time.Minute))

	got, err := mc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	ttl, err := mc.TTL(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)

	clock.Advance(4*time.Minute + 59*time.Second)
	_, err = mc.Get(ctx, "k")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = mc.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, mc.Len())
}

func TestMemoryCacheJanitorDropsExpired(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryCleanup(5 * time.Millisecond))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "short", []byte("v"), 20*time.Millisecond))
	require.NoError(t, mc.Set(ctx, "long", []byte("v"), time.Hour))

	require.Eventually(t, func() bool { return mc.Len() == 1 }, time.Second, 5*time.Millisecond)
	ok, err := mc.Exists(ctx, "long")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCacheNoExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	mc := NewMemoryCache(WithMemoryClock(clock.Now))

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), 0))
	clock.Advance(365 * 24 * time.Hour)

	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	mc := NewMemoryCache(WithMemoryMaxSize(2), WithMemoryClock(clock.Now))

	require.NoError(t, mc.Set(ctx, "a", []byte("1"), time.Hour))
	clock.Advance(time.Second)
	require.NoError(t, mc.Set(ctx, "b", []byte("2"), time.Hour))
	clock.Advance(time.Second)
	_, err := mc.Get(ctx, "a")
	require.NoError(t, err)
	clock.Advance(time.Second)
	require.NoError(t, mc.Set(ctx, "c", []byte("3"), time.Hour))

	_, err = mc.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = mc.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = mc.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryCacheReturnsCopies(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()

	src := []byte("abc")
	require.NoError(t, mc.Set(ctx, "k", src, time.Minute))
	src[0] = 'x'

	got, err := mc.Get(ctx, "k")
	require.NoError(t, err)
	got[1] = 'y'

	again, err := mc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "md:AAPL:1y", GenerateKeyWithParams("md", "AAPL", "1y"))
	assert.Equal(t, "md:0700.HK:5d", GenerateKeyWithParams("md", "0700.HK", "5d"))
}
