package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	domrepo "StockLens/internal/domain/repository"
	pkgcache "StockLens/pkg/cache"
	xlogger "StockLens/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoKey(t *testing.T) {
	assert.Equal(t, "md:AAPL:1y", Key("AAPL", domrepo.Range1Y))
	assert.Equal(t, "md:0700.HK:ytd", Key("0700.HK", domrepo.RangeYTD))
}

func TestMemoDo(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := pkgcache.NewMemoryCache(pkgcache.WithMemoryClock(func() time.Time { return now }))
	memo := NewMemo(store, 5*time.Minute, nil, xlogger.NewNop())

	calls := 0
	fetch := func(context.Context) ([]byte, bool, error) {
		calls++
		return []byte{byte('0' + calls)}, true, nil
	}

	first, hit, err := memo.Do(ctx, "k", fetch)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := memo.Do(ctx, "k", fetch)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	now = now.Add(5 * time.Minute)
	third, hit, err := memo.Do(ctx, "k", fetch)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotEqual(t, first, third)
	assert.Equal(t, 2, calls)
}

func TestMemoSkipsUncacheable(t *testing.T) {
	ctx := context.Background()
	memo := NewMemo(pkgcache.NewMemoryCache(), time.Minute, nil, xlogger.NewNop())

	calls := 0
	fetch := func(context.Context) ([]byte, bool, error) {
		calls++
		return []byte("empty"), false, nil
	}
	for i := 0; i < 3; i++ {
		_, hit, err := memo.Do(ctx, "k", fetch)
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Equal(t, 3, calls)
}

func TestMemoPropagatesFetchError(t *testing.T) {
	ctx := context.Background()
	memo := NewMemo(pkgcache.NewMemoryCache(), time.Minute, nil, xlogger.NewNop())
	boom := errors.New("boom")

	_, _, err := memo.Do(ctx, "k", func(context.Context) ([]byte, bool, error) { return nil, false, boom })
	assert.ErrorIs(t, err, boom)
}
