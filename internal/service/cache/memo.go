package cache

import (
	"context"
	"errors"
	"time"

	domrepo "StockLens/internal/domain/repository"
	pkgcache "StockLens/pkg/cache"
	xlogger "StockLens/pkg/logger"
)

const memoPrefix = "md"

// FetchFunc produces a fresh response. cacheable=false stops the bytes from
// being stored, so failed or empty responses are retried on the next call.
type FetchFunc func(ctx context.Context) (data []byte, cacheable bool, err error)

// Memo caches provider responses by (symbol, range) for a fixed TTL.
// Concurrent misses for the same key each call the provider.
type Memo struct {
	store   Store
	ttl     time.Duration
	metrics domrepo.Metrics
	logger  *xlogger.Logger
}

// NewMemo creates a memo over store with the given TTL.
func NewMemo(store Store, ttl time.Duration, metrics domrepo.Metrics, logger *xlogger.Logger) *Memo {
	return &Memo{store: store, ttl: ttl, metrics: metrics, logger: logger}
}

// Key builds the memo key for a normalized symbol and range.
func Key(normalized string, r domrepo.Range) string {
	return pkgcache.GenerateKeyWithParams(memoPrefix, normalized, r)
}

// TTL returns the configured entry lifetime.
func (m *Memo) TTL() time.Duration { return m.ttl }

// Do returns the cached bytes for key or calls fetch and stores its result.
// The second return value reports a cache hit.
func (m *Memo) Do(ctx context.Context, key string, fetch FetchFunc) ([]byte, bool, error) {
	data, err := m.store.Get(ctx, key)
	switch {
	case err == nil:
		m.record(true)
		return data, true, nil
	case !errors.Is(err, pkgcache.ErrCacheMiss):
		m.logger.Warn("memo lookup failed", xlogger.String("key", key), xlogger.Error(err))
	}
	m.record(false)

	data, cacheable, err := fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	if cacheable {
		if err := m.store.Set(ctx, key, data, m.ttl); err != nil {
			m.logger.Warn("memo store failed", xlogger.String("key", key), xlogger.Error(err))
		}
	}
	return data, false, nil
}

func (m *Memo) record(hit bool) {
	if m.metrics != nil {
		m.metrics.RecordCacheLookup(hit)
	}
}
