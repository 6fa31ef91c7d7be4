package cache

import (
	"context"
	"time"
)

// Store is the byte cache the memo writes through. pkg/cache.Service
// implementations satisfy it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
}
