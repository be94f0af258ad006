package cache

import (
	"context"
	"time"
)

// Store is a best-effort key-value cache. Implementations swallow backend
// failures; a cache miss and a cache error look the same to callers.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, expiration time.Duration)
	Delete(ctx context.Context, key string)
}
