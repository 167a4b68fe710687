package cache

import (
	"context"
	"errors"
	"time"
)

var ErrMiss = errors.New("cache miss")

// Cache is the key-value capability the services are handed. Values are
// JSON-encoded by the implementations so any serializable type round-trips.
type Cache interface {
	// Get decodes the cached value into dest. It returns ErrMiss when the key
	// is absent or expired.
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
