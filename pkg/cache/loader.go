package cache

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"yummy-backend/pkg/logger"
)

// Loader is the cache-aside strategy handed to services: read through the
// cache, load on miss, store the result. Concurrent misses on one key share a
// single load.
type Loader struct {
	cache   Cache
	timeout time.Duration
	group   singleflight.Group
	log     *logger.Logger
}

func NewLoader(c Cache, timeout time.Duration, log *logger.Logger) *Loader {
	return &Loader{cache: c, timeout: timeout, log: log.With("service", "CacheLoader")}
}

func (l *Loader) Timeout() time.Duration { return l.timeout }

// Invalidate drops keys. Failures are logged; a stale entry is never an error
// for the caller.
func (l *Loader) Invalidate(ctx context.Context, keys ...string) {
	if err := l.cache.Delete(ctx, keys...); err != nil {
		l.log.Warn("cache invalidate failed", "keys", keys, "error", err)
	}
}

// Load returns the cached value for key or computes it with load.
func Load[T any](ctx context.Context, l *Loader, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := l.cache.Get(ctx, key, &out)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, ErrMiss) {
		l.log.Warn("cache get failed", "key", key, "error", err)
	}

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := l.cache.Set(ctx, key, val, l.timeout); err != nil {
			l.log.Warn("cache set failed", "key", key, "error", err)
		}
		return val, nil
	})
	if err != nil {
		return out, err
	}
	return v.(T), nil
}
