package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yummy-backend/pkg/logger"
)

func TestMemoryCacheRoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []string{"a", "b"}, time.Minute))
	var got []string
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, []string{"a", "b"}, got)

	now = now.Add(time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrMiss)
	assert.False(t, c.Has("k"))
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Delete(ctx, "a", "missing"))

	var v int
	assert.ErrorIs(t, c.Get(ctx, "a", &v), ErrMiss)
	require.NoError(t, c.Get(ctx, "b", &v))
	assert.Equal(t, 2, v)
}

func TestLoaderCachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	l := NewLoader(NewMemoryCache(), time.Minute, logger.Nop())

	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return calls * 10, nil
	}

	v, err := Load(ctx, l, "n", load)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	v, err = Load(ctx, l, "n", load)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, calls)

	l.Invalidate(ctx, "n")
	v, err = Load(ctx, l, "n", load)
	require.NoError(t, err)
	assert.Equal(t, 20, v)
}

func TestLoaderDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	l := NewLoader(NewMemoryCache(), time.Minute, logger.Nop())
	boom := errors.New("boom")

	_, err := Load(ctx, l, "e", func(context.Context) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)

	v, err := Load(ctx, l, "e", func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestLoaderSharesConcurrentMisses(t *testing.T) {
	ctx := context.Background()
	l := NewLoader(NewMemoryCache(), time.Minute, logger.Nop())

	var calls int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Load(ctx, l, "shared", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, 7, v)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(5))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}
