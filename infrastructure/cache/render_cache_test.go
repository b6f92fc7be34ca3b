package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T, size int) *LRURenderCache {
	t.Helper()
	c, err := NewLRURenderCache(size, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestGetOrComputeCachesResult(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 4)

	var computes atomic.Int32
	compute := func(ctx context.Context) (string, error) {
		computes.Add(1)
		return "rendered", nil
	}

	first, err := c.GetOrCompute(ctx, "key", compute)
	require.NoError(t, err)
	second, err := c.GetOrCompute(ctx, "key", compute)
	require.NoError(t, err)

	assert.Equal(t, "rendered", first)
	assert.Equal(t, "rendered", second)
	assert.Equal(t, int32(1), computes.Load())
	assert.Equal(t, 1, c.Len())

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestGetOrComputeCoalescesConcurrentCallers(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 4)

	var computes atomic.Int32
	release := make(chan struct{})

	const callers = 16
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.GetOrCompute(ctx, "shared", func(ctx context.Context) (string, error) {
				computes.Add(1)
				<-release
				return "value", nil
			})
		}(i)
	}

	// Let every goroutine reach the singleflight before the compute
	// finishes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), computes.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "value", results[i])
	}
}

func TestGetOrComputeDoesNotStoreFailures(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 4)

	boom := errors.New("store outage")
	_, err := c.GetOrCompute(ctx, "key", func(ctx context.Context) (string, error) {
		return "", boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	// The next caller recomputes and succeeds.
	value, err := c.GetOrCompute(ctx, "key", func(ctx context.Context) (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(1), c.Stats().Failures)
}

func TestGetOrComputeCancelledWaiter(t *testing.T) {
	c := newTestCache(t, 4)

	release := make(chan struct{})
	started := make(chan struct{})

	// First caller holds the compute open.
	go func() {
		_, _ = c.GetOrCompute(context.Background(), "slow", func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "late", nil
		})
	}()
	<-started

	// Second caller gives up; the shared compute must keep running.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetOrCompute(ctx, "slow", func(ctx context.Context) (string, error) {
		return "", errors.New("should not run")
	})
	require.ErrorIs(t, err, context.Canceled)

	close(release)

	// The original compute finished and stored its value.
	assert.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 2)

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("key-%d", i)
		_, err := c.GetOrCompute(ctx, key, func(ctx context.Context) (string, error) {
			return key, nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, c.Len())

	// key-0 was evicted; recomputing it counts as a miss.
	missesBefore := c.Stats().Misses
	_, err := c.GetOrCompute(ctx, "key-0", func(ctx context.Context) (string, error) {
		return "key-0", nil
	})
	require.NoError(t, err)
	assert.Equal(t, missesBefore+1, c.Stats().Misses)
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 4)

	_, err := c.GetOrCompute(ctx, "key", func(ctx context.Context) (string, error) {
		return "value", nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}
