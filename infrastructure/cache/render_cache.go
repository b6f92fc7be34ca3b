package cache

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Stats counts cache outcomes since process start.
type Stats struct {
	Hits     int64
	Misses   int64
	Shared   int64
	Failures int64
}

// LRURenderCache is a capacity-bounded render cache with single-flight
// compute coalescing. Concurrent callers on the same key run one
// compute; callers on distinct keys never contend beyond the LRU's own
// lock. Failed computes are never stored, so a transient store outage
// does not poison the cache.
type LRURenderCache struct {
	entries *lru.Cache[string, string]
	group   singleflight.Group
	logger  *zap.Logger

	hits     atomic.Int64
	misses   atomic.Int64
	shared   atomic.Int64
	failures atomic.Int64
}

// NewLRURenderCache creates a cache holding at most size entries.
func NewLRURenderCache(size int, logger *zap.Logger) (*LRURenderCache, error) {
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &LRURenderCache{
		entries: entries,
		logger:  logger,
	}, nil
}

// GetOrCompute returns the cached value for key or computes it once for
// all concurrent callers. A caller whose ctx ends stops waiting and
// gets ctx.Err(), but the compute keeps running for the other waiters;
// the compute sees a context detached from any single caller's
// cancellation.
func (c *LRURenderCache) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (string, error)) (string, error) {
	if value, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return value, nil
	}
	c.misses.Add(1)

	ch := c.group.DoChan(key, func() (interface{}, error) {
		value, err := compute(context.WithoutCancel(ctx))
		if err != nil {
			c.failures.Add(1)
			return "", err
		}
		c.entries.Add(key, value)
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			c.shared.Add(1)
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Len reports the number of cached entries.
func (c *LRURenderCache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached entry.
func (c *LRURenderCache) Purge() {
	c.entries.Purge()
	c.logger.Info("render cache purged")
}

// Stats returns a snapshot of the outcome counters.
func (c *LRURenderCache) Stats() Stats {
	return Stats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Shared:   c.shared.Load(),
		Failures: c.failures.Load(),
	}
}
