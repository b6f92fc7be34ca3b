package cache

import (
	"time"

	"go.uber.org/zap"

	"atomcms/pkg/observability"
)

// StatsReporter periodically publishes render cache counters as
// CloudWatch metrics.
type StatsReporter struct {
	cache    *LRURenderCache
	metrics  *observability.Metrics
	interval time.Duration
	logger   *zap.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewStatsReporter creates a reporter; Start must be called to begin
// publishing.
func NewStatsReporter(cache *LRURenderCache, metrics *observability.Metrics, interval time.Duration, logger *zap.Logger) *StatsReporter {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StatsReporter{
		cache:    cache,
		metrics:  metrics,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins publishing in a background goroutine.
func (r *StatsReporter) Start() {
	go r.run()
}

// Stop ends publishing after a final report.
func (r *StatsReporter) Stop() {
	close(r.stop)
	<-r.done
}

func (r *StatsReporter) run() {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.report()
		case <-r.stop:
			r.report()
			return
		}
	}
}

func (r *StatsReporter) report() {
	stats := r.cache.Stats()
	r.metrics.Gauge("RenderCacheHits", "render", float64(stats.Hits))
	r.metrics.Gauge("RenderCacheMisses", "render", float64(stats.Misses))
	r.metrics.Gauge("RenderCacheShared", "render", float64(stats.Shared))
	r.metrics.Gauge("RenderCacheFailures", "render", float64(stats.Failures))
	r.metrics.Gauge("RenderCacheEntries", "render", float64(r.cache.Len()))
	r.logger.Debug("render cache stats",
		zap.Int64("hits", stats.Hits),
		zap.Int64("misses", stats.Misses),
		zap.Int("entries", r.cache.Len()),
	)
}
