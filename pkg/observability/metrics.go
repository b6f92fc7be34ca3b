package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// flushLimit is the PutMetricData per-call datum limit.
const flushLimit = 20

// Metrics records counters and timers and ships them to CloudWatch.
// Data points are buffered in memory and flushed in batches; a failed
// flush drops the batch rather than blocking the caller.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client

	mu     sync.Mutex
	buffer []cwtypes.MetricDatum
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// Increment adds one to a counter metric
func (m *Metrics) Increment(metric, label string) {
	m.record(metric, label, 1, cwtypes.StandardUnitCount)
}

// Gauge records an instantaneous value
func (m *Metrics) Gauge(metric, label string, value float64) {
	m.record(metric, label, value, cwtypes.StandardUnitCount)
}

// RecordDuration records an elapsed duration in milliseconds
func (m *Metrics) RecordDuration(metric, label string, d time.Duration) {
	m.record(metric, label, float64(d.Milliseconds()), cwtypes.StandardUnitMilliseconds)
}

// StartTimer starts a timer that records its duration when stopped
func (m *Metrics) StartTimer(metric, label string) Timer {
	return &cloudWatchTimer{
		metrics: m,
		metric:  metric,
		label:   label,
		started: time.Now(),
	}
}

// Timer records a duration when stopped
type Timer interface {
	Stop()
}

type cloudWatchTimer struct {
	metrics *Metrics
	metric  string
	label   string
	started time.Time
}

func (t *cloudWatchTimer) Stop() {
	t.metrics.RecordDuration(t.metric, t.label, time.Since(t.started))
}

func (m *Metrics) record(metric, label string, value float64, unit cwtypes.StandardUnit) {
	datum := cwtypes.MetricDatum{
		MetricName: aws.String(metric),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: []cwtypes.Dimension{
			{Name: aws.String("Label"), Value: aws.String(label)},
		},
	}

	m.mu.Lock()
	m.buffer = append(m.buffer, datum)
	shouldFlush := len(m.buffer) >= flushLimit
	m.mu.Unlock()

	if shouldFlush {
		m.Flush(context.Background())
	}
}

// Flush sends all buffered data points to CloudWatch
func (m *Metrics) Flush(ctx context.Context) {
	m.mu.Lock()
	batch := m.buffer
	m.buffer = nil
	m.mu.Unlock()

	for start := 0; start < len(batch); start += flushLimit {
		end := start + flushLimit
		if end > len(batch) {
			end = len(batch)
		}
		// Best effort: metrics must never fail a request.
		_, _ = m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: batch[start:end],
		})
	}
}
