package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records cache and compilation metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records one cache lookup and whether it hit.
	RecordLookup(ctx context.Context, hit bool)

	// RecordCompile records one device compilation with duration and error status.
	RecordCompile(ctx context.Context, info BuildInfo, duration time.Duration, err error)

	// RecordEviction records evicted entries with the eviction reason
	// ("device" or "stale").
	RecordEviction(ctx context.Context, reason string, count int)

	// RecordJob records one background job enqueued.
	RecordJob(ctx context.Context)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	hitCount     metric.Int64Counter
	missCount    metric.Int64Counter
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	evictCount   metric.Int64Counter
	jobCount     metric.Int64Counter
}

// NewMetrics creates a Metrics instance recording through the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	hitCount, err := meter.Int64Counter(
		"forge.cache.hits",
		metric.WithDescription("Total number of program cache hits"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	missCount, err := meter.Int64Counter(
		"forge.cache.misses",
		metric.WithDescription("Total number of program cache misses"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	totalCount, err := meter.Int64Counter(
		"forge.compile.total",
		metric.WithDescription("Total number of device compilations"),
		metric.WithUnit("{build}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"forge.compile.errors",
		metric.WithDescription("Total number of failed device compilations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"forge.compile.duration_ms",
		metric.WithDescription("Device compilation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evictCount, err := meter.Int64Counter(
		"forge.cache.evictions",
		metric.WithDescription("Total number of evicted cache entries"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	jobCount, err := meter.Int64Counter(
		"forge.scheduler.jobs",
		metric.WithDescription("Total number of background build jobs enqueued"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		hitCount:     hitCount,
		missCount:    missCount,
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		evictCount:   evictCount,
		jobCount:     jobCount,
	}, nil
}

// RecordLookup increments the hit or miss counter.
func (m *metricsImpl) RecordLookup(ctx context.Context, hit bool) {
	if hit {
		m.hitCount.Add(ctx, 1)
		return
	}
	m.missCount.Add(ctx, 1)
}

// RecordCompile records metrics for one device compilation.
func (m *metricsImpl) RecordCompile(ctx context.Context, info BuildInfo, duration time.Duration, err error) {
	opt := metric.WithAttributes(
		attribute.String("forge.variant", info.Variant),
		attribute.Int("forge.device", info.Device),
	)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordEviction records count entries evicted for the given reason.
func (m *metricsImpl) RecordEviction(ctx context.Context, reason string, count int) {
	if count == 0 {
		return
	}
	m.evictCount.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("forge.evict.reason", reason),
	))
}

// RecordJob increments the background job counter.
func (m *metricsImpl) RecordJob(ctx context.Context) {
	m.jobCount.Add(ctx, 1)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

// NewNoopMetrics returns a Metrics that discards everything.
func NewNoopMetrics() Metrics {
	return &noopMetrics{}
}

func (m *noopMetrics) RecordLookup(ctx context.Context, hit bool) {}
func (m *noopMetrics) RecordCompile(ctx context.Context, info BuildInfo, duration time.Duration, err error) {
}
func (m *noopMetrics) RecordEviction(ctx context.Context, reason string, count int) {}
func (m *noopMetrics) RecordJob(ctx context.Context)                                {}
