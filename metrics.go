package iftracer

import "time"

// Metrics is an optional interface for SDK telemetry.
// Implementations must be safe for concurrent use.
type Metrics interface {
	// IncrementCounter increments a named counter.
	IncrementCounter(name string, value int64)

	// RecordDuration records a named duration measurement.
	RecordDuration(name string, d time.Duration)
}

// Metric names recorded by the SDK.
const (
	metricRequestsTotal      = "iftracer.requests.total"
	metricRequestRetries     = "iftracer.requests.retries"
	metricRequestFailures    = "iftracer.requests.failures"
	metricRequestDuration    = "iftracer.requests.duration"
	metricEvaluationsTotal   = "iftracer.evaluations.total"
	metricEvaluationsFailed  = "iftracer.evaluations.failed"
	metricEvaluationDuration = "iftracer.evaluations.duration"
	metricBatchSize          = "iftracer.batch.size"
	metricBatchDuration      = "iftracer.batch.duration"
)

// nopMetrics discards all measurements.
type nopMetrics struct{}

func (nopMetrics) IncrementCounter(name string, value int64)   {}
func (nopMetrics) RecordDuration(name string, d time.Duration) {}

var _ Metrics = nopMetrics{}
