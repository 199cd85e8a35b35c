// Package metrics provides the coordinator's ambient instrumentation
// surface: a tagged metrics client, plus Profiler implementations (see
// profiler.go) that wrap each batch invocation with timing
// and/or tracing.
package metrics

import "time"

// Tags is a flat set of dimensions attached to a metric sample.
type Tags map[string]string

// Client is the metrics sink the coordinator reports through (via
// TimingProfiler, see queue.WithMetricsClient).
type Client interface {
	Counter(name string, tags Tags, value float64)

	Distribution(name string, tags Tags, value float64)

	Timing(name string, tags Tags, duration time.Duration)

	WithTags(tags Tags) Client
}
