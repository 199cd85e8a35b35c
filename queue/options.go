package queue

import (
	"github.com/loadqueue/loadqueue/log"
	"github.com/loadqueue/loadqueue/metrics"
)

// Option configures a Coordinator at construction time.
type Option func(*Coordinator)

// WithLogger overrides the coordinator's default colorized logger.
func WithLogger(l log.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithMetricsClient installs a metrics.Client and wraps the coordinator's
// profiler with metrics.TimingProfiler reporting through it. Call
// WithProfiler afterward if you need to compose additional profilers.
func WithMetricsClient(client metrics.Client) Option {
	return func(c *Coordinator) {
		c.metricsClient = client
		c.profiler = metrics.TimingProfiler(client)
	}
}

// WithProfiler installs the profiler that brackets every batch invocation,
// replacing whatever WithMetricsClient installed.
func WithProfiler(p metrics.Profiler) Option {
	return func(c *Coordinator) { c.profiler = p }
}

// WithRegistry installs an existing Registry (e.g. one shared with a
// scoped sub-coordinator) instead of the empty one New creates, and
// applies any class weights recorded on it via queue.WithWeight.
func WithRegistry(r *Registry) Option {
	return func(c *Coordinator) {
		c.registry = r
		for _, wa := range r.WeightAssignments() {
			c.st.classWeights[wa.handlerClass] = wa.weight
		}
	}
}
