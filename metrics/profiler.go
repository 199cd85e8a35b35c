package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Profiler brackets a single batch invocation. An installed
// profiler must invoke thunk exactly once and may wrap it with whatever
// timing, logging, or tracing it wishes. The coordinator propagates
// whatever error thunk (and therefore the profiler) returns; it does not
// otherwise interpret the profiler's behavior.
type Profiler func(thunk func() error, handlerClass, batchingKey string, count int) error

// DefaultProfiler calls thunk with no additional bracketing.
func DefaultProfiler(thunk func() error, handlerClass, batchingKey string, count int) error {
	return thunk()
}

// Chain composes profilers so each wraps the next, innermost last. With no
// profilers it is DefaultProfiler.
func Chain(profilers ...Profiler) Profiler {
	if len(profilers) == 0 {
		return DefaultProfiler
	}

	return func(thunk func() error, handlerClass, batchingKey string, count int) error {
		wrapped := thunk
		for i := len(profilers) - 1; i >= 0; i-- {
			p := profilers[i]
			next := wrapped
			wrapped = func() error {
				return p(next, handlerClass, batchingKey, count)
			}
		}
		return wrapped()
	}
}

// TimingProfiler reports the wall-clock duration of every batch invocation
// as a Distribution, tagged by handler class and batching key, plus a
// Counter of how many futures were in the group.
func TimingProfiler(client Client) Profiler {
	return func(thunk func() error, handlerClass, batchingKey string, count int) error {
		tags := Tags{"handler_class": handlerClass, "batching_key": batchingKey}

		client.Counter("loadqueue.batch.size", tags, float64(count))
		timer := Timer(client, "loadqueue.batch.duration_ms", tags)
		defer timer.Stop()

		return thunk()
	}
}

// TracingProfiler wraps every batch invocation in an OpenTelemetry span
// named after the handler class, tagged with the batching key and group
// size, recording thunk's error (if any) on the span before ending it.
func TracingProfiler(tracer trace.Tracer) Profiler {
	return func(thunk func() error, handlerClass, batchingKey string, count int) error {
		_, span := tracer.Start(context.Background(), "loadqueue.batch."+handlerClass,
			trace.WithAttributes(
				attribute.String("loadqueue.handler_class", handlerClass),
				attribute.String("loadqueue.batching_key", batchingKey),
				attribute.Int("loadqueue.count", count),
			),
		)
		defer span.End()

		if err := thunk(); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}
}
