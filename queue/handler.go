package queue

import (
	"reflect"

	"github.com/loadqueue/loadqueue/future"
	"github.com/loadqueue/loadqueue/internal/fn"
)

// Handler is the capability a handler class exposes to the coordinator: it
// resolves an entire group of futures sharing a batching key in one call.
// Contract: call future.Satisfy(value) exactly once on every entry of
// group before returning; use a nil value if there is no useful result;
// never satisfy a future outside of group.
type Handler interface {
	SatisfyMulti(group map[string]future.Queueable, batchingKey string) error
}

// HandlerFunc adapts a plain function to the Handler interface, the way
// http.HandlerFunc adapts a function to http.Handler.
type HandlerFunc func(group map[string]future.Queueable, batchingKey string) error

func (f HandlerFunc) SatisfyMulti(group map[string]future.Queueable, batchingKey string) error {
	return f(group, batchingKey)
}

// handlerName resolves a human-readable name for h, for diagnostic
// logging: the underlying Go function's name for a HandlerFunc, or the
// concrete type name otherwise.
func handlerName(h Handler) string {
	if hf, ok := h.(HandlerFunc); ok {
		return fn.Name(hf)
	}
	return reflect.TypeOf(h).String()
}
