// Package combinator implements the two combinator future kinds — Multi
// (fan-in) and Sequence (chained progression) — that wire callbacks onto
// child futures and satisfy themselves without ever entering a
// queue.Coordinator's pending set.
//
// Unlike future.Base, combinator futures do not implement
// future.Queueable: they expose only future.Future. Asking a combinator
// for a handler_class, batching_key, or instance_key, or satisfying it
// through a queue.Handler, is therefore a compile-time type error rather
// than the runtime CombinatorMisuse failure a dynamically typed host would
// raise — the stronger guarantee Go's type system gives for free.
package combinator

import "github.com/loadqueue/loadqueue/internal/satisfier"

// base is embedded by both Multi and Sequence. It reuses satisfier.Core
// for the result slot and callback list but, unlike future.Base, never
// notifies a coordinator: combinators are never in the pending set.
type base struct {
	satisfier.Core
}

// satisfy writes the result slot and fires every registered callback, in
// registration order, with value. It never calls RegisterSatisfaction.
func (b *base) satisfy(value any) error {
	cbs, err := b.Core.TrySet(value)
	if err != nil {
		return err
	}
	for _, cb := range cbs {
		cb(value)
	}
	return nil
}
