package combinator

import (
	"sync"

	"github.com/loadqueue/loadqueue/future"
)

// Multi fans in a keyed mapping of child futures: it satisfies once every
// child has, with a map holding each child's result at its original key.
type Multi[K comparable] struct {
	base

	mu     sync.Mutex
	result map[K]any
	remain int
}

// NewMulti wires a completion callback onto every child and returns the
// combinator future directly — it is never passed through
// queue.Coordinator.EnsureInQueue. An empty children map satisfies m
// synchronously, before NewMulti returns.
func NewMulti[K comparable](children map[K]future.Future) future.Future {
	m := &Multi[K]{result: make(map[K]any, len(children)), remain: len(children)}

	if len(children) == 0 {
		_ = m.satisfy(m.result)
		return m
	}

	for k, child := range children {
		k := k
		// AddOnSatisfyCallback runs cb synchronously, right here, if child
		// is already satisfied — compatible with the counter logic since
		// wiring order is unobservable to callers.
		_ = child.AddOnSatisfyCallback(func(value any) {
			m.mu.Lock()
			m.result[k] = value
			m.remain--
			done := m.remain == 0
			m.mu.Unlock()

			if done {
				_ = m.satisfy(m.result)
			}
		})
	}

	return m
}

// Satisfy satisfies the combinator directly, bypassing the child-counting
// wiring NewMulti installed. Application code has no legitimate reason to
// call it; it exists only to implement future.Future.
func (m *Multi[K]) Satisfy(value any) error { return m.satisfy(value) }

// MultiSlice fans in an ordered list of child futures: it satisfies once
// every child has, with a slice holding each child's result at its
// original index.
type MultiSlice struct {
	base

	mu     sync.Mutex
	result []any
	remain int
}

// NewMultiSlice is MultiSlice's constructor, position-stable: result[i]
// always holds children[i]'s eventual value regardless of completion
// order. An empty slice satisfies synchronously.
func NewMultiSlice(children []future.Future) future.Future {
	s := &MultiSlice{result: make([]any, len(children)), remain: len(children)}

	if len(children) == 0 {
		_ = s.satisfy(s.result)
		return s
	}

	for i, child := range children {
		i := i
		_ = child.AddOnSatisfyCallback(func(value any) {
			s.mu.Lock()
			s.result[i] = value
			s.remain--
			done := s.remain == 0
			s.mu.Unlock()

			if done {
				_ = s.satisfy(s.result)
			}
		})
	}

	return s
}

func (s *MultiSlice) Satisfy(value any) error { return s.satisfy(value) }
