package combinator

import (
	"github.com/loadqueue/loadqueue/future"
	"github.com/loadqueue/loadqueue/internal/fault"
)

// ProgressionFunc is one step of a Sequence: given the previous step's
// result, it returns either another future.Future (the chain continues) or
// a non-future final value (the chain ends).
type ProgressionFunc func(previous any) any

// Sequence threads a seed future's result through an ordered list of
// ProgressionFuncs, satisfying with whichever value the chain ends on.
type Sequence struct {
	base

	remaining []ProgressionFunc
}

// NewSequence installs the walker on seed and returns the combinator
// future directly. It never touches a queue.Coordinator.
func NewSequence(seed future.Future, steps ...ProgressionFunc) future.Future {
	s := &Sequence{remaining: steps}
	_ = seed.AddOnSatisfyCallback(s.advance)
	return s
}

// advance is installed as the completion callback on the current future in
// the chain. A progression function's output is a future.Future exactly
// when a type assertion to future.Future succeeds; anything else is the
// chain's final value.
//
// If the cursor is already empty this panics with ErrSequenceUnderrun
// rather than returning an error: advance runs synchronously inside
// whatever goroutine called the current future's Satisfy (ultimately a
// handler's SatisfyMulti during Coordinator.Drain), and that call path has
// no error return of its own to carry the failure through. Drain recovers
// this panic at the batch boundary and returns it as an ordinary error,
// abandoning the pass.
func (s *Sequence) advance(result any) {
	if len(s.remaining) == 0 {
		panic(fault.WithStack(ErrSequenceUnderrun))
	}

	next := s.remaining[0]
	s.remaining = s.remaining[1:]

	switch out := next(result).(type) {
	case future.Future:
		_ = out.AddOnSatisfyCallback(s.advance)
	default:
		if err := s.satisfy(out); err != nil {
			panic(err)
		}
	}
}

// Satisfy implements future.Future. Application code has no legitimate
// reason to call it directly; a Sequence satisfies itself as its chain
// completes.
func (s *Sequence) Satisfy(value any) error { return s.satisfy(value) }
