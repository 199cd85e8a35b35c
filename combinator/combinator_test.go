package combinator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loadqueue/loadqueue/future"
)

// passthroughInjector is a minimal future.Injector for leaf futures used as
// combinator children in these tests: it never coalesces and never tracks
// pending state, since these tests drive satisfaction manually.
type passthroughInjector struct{}

func (passthroughInjector) EnsureInQueue(f future.Queueable) future.Queueable { return f }
func (passthroughInjector) RegisterSatisfaction(future.Queueable)             {}

type leaf struct {
	*future.Base
}

func newLeaf(id string) *leaf {
	l := &leaf{Base: future.NewBase(passthroughInjector{}, "leaf", id)}
	l.Base.Inject(l)
	return l
}

func Test_MultiEmptyInputSatisfiesSynchronously(t *testing.T) {
	m := NewMulti[string](map[string]future.Future{})
	require.True(t, m.Satisfied())
	result, err := m.Result()
	require.NoError(t, err)
	require.Equal(t, map[string]any{}, result)
}

func Test_MultiSatisfiesWithAllChildResults(t *testing.T) {
	a, b := newLeaf("a"), newLeaf("b")
	m := NewMulti[string](map[string]future.Future{"a": a, "b": b})
	require.False(t, m.Satisfied())

	require.NoError(t, a.Satisfy("user1"))
	require.False(t, m.Satisfied())
	require.NoError(t, b.Satisfy("user2"))
	require.True(t, m.Satisfied())

	result, err := m.Result()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": "user1", "b": "user2"}, result)
}

func Test_MultiChildAlreadySatisfiedAtWiringTime(t *testing.T) {
	a := newLeaf("a")
	require.NoError(t, a.Satisfy("user1"))

	m := NewMulti[string](map[string]future.Future{"a": a})
	require.True(t, m.Satisfied())
	result, err := m.Result()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": "user1"}, result)
}

func Test_MultiSliceIsPositionStable(t *testing.T) {
	a, b, c := newLeaf("a"), newLeaf("b"), newLeaf("c")
	s := NewMultiSlice([]future.Future{a, b, c})

	require.NoError(t, c.Satisfy("third"))
	require.NoError(t, a.Satisfy("first"))
	require.NoError(t, b.Satisfy("second"))

	result, err := s.Result()
	require.NoError(t, err)
	require.Equal(t, []any{"first", "second", "third"}, result)
}

func Test_MultiSliceEmptyInputSatisfiesSynchronously(t *testing.T) {
	s := NewMultiSlice(nil)
	require.True(t, s.Satisfied())
	result, err := s.Result()
	require.NoError(t, err)
	require.Equal(t, []any{}, result)
}

func Test_SequenceEndsOnFirstNonFutureValue(t *testing.T) {
	seed := newLeaf("seed")
	seq := NewSequence(seed, func(previous any) any {
		return previous.(string) + "-step1"
	})

	require.NoError(t, seed.Satisfy("frank"))
	require.True(t, seq.Satisfied())

	result, err := seq.Result()
	require.NoError(t, err)
	require.Equal(t, "frank-step1", result)
}

func Test_SequenceContinuesThroughNestedFuture(t *testing.T) {
	seed := newLeaf("seed")
	var nested *leaf

	seq := NewSequence(seed,
		func(previous any) any {
			nested = newLeaf(previous.(string))
			return nested
		},
		func(previous any) any {
			return previous
		},
	)

	require.NoError(t, seed.Satisfy("42"))
	require.False(t, seq.Satisfied(), "sequence must wait on the nested future")

	require.NoError(t, nested.Satisfy(map[string]string{"name": "frank"}))
	require.True(t, seq.Satisfied())

	result, err := seq.Result()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"name": "frank"}, result)
}

func Test_SequenceUnderrunPanics(t *testing.T) {
	seed := newLeaf("seed")
	NewSequence(seed) // zero progression functions

	require.Panics(t, func() {
		_ = seed.Satisfy("anything")
	})
}
