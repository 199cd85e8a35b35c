package future

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCoordinator is a minimal future.Injector double so this package's
// tests can exercise Base without depending on package queue (which
// depends on package future).
type fakeCoordinator struct {
	ensured      map[string]Queueable
	satisfaction []Queueable
}

func newFakeCoordinator() *fakeCoordinator {
	return &fakeCoordinator{ensured: make(map[string]Queueable)}
}

func (f *fakeCoordinator) EnsureInQueue(q Queueable) Queueable {
	key := q.HandlerClass() + "|" + q.BatchingKey() + "|" + q.InstanceKey()
	if existing, ok := f.ensured[key]; ok {
		return existing
	}
	f.ensured[key] = q
	return q
}

func (f *fakeCoordinator) RegisterSatisfaction(q Queueable) {
	f.satisfaction = append(f.satisfaction, q)
}

type testFuture struct {
	*Base
	id int
}

func newTestFuture(c Injector, id int) Queueable {
	f := &testFuture{id: id}
	f.Base = NewBase(c, "testFuture", "")
	f.Base.SetBatchingKey("ids")
	return f.Base.Inject(f)
}

func (f *testFuture) InstanceKey() string {
	return string(rune('a' + f.id))
}

func Test_SatisfyThenResult(t *testing.T) {
	c := newFakeCoordinator()
	f := newTestFuture(c, 0)

	require.False(t, f.Satisfied())
	_, err := f.Result()
	require.ErrorIs(t, err, ErrNotYetSatisfied)

	require.NoError(t, f.Satisfy("hello"))
	require.True(t, f.Satisfied())

	v, err := f.Result()
	require.NoError(t, err)
	require.Equal(t, "hello", v)

	require.Len(t, c.satisfaction, 1)
}

func Test_SatisfyTwiceFails(t *testing.T) {
	c := newFakeCoordinator()
	f := newTestFuture(c, 1)

	require.NoError(t, f.Satisfy(1))
	require.ErrorIs(t, f.Satisfy(2), ErrAlreadySatisfied)
}

func Test_CallbacksFireInRegistrationOrder(t *testing.T) {
	c := newFakeCoordinator()
	f := newTestFuture(c, 2)

	var order []int
	require.NoError(t, f.AddOnSatisfyCallback(func(v any) { order = append(order, 1) }))
	require.NoError(t, f.AddOnSatisfyCallback(func(v any) { order = append(order, 2) }))
	require.NoError(t, f.AddOnSatisfyCallback(func(v any) { order = append(order, 3) }))

	require.NoError(t, f.Satisfy("x"))
	require.Equal(t, []int{1, 2, 3}, order)
}

func Test_CallbackRegisteredAfterSatisfactionRunsImmediately(t *testing.T) {
	c := newFakeCoordinator()
	f := newTestFuture(c, 3)
	require.NoError(t, f.Satisfy(42))

	var got any
	require.NoError(t, f.AddOnSatisfyCallback(func(v any) { got = v }))
	require.Equal(t, 42, got)
}

func Test_NilCallbackIsBad(t *testing.T) {
	c := newFakeCoordinator()
	f := newTestFuture(c, 4)
	require.ErrorIs(t, f.AddOnSatisfyCallback(nil), ErrBadCallback)
}

func Test_CoalescingReturnsPreexistingInstance(t *testing.T) {
	c := newFakeCoordinator()
	f1 := newTestFuture(c, 5)
	f2 := newTestFuture(c, 5)

	require.Same(t, f1, f2)
}

func Test_HandlerClassDefaultsToOwnKind(t *testing.T) {
	c := newFakeCoordinator()
	tf := &testFuture{id: 6}
	tf.Base = NewBase(c, "", "")
	f := tf.Base.Inject(tf)
	require.Equal(t, "testFuture", f.HandlerClass())
}

func Test_InstanceKeyDefaultsToUniqueToken(t *testing.T) {
	c := newFakeCoordinator()

	type anon struct {
		*Base
	}
	build := func() Queueable {
		a := &anon{Base: NewBase(c, "anon", "")}
		return a.Base.Inject(a)
	}

	a := build()
	b := build()
	require.NotEqual(t, a.InstanceKey(), b.InstanceKey())
	require.NotSame(t, a, b)
}
