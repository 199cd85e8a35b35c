// Package future implements the satisfaction contract shared by every
// pending load: a result slot that is written at most once, and a list of
// completion callbacks that fire in registration order once it is.
//
// Concrete future kinds embed *Base and call Inject at the end of their
// constructor, propagating whatever it returns (see Base.Inject).
// Combinator futures (fan-in, sequence) do not use this package's Base;
// they implement the same Future interface directly, see package
// combinator.
package future

import (
	"reflect"

	"github.com/loadqueue/loadqueue/future/futureerr"
	"github.com/loadqueue/loadqueue/internal/satisfier"
)

// Re-exported so application code can write future.ErrAlreadySatisfied
// without reaching into the futureerr subpackage.
var (
	ErrAlreadySatisfied = futureerr.ErrAlreadySatisfied
	ErrNotYetSatisfied  = futureerr.ErrNotYetSatisfied
	ErrBadCallback      = futureerr.ErrBadCallback
)

// Future is the satisfaction contract every pending load exposes,
// regardless of whether it is queued or a combinator.
type Future interface {
	// Satisfy transitions the future to satisfied, writing value into the
	// result slot and firing every registered callback, in registration
	// order, with value. Reserved for handlers during batch resolution
	// (queued futures) or for the combinator itself (combinator futures).
	// Returns ErrAlreadySatisfied if already satisfied.
	Satisfy(value any) error

	// Result returns the resolved value, or ErrNotYetSatisfied if the
	// future is still pending.
	Result() (any, error)

	// Satisfied reports whether Result would succeed.
	Satisfied() bool

	// AddOnSatisfyCallback registers cb to run with the resolved value. If
	// the future is already satisfied, cb runs synchronously before this
	// call returns. Otherwise cb runs, in registration order alongside any
	// other registered callbacks, at satisfaction time. Returns
	// ErrBadCallback if cb is nil.
	AddOnSatisfyCallback(cb func(any)) error
}

// Queueable is the capability set a future kind must expose to
// participate in a queue.Coordinator: the (handler_class, batching_key,
// instance_key) identity triple plus the Future contract. These are the
// hooks a concrete future kind overrides to customize how it coalesces.
type Queueable interface {
	Future

	// HandlerClass identifies which Handler will resolve this future.
	HandlerClass() string

	// BatchingKey groups futures of the same HandlerClass that must be
	// resolved together in one Handler.SatisfyMulti call. Default "all".
	BatchingKey() string

	// InstanceKey uniquely identifies what is being loaded within a
	// (HandlerClass, BatchingKey) group. Defaults to a unique, unhelpful
	// per-instance token; concrete kinds are strongly encouraged to
	// override it with a semantic key (e.g. a row id) so that two
	// constructions of "the same load" coalesce.
	InstanceKey() string
}

// Injector is the subset of queue.Coordinator that Base needs, split out
// here so that package future does not import package queue (which
// imports future for the Queueable type it stores). Concrete coordinators
// satisfy this implicitly.
type Injector interface {
	EnsureInQueue(f Queueable) Queueable
	RegisterSatisfaction(f Queueable)
}

// Base is the embeddable implementation of the satisfaction contract plus
// default hook implementations for queued future kinds. A concrete kind
// shadows BatchingKey/InstanceKey (and, rarely, HandlerClass) by defining
// its own method of the same name when the default is not adequate.
type Base struct {
	satisfier.Core

	coordinator  Injector
	handlerClass string
	batchingKey  string
	instanceKey  string

	self Queueable // set by Inject; used to look up identity at Satisfy time
}

// NewBase constructs the embeddable state for a queued future kind.
// handlerClass may be empty, in which case Inject fills it in from the
// concrete kind's own type name (the Go analogue of "defaults to the
// future's own kind"). instanceKey may be empty, in which case a unique
// token is generated — callers are strongly encouraged to pass a semantic
// key instead (e.g. strconv.Itoa(id)).
func NewBase(coordinator Injector, handlerClass, instanceKey string) *Base {
	return &Base{
		coordinator:  coordinator,
		handlerClass: handlerClass,
		batchingKey:  "all",
		instanceKey:  instanceKey,
	}
}

// Inject hands self to the coordinator's EnsureInQueue and returns
// whatever it returns — possibly a different, pre-existing instance
// (coalescing). Every injector constructor must end by calling Inject and
// propagating its return value; application code must only ever hold onto
// the returned future, never self directly.
func (b *Base) Inject(self Queueable) Queueable {
	if b.handlerClass == "" {
		b.handlerClass = typeName(self)
	}
	if b.instanceKey == "" {
		b.instanceKey = uniqueToken()
	}
	b.self = self

	return b.coordinator.EnsureInQueue(self)
}

func (b *Base) HandlerClass() string { return b.handlerClass }
func (b *Base) BatchingKey() string  { return b.batchingKey }
func (b *Base) InstanceKey() string  { return b.instanceKey }

// SetBatchingKey overrides the default "all" batching key. Must be called
// before Inject: the coordinator files the future under the triple it reads
// at injection time and reads the triple again at satisfaction, so a later
// change leaves the pending entry unmatched.
func (b *Base) SetBatchingKey(key string) { b.batchingKey = key }

// Satisfy writes the result slot, tells the coordinator this future has
// left the pending set, then fires every registered callback in order.
func (b *Base) Satisfy(value any) error {
	cbs, err := b.Core.TrySet(value)
	if err != nil {
		return err
	}

	if b.coordinator != nil && b.self != nil {
		b.coordinator.RegisterSatisfaction(b.self)
	}

	for _, cb := range cbs {
		cb(value)
	}
	return nil
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
