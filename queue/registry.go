package queue

import (
	"fmt"
	"sync"
)

// ErrHandlerAlreadyRegistered is returned by Registry.Register when a
// handler class has already been registered.
type ErrHandlerAlreadyRegistered struct{ msg string }

func (e *ErrHandlerAlreadyRegistered) Error() string { return e.msg }

// ErrHandlerNotFound is returned by Registry.Get for an unregistered
// handler class.
type ErrHandlerNotFound struct{ msg string }

func (e *ErrHandlerNotFound) Error() string { return e.msg }

// Registry is a concurrency-safe handler_class -> Handler table,
// independent of any particular Coordinator's pending-set bookkeeping, so
// the same set of handlers can back several coordinators (e.g. a primary
// queue and scoped sub-queues created inside a handler, see
// Coordinator.WithScopedQueue).
type Registry struct {
	mu             sync.Mutex
	handlers       map[string]Handler
	pendingWeights []weightAssignment
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

type registerConfig struct {
	weight int
	hasWt  bool
}

// RegisterOption configures a single Register call.
type RegisterOption interface {
	applyRegisterOption(registerConfig) registerConfig
}

type registerOptionFunc func(registerConfig) registerConfig

func (f registerOptionFunc) applyRegisterOption(cfg registerConfig) registerConfig { return f(cfg) }

// WithWeight assigns this handler class's drain-order weight at
// registration time, equivalent to calling
// Coordinator.SetPreferredLoadOrder enough times to pin it there. Lower
// weights drain first.
func WithWeight(weight int) RegisterOption {
	return registerOptionFunc(func(cfg registerConfig) registerConfig {
		cfg.weight = weight
		cfg.hasWt = true
		return cfg
	})
}

// Register adds h under handlerClass. Returns ErrHandlerAlreadyRegistered
// if that class is already registered.
func (r *Registry) Register(handlerClass string, h Handler, opts ...RegisterOption) error {
	cfg := registerConfig{}
	for _, opt := range opts {
		cfg = opt.applyRegisterOption(cfg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handlers[handlerClass]; ok {
		return &ErrHandlerAlreadyRegistered{fmt.Sprintf("loadqueue: handler class %q already registered", handlerClass)}
	}
	r.handlers[handlerClass] = h

	if cfg.hasWt {
		r.pendingWeights = append(r.pendingWeights, weightAssignment{handlerClass, cfg.weight})
	}

	return nil
}

// Get returns the handler registered for handlerClass.
func (r *Registry) Get(handlerClass string) (Handler, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handlers[handlerClass]; ok {
		return h, nil
	}
	return nil, &ErrHandlerNotFound{fmt.Sprintf("loadqueue: no handler registered for class %q", handlerClass)}
}

type weightAssignment struct {
	handlerClass string
	weight       int
}

// WeightAssignments returns a copy of the (handlerClass, weight) pairs
// recorded via WithWeight during Register calls so far. A Coordinator
// built with WithRegistry applies these once at construction time.
func (r *Registry) WeightAssignments() []weightAssignment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]weightAssignment(nil), r.pendingWeights...)
}
