// Package queue implements the batching coordinator: identity-based
// deduplication of pending loads, grouping into handler-class batches,
// ordered drainage, and the invariants enforced during a drain pass.
package queue

import (
	"sort"
	"sync"

	"github.com/jellydator/ttlcache/v3"

	"github.com/loadqueue/loadqueue/future"
	"github.com/loadqueue/loadqueue/internal/fault"
	"github.com/loadqueue/loadqueue/internal/logger"
	"github.com/loadqueue/loadqueue/internal/panicerr"
	"github.com/loadqueue/loadqueue/log"
	"github.com/loadqueue/loadqueue/metrics"
)

const defaultWeight = 0

// tripleIndex is the three-level handler_class -> batching_key ->
// instance_key -> future index.
type tripleIndex map[string]map[string]map[string]future.Queueable

// state is everything a dynamic-scope swap (WithScopedQueue) exchanges for
// a fresh, empty copy: the pending set, its denormalized size, the
// class-weight table, and the drain-pass notification counters. Swapping
// the whole struct is how Coordinator realizes the source's "localize the
// module-level variables for a sub-scope" primitive without resorting to
// goroutine-local state.
type state struct {
	pending           tripleIndex
	pendingSize       int
	classWeights      map[string]int
	injectionCount    int
	satisfactionCount int

	// satisfiedCache is non-nil only while a Drain pass against this state
	// is in progress; it answers repeat injections of an already-resolved
	// triple instantly without re-running a handler, and is discarded at
	// pass end. It lives on state (not Coordinator) so that a scoped
	// sub-drain (WithScopedQueue) gets its own independent cache instead
	// of clobbering an in-progress outer pass's.
	satisfiedCache *ttlcache.Cache[string, future.Queueable]
}

func newState() *state {
	return &state{
		pending:      make(tripleIndex),
		classWeights: make(map[string]int),
	}
}

// Coordinator owns the pending set and runs drain passes against it. The
// zero value is not usable; construct with New.
type Coordinator struct {
	mu sync.Mutex

	st *state

	registry *Registry

	logger        log.Logger
	metricsClient metrics.Client
	profiler      metrics.Profiler
}

// New constructs a Coordinator. With no options it has no registered
// handlers (Drain will fail the first time it needs one), a noop metrics
// client, the default colorized logger, and the default (no-op) profiler.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		st:            newState(),
		registry:      NewRegistry(),
		metricsClient: metrics.NewNoopClient(),
		profiler:      metrics.DefaultProfiler,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.NewDefaultLogger()
	}
	return c
}

func tripleKey(h, b, i string) string {
	return h + "\x00" + b + "\x00" + i
}

// EnsureInQueue coalesces f against whatever is already pending under its
// (handler_class, batching_key, instance_key) identity, or installs it as
// new pending work. The returned future may be a different instance than
// f (coalescing); callers must treat only the return value as the live
// future.
func (c *Coordinator) EnsureInQueue(f future.Queueable) future.Queueable {
	h, b, i := f.HandlerClass(), f.BatchingKey(), f.InstanceKey()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.st.satisfiedCache != nil {
		if item := c.st.satisfiedCache.Get(tripleKey(h, b, i)); item != nil {
			return item.Value()
		}
	}

	if existing, ok := lookup(c.st.pending, h, b, i); ok {
		return existing
	}

	install(c.st.pending, h, b, i, f)
	c.st.pendingSize++
	c.st.injectionCount++

	c.logger.Debug("future injected",
		log.HandlerClassKey, h, log.BatchingKeyKey, b, log.InstanceKeyKey, i,
		log.PendingSizeKey, c.st.pendingSize)

	return f
}

// RegisterSatisfaction removes f from the pending set once it has
// satisfied. It is called from inside future.Base.Satisfy for queued
// futures only; combinator futures never call it.
func (c *Coordinator) RegisterSatisfaction(f future.Queueable) {
	h, b, i := f.HandlerClass(), f.BatchingKey(), f.InstanceKey()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !remove(c.st.pending, h, b, i) {
		// Already removed (duplicate satisfy race, or a satisfy on a
		// future that was never queued under this coordinator). Benign
		// no-op.
		return
	}

	c.st.pendingSize--
	c.st.satisfactionCount++

	if c.st.satisfiedCache != nil {
		c.st.satisfiedCache.Set(tripleKey(h, b, i), f, ttlcache.NoTTL)
	}
}

// PendingSize returns the current cardinality of the pending set.
func (c *Coordinator) PendingSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.pendingSize
}

// Registry returns the coordinator's handler registry.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

// SetPreferredLoadOrder ensures classWeights[h1] < classWeights[h2] so h1
// drains before h2. The operation is monotone: it never lowers h2's
// weight once set.
func (c *Coordinator) SetPreferredLoadOrder(h1, h2 string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w1, ok1 := c.st.classWeights[h1]
	if !ok1 {
		w1 = defaultWeight
		c.st.classWeights[h1] = w1
	}

	w2, ok2 := c.st.classWeights[h2]
	if !ok2 || w2 <= w1 {
		c.st.classWeights[h2] = w1 + 1
	}

	c.logger.Debug("preferred load order set", log.PreferredFirstKey, h1, log.PreferredSecondKey, h2)
}

func (c *Coordinator) weightOf(h string) int {
	if w, ok := c.st.classWeights[h]; ok {
		return w
	}
	return defaultWeight
}

// Drain runs the main batching loop to completion. It is a no-op on an
// empty queue and must only ever be called from one goroutine at a time.
func (c *Coordinator) Drain() error {
	c.mu.Lock()
	if c.st.pendingSize == 0 {
		c.mu.Unlock()
		return nil
	}

	c.st.satisfiedCache = ttlcache.New[string, future.Queueable]()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.st.satisfiedCache.DeleteAll()
		c.st.satisfiedCache = nil
		c.mu.Unlock()
	}()

	for {
		c.mu.Lock()
		if c.st.pendingSize == 0 {
			c.mu.Unlock()
			return nil
		}

		order := c.currentOrderLocked()
		c.mu.Unlock()

		satisfiedThisIteration := 0

		for _, h := range order {
			c.mu.Lock()
			batchingKeys := c.batchingKeysLocked(h)
			c.mu.Unlock()

			for _, b := range batchingKeys {
				c.mu.Lock()
				group := c.snapshotGroupLocked(h, b)
				c.mu.Unlock()

				expected := len(group)
				if expected == 0 {
					continue
				}

				handler, err := c.registry.Get(h)
				if err != nil {
					return fault.WithStack(err)
				}

				c.logger.Debug("batch starting",
					log.HandlerClassKey, h, log.BatchingKeyKey, b,
					log.GroupSizeKey, expected, "handler_impl", handlerName(handler))

				c.mu.Lock()
				before := c.st.satisfactionCount
				c.mu.Unlock()

				if err := c.runBatch(handler, h, b, group, expected); err != nil {
					return err
				}

				c.mu.Lock()
				actual := c.st.satisfactionCount - before
				c.mu.Unlock()

				if actual != expected {
					return fault.WithStack(&ErrBatchIncomplete{
						HandlerClass: h,
						BatchingKey:  b,
						Expected:     expected,
						Actual:       actual,
					})
				}

				satisfiedThisIteration += actual
			}
		}

		if satisfiedThisIteration == 0 {
			c.mu.Lock()
			pendingSize := c.st.pendingSize
			c.mu.Unlock()

			if pendingSize > 0 {
				return fault.WithStack(&ErrStalled{PendingSize: pendingSize})
			}
			return nil
		}
	}
}

// runBatch invokes handler.SatisfyMulti through the profiler, recovering
// any panic raised from inside it (including one raised by a combinator
// chain's advance callback, see combinator.Sequence) and turning it into
// an ordinary error so Drain never crashes its caller's goroutine.
func (c *Coordinator) runBatch(handler Handler, handlerClass, batchingKey string, group map[string]future.Queueable, count int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fault.WithStack(e)
				return
			}
			err = fault.WithStack(panicerr.New(r))
		}
	}()

	return c.profiler(func() error {
		return handler.SatisfyMulti(group, batchingKey)
	}, handlerClass, batchingKey, count)
}

// currentOrderLocked returns the handler classes currently present in
// pending, sorted ascending by weight with a deterministic name tie-break.
// It is recomputed at the start of every iteration (not just once per
// pass) so that a handler class discovered only via mid-pass injection is
// still visited, in the next iteration. A future injected mid-iteration
// under a class already in this iteration's order is picked up in this
// same iteration if that class sorts later.
// See DESIGN.md's Open Question resolution for this.
func (c *Coordinator) currentOrderLocked() []string {
	classes := make([]string, 0, len(c.st.pending))
	for h, byBatch := range c.st.pending {
		if len(byBatch) > 0 {
			classes = append(classes, h)
		}
	}

	sort.Slice(classes, func(i, j int) bool {
		wi, wj := c.weightOf(classes[i]), c.weightOf(classes[j])
		if wi != wj {
			return wi < wj
		}
		return classes[i] < classes[j]
	})

	return classes
}

func (c *Coordinator) batchingKeysLocked(h string) []string {
	byBatch, ok := c.st.pending[h]
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(byBatch))
	for b, byInstance := range byBatch {
		if len(byInstance) > 0 {
			keys = append(keys, b)
		}
	}
	sort.Strings(keys)
	return keys
}

func (c *Coordinator) snapshotGroupLocked(h, b string) map[string]future.Queueable {
	byInstance, ok := c.st.pending[h][b]
	if !ok {
		return nil
	}

	group := make(map[string]future.Queueable, len(byInstance))
	for i, f := range byInstance {
		group[i] = f
	}
	return group
}

func lookup(idx tripleIndex, h, b, i string) (future.Queueable, bool) {
	byBatch, ok := idx[h]
	if !ok {
		return nil, false
	}
	byInstance, ok := byBatch[b]
	if !ok {
		return nil, false
	}
	f, ok := byInstance[i]
	return f, ok
}

func install(idx tripleIndex, h, b, i string, f future.Queueable) {
	byBatch, ok := idx[h]
	if !ok {
		byBatch = make(map[string]map[string]future.Queueable)
		idx[h] = byBatch
	}
	byInstance, ok := byBatch[b]
	if !ok {
		byInstance = make(map[string]future.Queueable)
		byBatch[b] = byInstance
	}
	byInstance[i] = f
}

func remove(idx tripleIndex, h, b, i string) bool {
	byBatch, ok := idx[h]
	if !ok {
		return false
	}
	byInstance, ok := byBatch[b]
	if !ok {
		return false
	}
	if _, ok := byInstance[i]; !ok {
		return false
	}
	delete(byInstance, i)
	return true
}
