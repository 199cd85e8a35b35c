// Package satisfier holds the result-slot and completion-callback
// bookkeeping shared by every future kind, queued or combinator. It is the
// common core that future.Base and combinator futures each wrap with their
// own Satisfy method (the former also notifies a queue coordinator, the
// latter never does).
package satisfier

import (
	"sync"

	"github.com/loadqueue/loadqueue/future/futureerr"
	"github.com/loadqueue/loadqueue/internal/fault"
)

// Core is embedded by concrete future bases. It is not itself a Future.
type Core struct {
	mu        sync.Mutex
	result    any
	hasResult bool
	callbacks []func(any)
}

// Result returns the resolved value, or futureerr.ErrNotYetSatisfied if the
// slot is still empty.
func (c *Core) Result() (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasResult {
		return nil, fault.WithStack(futureerr.ErrNotYetSatisfied)
	}
	return c.result, nil
}

// Satisfied reports whether the result slot has been written.
func (c *Core) Satisfied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasResult
}

// AddOnSatisfyCallback registers cb to run with the resolved value. If the
// slot is already filled, cb runs synchronously before this call returns.
// Otherwise it is appended and will run, in registration order, at
// satisfaction time.
func (c *Core) AddOnSatisfyCallback(cb func(any)) error {
	if cb == nil {
		return fault.WithStack(futureerr.ErrBadCallback)
	}

	c.mu.Lock()
	if c.hasResult {
		result := c.result
		c.mu.Unlock()
		cb(result)
		return nil
	}
	c.callbacks = append(c.callbacks, cb)
	c.mu.Unlock()
	return nil
}

// TrySet writes the result slot exactly once. On success it returns the
// registered callbacks (already cleared from Core, in registration order)
// for the caller to invoke outside of any lock. On failure (already
// satisfied) it returns futureerr.ErrAlreadySatisfied.
func (c *Core) TrySet(value any) ([]func(any), error) {
	c.mu.Lock()
	if c.hasResult {
		c.mu.Unlock()
		return nil, fault.WithStack(futureerr.ErrAlreadySatisfied)
	}

	c.result = value
	c.hasResult = true
	cbs := c.callbacks
	c.callbacks = nil
	c.mu.Unlock()

	return cbs, nil
}
