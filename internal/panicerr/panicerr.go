// Package panicerr converts a recovered panic value into an error, so a
// panic originating deep inside a completion callback (e.g. a combinator
// chain's SequenceUnderrun) can be returned from Coordinator.Drain like any
// other fatal error instead of crashing the calling goroutine.
package panicerr

import "fmt"

// PanicError wraps whatever value was passed to panic.
type PanicError struct {
	value any
}

// New wraps v, the value recovered from a panic.
func New(v any) *PanicError {
	return &PanicError{v}
}

var _ error = (*PanicError)(nil)

func (pe *PanicError) Error() string {
	return fmt.Sprintf("%v", pe.value)
}
