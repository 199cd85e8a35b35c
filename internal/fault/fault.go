// Package fault attaches a captured stack trace, via go-errors/errors, to
// the fatal errors this module raises: AlreadySatisfied, NotYetSatisfied,
// BatchIncomplete, Stalled, and the rest of the error taxonomy.
package fault

import (
	goerrors "github.com/go-errors/errors"
)

// withStack decorates a sentinel error with the stack trace captured at
// the call site that detected the fault. errors.Is/errors.As see through
// it to the wrapped sentinel via Unwrap.
type withStack struct {
	err   error
	stack string
}

func (w *withStack) Error() string { return w.err.Error() }
func (w *withStack) Unwrap() error { return w.err }

// Stack returns the formatted stack trace captured when this error was
// raised.
func (w *withStack) Stack() string { return w.stack }

// WithStack wraps err, capturing the current goroutine stack trace.
func WithStack(err error) error {
	ge := goerrors.New(err)
	return &withStack{err: err, stack: string(ge.Stack())}
}
