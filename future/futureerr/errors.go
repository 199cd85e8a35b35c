// Package futureerr defines the sentinel errors of the future lifecycle,
// split out from package future so that internal/satisfier (shared by both
// queued and combinator futures) can return them without importing future
// itself.
package futureerr

import "errors"

var (
	// ErrAlreadySatisfied is returned by Satisfy when the result slot has
	// already been written. Programmer error; fatal at the call site.
	ErrAlreadySatisfied = errors.New("future: already satisfied")

	// ErrNotYetSatisfied is returned by Result when the future is still
	// pending. Programmer error; fatal at the call site.
	ErrNotYetSatisfied = errors.New("future: not yet satisfied")

	// ErrBadCallback is returned by AddOnSatisfyCallback when given a nil
	// callback.
	ErrBadCallback = errors.New("future: callback is nil")
)
