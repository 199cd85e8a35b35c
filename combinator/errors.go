package combinator

import "errors"

// ErrSequenceUnderrun is the panic value (wrapped with a stack trace) raised
// at the triggering callback when a chain produces another intermediate
// future but no progression function remains to consume its result.
var ErrSequenceUnderrun = errors.New("combinator: sequence underran its progression functions")

// ErrCombinatorMisuse names the misuse of asking a combinator future for a
// handler_class, batching_key, instance_key, or calling SatisfyMulti on it.
// Nothing returns it: combinators have none of those methods, so such a
// call does not compile (see the package documentation).
var ErrCombinatorMisuse = errors.New("combinator: handler_class/batching_key/instance_key/satisfy_multi are not meaningful on a combinator future")
