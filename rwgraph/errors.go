package rwgraph

import (
	"github.com/pkg/errors"
)

// InvariantError marks a violated precondition of the RW graph model
// or the memory SSA transformation: a miscompiled frontend, not a
// condition the analysis can recover from (spec.md §7, kind 1). It is
// always delivered via panic, never as a returned error — see
// SPEC_FULL.md §7.
type InvariantError struct {
	cause error
}

func (e *InvariantError) Error() string { return e.cause.Error() }
func (e *InvariantError) Unwrap() error { return e.cause }

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{cause: errors.Errorf(format, args...)}
}

func wrapInvariant(cause error, msg string) *InvariantError {
	return &InvariantError{cause: errors.Wrap(cause, msg)}
}

// Invariantf panics with a new InvariantError built from format/args.
// Exported so that memssa (and any other package building on top of
// rwgraph) can raise the same kind of fatal diagnostic.
func Invariantf(format string, args ...any) {
	panic(invariantf(format, args...))
}
