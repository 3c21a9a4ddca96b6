package memssa

import "github.com/dg-go/memssa/rwgraph"

// InvariantError is re-exported from rwgraph so that callers of this
// package's public surface never need to import rwgraph just to type-
// assert on a panic value (spec.md §7, kind 1).
type InvariantError = rwgraph.InvariantError

func invariantf(format string, args ...any) {
	rwgraph.Invariantf(format, args...)
}
