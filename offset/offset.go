// Package offset implements the byte-offset and half-open interval
// algebra that the memory SSA core builds everything else on top of.
package offset

import "fmt"

// Offset is a non-negative byte offset, or the sentinel Unknown.
//
// Arithmetic on Unknown propagates Unknown: once an offset can no
// longer be named precisely (e.g. it came from a variable-length
// write, or from indexing with a non-constant), every computation
// derived from it stays Unknown rather than silently becoming some
// arbitrary number.
type Offset int64

// Unknown is the sentinel value for "this offset cannot be named".
const Unknown Offset = -1

// Known reports whether o is a real, nameable offset.
func (o Offset) Known() bool { return o != Unknown }

// Add returns o+other, propagating Unknown.
func (o Offset) Add(other Offset) Offset {
	if !o.Known() || !other.Known() {
		return Unknown
	}
	return o + other
}

// Sub returns o-other, propagating Unknown. The result is only
// meaningful when the caller already knows other <= o.
func (o Offset) Sub(other Offset) Offset {
	if !o.Known() || !other.Known() {
		return Unknown
	}
	return o - other
}

// Less reports whether o precedes other. An Unknown operand makes the
// comparison meaningless; callers must check Known() first for any
// decision that depends on it, which is why Less does not special-case
// Unknown itself.
func (o Offset) Less(other Offset) bool { return o < other }

// Min returns the smaller of two known offsets.
func Min(a, b Offset) Offset {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two known offsets.
func Max(a, b Offset) Offset {
	if a > b {
		return a
	}
	return b
}

func (o Offset) String() string {
	if !o.Known() {
		return "?"
	}
	return fmt.Sprintf("%d", int64(o))
}
