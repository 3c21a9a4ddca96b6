// Package worklist implements a small generic append-order, set-backed
// worklist, the shape GVN needs for its PHI fixpoint (spec.md §4.5):
// "every PHI is visited at most once per predecessor", with
// newly-discovered PHIs queued as they are created.
//
// The generic, comparable-keyed style follows the teacher's own use of
// type parameters for dataflow plumbing in analysis/dfa.go
// (honnef.co/go/tools), generalized here from a join-semilattice
// instance map to a plain FIFO set, and from golang.org/x/exp's
// generics-era helpers that package already depends on.
package worklist

// Worklist is a FIFO queue of distinct T values: pushing a value
// already present (and not yet popped) is a no-op, which is what
// keeps GVN's "visit each PHI at most once per demand" property cheap
// to maintain.
type Worklist[T comparable] struct {
	queue  []T
	queued map[T]struct{}
}

// New returns an empty worklist, optionally seeded with initial.
func New[T comparable](initial ...T) *Worklist[T] {
	w := &Worklist[T]{queued: make(map[T]struct{}, len(initial))}
	for _, v := range initial {
		w.Push(v)
	}
	return w
}

// Push enqueues v if it is not already queued.
func (w *Worklist[T]) Push(v T) {
	if _, ok := w.queued[v]; ok {
		return
	}
	w.queued[v] = struct{}{}
	w.queue = append(w.queue, v)
}

// Pop removes and returns the oldest queued value. ok is false when
// the worklist is empty.
func (w *Worklist[T]) Pop() (v T, ok bool) {
	if len(w.queue) == 0 {
		return v, false
	}
	v = w.queue[0]
	w.queue = w.queue[1:]
	delete(w.queued, v)
	return v, true
}

// Empty reports whether the worklist has no queued values.
func (w *Worklist[T]) Empty() bool { return len(w.queue) == 0 }
