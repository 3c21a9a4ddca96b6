package rwgraph

import (
	"github.com/dg-go/memssa/offset"
	"golang.org/x/exp/slices"
)

// bucket is one (interval -> value set) entry for a single target.
type bucket[V comparable] struct {
	iv     offset.Interval
	values map[V]struct{}
}

func (b bucket[V]) valuesSlice() []V {
	out := make([]V, 0, len(b.values))
	for v := range b.values {
		out = append(out, v)
	}
	return out
}

func cloneValues[V comparable](src map[V]struct{}) map[V]struct{} {
	dst := make(map[V]struct{}, len(src))
	for v := range src {
		dst[v] = struct{}{}
	}
	return dst
}

// DefinitionsMap is the per-block, per-target sorted mapping from
// intervals to sets of defining values described in spec.md §3/§4.2.
// It is generic so that memssa can instantiate it over *rwgraph.RWNode
// for real analysis state, while also being able to build disposable
// local instances of the same shape for the findAllReachingDefinitions
// fallback (spec.md §4.6).
//
// Iteration (Each) always proceeds in target-insertion order, then by
// interval start within a target, so that two runs over the same
// input produce identical traversals (spec.md §4.5 "Determinism").
type DefinitionsMap[V comparable] struct {
	order   []*Object
	buckets map[*Object][]bucket[V]

	// MaxIntervalsPerTarget, if positive, bounds how many disjoint
	// intervals a single target may accumulate before Update/Add
	// panics with an InvariantError. See SPEC_FULL.md §4.7.
	MaxIntervalsPerTarget int
}

// NewDefinitionsMap returns an empty map.
func NewDefinitionsMap[V comparable]() *DefinitionsMap[V] {
	return &DefinitionsMap[V]{buckets: make(map[*Object][]bucket[V])}
}

func (m *DefinitionsMap[V]) ensureTarget(t *Object) {
	if _, ok := m.buckets[t]; !ok {
		m.order = append(m.order, t)
		m.buckets[t] = nil
	}
}

// DefinesTarget reports whether t has any tracked definitions.
func (m *DefinitionsMap[V]) DefinesTarget(t *Object) bool {
	bs, ok := m.buckets[t]
	return ok && len(bs) > 0
}

// Get returns every value mapped to an interval overlapping ds's
// range on ds.Target. It does not consult UNKNOWN_MEMORY; callers
// combine that separately, per spec.md §4.4/§4.5.
func (m *DefinitionsMap[V]) Get(ds DefSite) []V {
	var out []V
	seen := make(map[V]struct{})
	for _, b := range m.buckets[ds.Target] {
		if b.iv.Overlaps(ds.Interval) {
			for v := range b.values {
				if _, ok := seen[v]; !ok {
					seen[v] = struct{}{}
					out = append(out, v)
				}
			}
		}
	}
	return out
}

// UndefinedIntervals returns the gaps inside ds's range, for ds's
// target, not covered by any tracked interval.
func (m *DefinitionsMap[V]) UndefinedIntervals(ds DefSite) []offset.Interval {
	bs := m.buckets[ds.Target]
	covered := make([]offset.Interval, len(bs))
	for i, b := range bs {
		covered[i] = b.iv
	}
	return offset.Undefined(ds.Interval, covered)
}

// Update performs a strong update (spec.md §4.2): it clears any
// sub-coverage of ds on ds.Target — splitting neighbors at the
// boundary when their coverage extends beyond ds — then inserts
// ds.Interval -> {v}.
func (m *DefinitionsMap[V]) Update(ds DefSite, v V) {
	m.ensureTarget(ds.Target)
	bs := m.buckets[ds.Target]

	kept := bs[:0:0]
	for _, b := range bs {
		if !b.iv.Overlaps(ds.Interval) {
			kept = append(kept, b)
			continue
		}
		// Split off the parts of b that survive outside ds's range.
		if b.iv.Start.Less(ds.Start) {
			left := offset.Make(b.iv.Start, ds.Start.Sub(b.iv.Start))
			kept = append(kept, bucket[V]{iv: left, values: cloneValues(b.values)})
		}
		bEnd, dsEnd := b.iv.End(), ds.End()
		// An open-ended b (bEnd Unknown) keeps an open-ended remainder.
		if dsEnd.Known() && (!bEnd.Known() || dsEnd.Less(bEnd)) {
			right := offset.Make(dsEnd, bEnd.Sub(dsEnd))
			kept = append(kept, bucket[V]{iv: right, values: cloneValues(b.values)})
		}
	}

	kept = append(kept, bucket[V]{iv: ds.Interval, values: map[V]struct{}{v: {}}})
	slices.SortFunc(kept, func(a, b bucket[V]) bool { return a.iv.Start.Less(b.iv.Start) })
	m.checkCeiling(ds.Target, len(kept))
	m.buckets[ds.Target] = kept
}

// Add performs a weak update (spec.md §4.2): it merges v into the
// value sets of every interval that intersects ds, and inserts fresh
// singleton entries for the sub-ranges of ds not yet covered.
//
// If ds.Interval is itself unknown (this can only happen for a weak
// def on a named, non-UNKNOWN_MEMORY target whose own offset could
// not be determined — a case spec.md does not otherwise constrain),
// Add is a deliberate no-op: there is no byte range to attach v to,
// and conflating it with the UNKNOWN_MEMORY channel would taint
// unrelated targets that this write never touches.
func (m *DefinitionsMap[V]) Add(ds DefSite, v V) {
	if ds.Interval.Unknown() {
		return
	}
	m.ensureTarget(ds.Target)
	bs := m.buckets[ds.Target]
	for i, b := range bs {
		if b.iv.Overlaps(ds.Interval) {
			bs[i].values[v] = struct{}{}
		}
	}

	for _, gap := range m.UndefinedIntervals(ds) {
		bs = append(bs, bucket[V]{iv: gap, values: map[V]struct{}{v: {}}})
	}
	slices.SortFunc(bs, func(a, b bucket[V]) bool { return a.iv.Start.Less(b.iv.Start) })
	m.checkCeiling(ds.Target, len(bs))
	m.buckets[ds.Target] = bs
}

// AddAll merges v into the value set of every (target, interval) key
// currently tracked by the map, regardless of target. It is used when
// a weak write targets UNKNOWN_MEMORY and must conservatively taint
// every location the map currently knows about (spec.md §4.4).
func (m *DefinitionsMap[V]) AddAll(v V) {
	for _, t := range m.order {
		bs := m.buckets[t]
		for i := range bs {
			bs[i].values[v] = struct{}{}
		}
	}
}

// Each visits every (target, interval, values) triple in deterministic
// order: targets in first-insertion order, intervals by start within
// a target.
func (m *DefinitionsMap[V]) Each(fn func(t *Object, iv offset.Interval, values []V)) {
	for _, t := range m.order {
		for _, b := range m.buckets[t] {
			fn(t, b.iv, b.valuesSlice())
		}
	}
}

// EachTarget visits every tracked target together with all of its
// buckets at once, as parallel (interval, values) slices sorted by
// interval start. This lets a caller decide once per target — rather
// than once per bucket — how to merge a target's whole entry, which is
// what the findAllReachingDefinitions fallback needs (spec.md §4.6
// step 3 checks "does D define target" per target, not per bucket).
func (m *DefinitionsMap[V]) EachTarget(fn func(t *Object, intervals []offset.Interval, values [][]V)) {
	for _, t := range m.order {
		bs := m.buckets[t]
		if len(bs) == 0 {
			continue
		}
		ivs := make([]offset.Interval, len(bs))
		vals := make([][]V, len(bs))
		for i, b := range bs {
			ivs[i] = b.iv
			vals[i] = b.valuesSlice()
		}
		fn(t, ivs, vals)
	}
}

// Clone returns a deep copy, independent of m: mutating the clone
// never affects m and vice versa. This backs the "independent copy of
// the definitions that we have not found yet" step that
// findAllReachingDefinitions takes at a multi-predecessor join
// (spec.md §4.6).
func (m *DefinitionsMap[V]) Clone() *DefinitionsMap[V] {
	out := &DefinitionsMap[V]{
		order:                 append([]*Object(nil), m.order...),
		buckets:               make(map[*Object][]bucket[V], len(m.buckets)),
		MaxIntervalsPerTarget: m.MaxIntervalsPerTarget,
	}
	for t, bs := range m.buckets {
		cp := make([]bucket[V], len(bs))
		for i, b := range bs {
			cp[i] = bucket[V]{iv: b.iv, values: cloneValues(b.values)}
		}
		out.buckets[t] = cp
	}
	return out
}

func (m *DefinitionsMap[V]) checkCeiling(t *Object, n int) {
	if m.MaxIntervalsPerTarget > 0 && n > m.MaxIntervalsPerTarget {
		Invariantf("rwgraph: target %s exceeded MaxIntervalsPerTarget (%d > %d)", t, n, m.MaxIntervalsPerTarget)
	}
}
