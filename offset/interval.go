package offset

import "sort"

// Interval denotes the half-open byte range [Start, Start+Length).
//
// Per convention (documented rather than left implicit, see
// spec.md's Open Question 2), a zero Length marks an interval as
// unusable in exactly the same way an Unknown Start does — this core
// never needs to represent a literal empty range, since every
// Interval it builds comes from a real overwrite/def/use with
// positive width once its offsets are known.
type Interval struct {
	Start  Offset
	Length Offset
}

// Make builds the interval [start, start+length).
func Make(start, length Offset) Interval {
	return Interval{Start: start, Length: length}
}

// Unknown reports whether the interval cannot be reasoned about
// precisely: either its start is unknown, or its length is zero.
func (iv Interval) Unknown() bool {
	return !iv.Start.Known() || iv.Length == 0
}

// End returns the exclusive end of the interval, Start+Length. It is
// Unknown whenever either operand is, which is also how a "to the end
// of the object" length of Unknown propagates: an interval with a
// known Start but Unknown Length has an Unknown End, and is therefore
// treated as open-ended by every predicate below.
func (iv Interval) End() Offset { return iv.Start.Add(iv.Length) }

// Overlaps reports whether iv and other share any byte. Per §4.1,
// an Unknown interval never overlaps anything through this predicate
// — unknown ranges are routed through the separate UNKNOWN_MEMORY
// channel instead of being compared byte-for-byte.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.Unknown() || other.Unknown() {
		return false
	}
	ivEnd, otherEnd := iv.End(), other.End()
	if !ivEnd.Known() || !otherEnd.Known() {
		// One side extends to the end of its object: it overlaps
		// other unless other ends at or before iv's start (and
		// symmetrically).
		if !ivEnd.Known() && !otherEnd.Known() {
			return true
		}
		if !ivEnd.Known() {
			return otherEnd.Known() && iv.Start.Less(otherEnd)
		}
		return ivEnd.Known() && other.Start.Less(ivEnd)
	}
	return iv.Start.Less(otherEnd) && other.Start.Less(ivEnd)
}

// Contains reports whether inner is a byte-subset of iv.
func (iv Interval) Contains(inner Interval) bool {
	if iv.Unknown() || inner.Unknown() {
		return false
	}
	if !iv.End().Known() {
		// iv extends to the end of the object: it contains inner iff
		// it starts no later than inner, regardless of inner's own end.
		return !inner.Start.Less(iv.Start)
	}
	if !inner.End().Known() {
		// inner extends further than any fixed iv can cover.
		return false
	}
	return !inner.Start.Less(iv.Start) && !iv.End().Less(inner.End())
}

// Unite returns the union of iv and other when they overlap or touch
// end-to-end, and false otherwise (the union of two disjoint,
// non-adjacent intervals is not itself an interval).
func (iv Interval) Unite(other Interval) (Interval, bool) {
	if iv.Unknown() || other.Unknown() {
		return Interval{}, false
	}
	touching := iv.End() == other.Start || other.End() == iv.Start
	if !iv.Overlaps(other) && !touching {
		return Interval{}, false
	}
	start := Min(iv.Start, other.Start)
	end := Unknown
	if iv.End().Known() && other.End().Known() {
		end = Max(iv.End(), other.End())
	}
	return Make(start, end.Sub(start)), true
}

// Undefined returns the sub-intervals of target not covered by any
// interval in covered. covered need not be sorted or disjoint; the
// result is sorted by Start and is itself disjoint.
//
// This is the pure-interval-algebra half of
// DefinitionsMap.UndefinedIntervals (§4.2): it knows nothing about
// targets or values, only about byte ranges.
func Undefined(target Interval, covered []Interval) []Interval {
	if target.Unknown() {
		return nil
	}

	type span struct{ start, end Offset }
	var spans []span
	for _, c := range covered {
		if c.Unknown() || !c.Overlaps(target) {
			continue
		}
		start := Max(c.Start, target.Start)
		end := c.End()
		if !end.Known() || target.End().Known() && target.End().Less(end) {
			end = target.End()
		}
		spans = append(spans, span{start, end})
	}
	if len(spans) == 0 {
		return []Interval{target}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start.Less(spans[j].start) })

	// merged[n-1].end.Known() == false means that span already extends
	// to infinity (an open-ended write whose Length was Unknown): every
	// later span's start falls at or after it in sort order, so it
	// absorbs them all and must never be overwritten by a finite end.
	merged := spans[:0:0]
	for _, s := range spans {
		if n := len(merged); n > 0 && (!merged[n-1].end.Known() || !merged[n-1].end.Less(s.start)) {
			if merged[n-1].end.Known() && (!s.end.Known() || merged[n-1].end.Less(s.end)) {
				merged[n-1].end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	var gaps []Interval
	cursor := target.Start
	openEnded := false
	for _, s := range merged {
		if cursor.Less(s.start) {
			gaps = append(gaps, Make(cursor, s.start.Sub(cursor)))
		}
		if !s.end.Known() {
			// Covered from s.start to infinity: nothing after this can
			// be a gap, however far target.End() reaches.
			openEnded = true
			break
		}
		if cursor.Less(s.end) {
			cursor = s.end
		}
	}
	if !openEnded {
		if !target.End().Known() {
			// An open-ended target is uncovered from cursor onward.
			gaps = append(gaps, Make(cursor, Unknown))
		} else if cursor.Less(target.End()) {
			gaps = append(gaps, Make(cursor, target.End().Sub(cursor)))
		}
	}
	return gaps
}
