package memssa

import (
	"github.com/dg-go/memssa/offset"
	"github.com/dg-go/memssa/rwgraph"
)

// ReachingDefinitions implements spec.md §4.6: the public query
// surface. Uses touching unknown memory or an unknown offset cannot be
// summarized precisely by a PHI, so they are routed to the
// findAllReachingDefinitions fallback instead of reading use.Defuse.
func (m *MemorySSA) ReachingDefinitions(use *rwgraph.RWNode) []*rwgraph.RWNode {
	if use.UsesUnknown(m.graph) {
		return m.findAllReachingDefinitions(use)
	}
	return gatherNonPhis(use.Defuse)
}

// gatherNonPhis flattens a defuse set to its transitively reachable
// non-PHI leaves, guarding against cycles in the PHI graph with a
// visited set (spec.md §4.6 "gatherNonPhis", P5 cycle safety).
func gatherNonPhis(s map[*rwgraph.RWNode]struct{}) []*rwgraph.RWNode {
	visitedPhis := make(map[*rwgraph.RWNode]struct{})
	found := make(map[*rwgraph.RWNode]struct{})

	var visit func(n *rwgraph.RWNode)
	visit = func(n *rwgraph.RWNode) {
		if !n.IsPhi() {
			found[n] = struct{}{}
			return
		}
		if _, ok := visitedPhis[n]; ok {
			return
		}
		visitedPhis[n] = struct{}{}
		for d := range n.Defuse {
			visit(d)
		}
	}
	for n := range s {
		visit(n)
	}

	out := make([]*rwgraph.RWNode, 0, len(found))
	for n := range found {
		out = append(out, n)
	}
	return out
}

// findAllReachingDefinitions is the fallback query (spec.md §4.6) used
// whenever a use cannot be summarized by a PHI: it bypasses the
// registry entirely, replaying LVN's rules locally up to from, then
// walking predecessor blocks directly.
func (m *MemorySSA) findAllReachingDefinitions(from *rwgraph.RWNode) []*rwgraph.RWNode {
	done := m.trace.Section("findAllReachingDefinitions")
	defer done()

	if from.Block == nil {
		invariantf("findAllReachingDefinitions: node %s has no block", from)
	}

	defs := rwgraph.NewDefinitionsMap[*rwgraph.RWNode]()
	foundDefs := make(map[*rwgraph.RWNode]struct{})

	block := from.Block
	unknownSite := m.graph.UnknownSite()
	for _, n := range block.Nodes {
		if n == from {
			break
		}
		for _, ds := range n.Overwrites {
			defs.Update(ds, n)
		}
		for _, ds := range n.Defs {
			if ds.Target == m.graph.UnknownMemory {
				defs.AddAll(n)
				defs.Add(unknownSite, n)
				continue
			}
			defs.Add(ds, n)
		}
	}

	defs.Each(func(_ *rwgraph.Object, _ offset.Interval, values []*rwgraph.RWNode) {
		for _, v := range values {
			foundDefs[v] = struct{}{}
		}
	})

	visited := make(map[*rwgraph.BasicBlock]struct{})
	if pred, ok := block.GetSinglePredecessor(); ok {
		m.findAllReachingDefinitionsStep(defs, pred, foundDefs, visited)
	} else {
		for _, pred := range block.Preds {
			m.findAllReachingDefinitionsStep(defs.Clone(), pred, foundDefs, visited)
		}
	}

	return gatherNonPhis(foundDefs)
}

// findAllReachingDefinitionsStep is the per-block predecessor step of
// spec.md §4.6 step 2-3. defs is the caller's private, mutable
// accumulator; foundDefs and visited are shared across the whole walk.
//
// The decision of whether a target is already defined in defs is made
// once per target (spec.md's reference checks definesTarget(target)
// before looping over that target's buckets, not per bucket), via
// DefinitionsMap.EachTarget.
//
// Per Open Question 1's resolution (SPEC_FULL.md §9.1), nodes found in
// gap-filled sub-ranges are also added to foundDefs here, rather than
// left out as the reference implementation does — they are always
// reachable via some path, and omitting them risks violating P4.
func (m *MemorySSA) findAllReachingDefinitionsStep(
	defs *rwgraph.DefinitionsMap[*rwgraph.RWNode],
	from *rwgraph.BasicBlock,
	foundDefs map[*rwgraph.RWNode]struct{},
	visited map[*rwgraph.BasicBlock]struct{},
) {
	if from == nil {
		return
	}
	// The starting block is deliberately not pre-marked visited by our
	// caller, so a self-loop predecessor re-enters it exactly once
	// before this guard stops further recursion.
	if _, ok := visited[from]; ok {
		return
	}
	visited[from] = struct{}{}

	from.Definitions.EachTarget(func(t *rwgraph.Object, intervals []offset.Interval, values [][]*rwgraph.RWNode) {
		if !defs.DefinesTarget(t) {
			for i, iv := range intervals {
				ds := rwgraph.Site(t, iv.Start, iv.Length)
				for _, v := range values[i] {
					defs.Add(ds, v)
					foundDefs[v] = struct{}{}
				}
			}
			return
		}
		for i, iv := range intervals {
			ds := rwgraph.Site(t, iv.Start, iv.Length)
			for _, gap := range defs.UndefinedIntervals(ds) {
				gapSite := rwgraph.Site(t, gap.Start, gap.Length)
				for _, v := range values[i] {
					defs.Add(gapSite, v)
					foundDefs[v] = struct{}{}
				}
			}
		}
	})

	if pred, ok := from.GetSinglePredecessor(); ok {
		m.findAllReachingDefinitionsStep(defs, pred, foundDefs, visited)
	} else {
		for _, pred := range from.Preds {
			m.findAllReachingDefinitionsStep(defs.Clone(), pred, foundDefs, visited)
		}
	}
}
