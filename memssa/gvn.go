package memssa

import (
	"github.com/dg-go/memssa/internal/worklist"
	"github.com/dg-go/memssa/rwgraph"
)

// RunGVN runs Global Value Numbering (spec.md §4.5): a worklist over
// every PHI in the registry, resolving each one's incoming definitions
// by demanding them from its block's predecessors, possibly creating
// further PHIs at earlier joins which are themselves enqueued.
//
// RunGVN requires RunLVN to have already populated the initial
// registry, and — like RunLVN — may only be called once per MemorySSA
// (Open Question 3's single-shot resolution).
func (m *MemorySSA) RunGVN() {
	if !m.ranLVN {
		invariantf("RunGVN: RunLVN must run first")
	}
	if m.ranGVN {
		invariantf("RunGVN: already run on this MemorySSA")
	}
	done := m.trace.Section("gvn")
	defer done()
	m.ranGVN = true

	w := worklist.New(m.phis...)
	for {
		phi, ok := w.Pop()
		if !ok {
			break
		}
		ds := phi.PhiSite()
		block := phi.Block

		for _, pred := range block.Preds {
			before := len(m.phis)
			phi.AddDefuse(m.findDefinitions(pred, ds)...)
			for _, p := range m.phis[before:] {
				w.Push(p)
			}
		}
		m.trace.Dump("resolved phi defuse", phi.Defuse)
	}
}

// findDefinitions implements spec.md §4.5's cross-block helper: the
// set of nodes reaching ds starting from block, recursing through a
// sole predecessor or materializing a join PHI when block has zero or
// several predecessors.
func (m *MemorySSA) findDefinitions(block *rwgraph.BasicBlock, ds rwgraph.DefSite) []*rwgraph.RWNode {
	if block == nil {
		// Dead/unreachable predecessor: the frontend intentionally
		// leaves nodes in unreachable code with a nil block backref.
		// This is the one recoverable condition (spec.md §7, kind 2).
		return nil
	}

	var out []*rwgraph.RWNode
	seen := make(map[*rwgraph.RWNode]struct{})
	add := func(nodes []*rwgraph.RWNode) {
		for _, n := range nodes {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
	}

	add(block.Definitions.Get(ds))
	add(block.Definitions.Get(m.graph.UnknownSite()))

	for _, gap := range block.Definitions.UndefinedIntervals(ds) {
		if pred, ok := block.GetSinglePredecessor(); ok {
			add(m.findDefinitions(pred, ds))
			continue
		}
		gapSite := rwgraph.Site(ds.Target, gap.Start, gap.Length)
		p := m.newPhiFor(block, gapSite)
		add([]*rwgraph.RWNode{p})
	}

	return out
}
