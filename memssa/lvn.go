package memssa

import "github.com/dg-go/memssa/rwgraph"

// RunLVN runs Local Value Numbering (spec.md §4.4) over every block of
// the graph, in block order. It is the first of the two mandatory
// analysis passes and must be called exactly once, before RunGVN
// (Open Question 3's single-shot resolution).
func (m *MemorySSA) RunLVN() {
	if m.ranLVN {
		invariantf("RunLVN: already run on this MemorySSA")
	}
	done := m.trace.Section("lvn")
	defer done()
	m.ranLVN = true

	for _, b := range m.graph.Blocks {
		m.lvnBlock(b)
	}
}

// lvnBlock is the single forward sweep of spec.md §4.4 over one
// block's nodes, in program order.
func (m *MemorySSA) lvnBlock(b *rwgraph.BasicBlock) {
	unknownSite := m.graph.UnknownSite()

	// Range over a snapshot: newPhiFor prepends PHIs to b.Nodes, and a
	// PHI never needs LVN processing itself (it has no Overwrites/
	// Defs/Uses beyond the single summarizing entry already installed
	// by its creator).
	nodes := append([]*rwgraph.RWNode(nil), b.Nodes...)

	for _, n := range nodes {
		for _, ds := range n.Overwrites {
			if ds.Target == m.graph.UnknownMemory {
				invariantf("lvnBlock: node %s has overwrites targeting UNKNOWN_MEMORY", n)
			}
			if !ds.Start.Known() {
				invariantf("lvnBlock: node %s has an overwrite with unknown start", n)
			}
			b.Definitions.Update(ds, n)
		}

		for _, ds := range n.Defs {
			if ds.Target == m.graph.UnknownMemory {
				b.Definitions.AddAll(n)
				b.Definitions.Add(unknownSite, n)
				continue
			}
			// Ordering is mandatory: the defuse lookup must precede
			// the Add, else n becomes its own definition (spec.md
			// §4.4 step 2).
			n.AddDefuse(m.findDefinitionsInBlock(b, ds)...)
			b.Definitions.Add(ds, n)
		}

		for _, ds := range n.Uses {
			n.AddDefuse(m.findDefinitionsInBlock(b, ds)...)
		}
	}
}

// findDefinitionsInBlock implements spec.md §4.4's helper: the set of
// nodes reaching ds purely from b's own locally-visible definitions,
// creating block-local PHIs to stand in for any byte range of ds that
// b itself does not yet cover.
func (m *MemorySSA) findDefinitionsInBlock(b *rwgraph.BasicBlock, ds rwgraph.DefSite) []*rwgraph.RWNode {
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

	add(b.Definitions.Get(ds))
	add(b.Definitions.Get(m.graph.UnknownSite()))

	for _, gap := range b.Definitions.UndefinedIntervals(ds) {
		gapSite := rwgraph.Site(ds.Target, gap.Start, gap.Length)
		p := m.newPhiFor(b, gapSite)
		add([]*rwgraph.RWNode{p})
	}

	return out
}
