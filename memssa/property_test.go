package memssa

import (
	"sort"
	"testing"

	"github.com/dg-go/memssa/rwgraph"
)

// P2 Strong-update kill: after a strong update, the map holds exactly
// the updating node for that exact range.
func TestPropertyStrongUpdateKill(t *testing.T) {
	g := rwgraph.NewGraph()
	target := &rwgraph.Object{Name: "t"}
	b := g.NewBlock("B")

	n1 := attach(b, rwgraph.NewNode("n1"))
	n1.Overwrites = []rwgraph.DefSite{rwgraph.Site(target, 0, 4)}
	n2 := attach(b, rwgraph.NewNode("n2"))
	n2.Overwrites = []rwgraph.DefSite{rwgraph.Site(target, 0, 4)}

	m := New(g)
	m.RunLVN()

	got := b.Definitions.Get(rwgraph.Site(target, 0, 4))
	sameSet(t, got, n2)
}

// P3 Non-self-definition: a weak-def node never ends up in its own
// defuse set.
func TestPropertyNonSelfDefinition(t *testing.T) {
	g := rwgraph.NewGraph()
	target := &rwgraph.Object{Name: "t"}
	b := g.NewBlock("B")

	n := attach(b, rwgraph.NewNode("n"))
	n.Defs = []rwgraph.DefSite{rwgraph.Site(target, 0, 4)}

	m := New(g)
	m.RunLVN()
	m.RunGVN()

	if _, ok := n.Defuse[n]; ok {
		t.Fatal("a node must never appear in its own defuse set")
	}
}

// P4 PHI resolution totality: after GVN, the PHI created at the join
// block M has a non-empty defuse set.
func TestPropertyPhiResolutionTotality(t *testing.T) {
	g := rwgraph.NewGraph()
	target := &rwgraph.Object{Name: "t"}

	e := g.NewBlock("E")
	b1 := g.NewBlock("B1")
	b2 := g.NewBlock("B2")
	mid := g.NewBlock("M")
	u := g.NewBlock("U")

	rwgraph.AddEdge(e, b1)
	rwgraph.AddEdge(e, b2)
	rwgraph.AddEdge(b1, mid)
	rwgraph.AddEdge(b2, mid)
	rwgraph.AddEdge(mid, u)

	n1 := attach(b1, rwgraph.NewNode("n1"))
	n1.Overwrites = []rwgraph.DefSite{rwgraph.Site(target, 0, 4)}
	n2 := attach(b2, rwgraph.NewNode("n2"))
	n2.Overwrites = []rwgraph.DefSite{rwgraph.Site(target, 0, 4)}
	reader := attach(u, rwgraph.NewNode("u"))
	reader.Uses = []rwgraph.DefSite{rwgraph.Site(target, 0, 4)}

	m := New(g)
	m.RunLVN()
	m.RunGVN()

	found := false
	for _, p := range m.phis {
		if p.Block == mid {
			found = true
			if len(p.Defuse) == 0 {
				t.Fatalf("PHI at the join block M has an empty defuse set")
			}
		}
	}
	if !found {
		t.Fatal("expected a PHI to have been created at the join block M")
	}
}

// P5/P6: reachingDefinitions terminates on a cyclic PHI graph and is
// idempotent across repeated calls.
func TestPropertyCycleSafetyAndIdempotence(t *testing.T) {
	g := rwgraph.NewGraph()
	target := &rwgraph.Object{Name: "t"}

	entry := g.NewBlock("E")
	header := g.NewBlock("H")
	loop := g.NewBlock("L")

	rwgraph.AddEdge(entry, header)
	rwgraph.AddEdge(header, loop)
	rwgraph.AddEdge(loop, header)

	e := attach(entry, rwgraph.NewNode("e"))
	e.Defs = []rwgraph.DefSite{rwgraph.Site(target, 0, 4)}
	l := attach(loop, rwgraph.NewNode("l"))
	l.Defs = []rwgraph.DefSite{rwgraph.Site(target, 0, 4)}
	reader := attach(header, rwgraph.NewNode("u"))
	reader.Uses = []rwgraph.DefSite{rwgraph.Site(target, 0, 4)}

	m := New(g)
	m.RunLVN()
	m.RunGVN()

	first := m.ReachingDefinitions(reader)
	second := m.ReachingDefinitions(reader)

	sortNodes := func(nodes []*rwgraph.RWNode) []string {
		names := make([]string, len(nodes))
		for i, n := range nodes {
			names[i] = n.Name
		}
		sort.Strings(names)
		return names
	}

	f, s := sortNodes(first), sortNodes(second)
	if len(f) != len(s) {
		t.Fatalf("non-idempotent result: %v vs %v", f, s)
	}
	for i := range f {
		if f[i] != s[i] {
			t.Fatalf("non-idempotent result: %v vs %v", f, s)
		}
	}
}

// P1 PHI uniqueness per gap: within one block, no two PHIs installed
// by LVN cover overlapping sub-intervals of the same target.
func TestPropertyPhiUniquenessPerGap(t *testing.T) {
	g := rwgraph.NewGraph()
	target := &rwgraph.Object{Name: "t"}
	b := g.NewBlock("B")

	// Two weak defs on disjoint sub-ranges, both uncovered initially:
	// each should get its own, non-overlapping local PHI.
	n1 := attach(b, rwgraph.NewNode("n1"))
	n1.Defs = []rwgraph.DefSite{rwgraph.Site(target, 0, 4)}
	n2 := attach(b, rwgraph.NewNode("n2"))
	n2.Defs = []rwgraph.DefSite{rwgraph.Site(target, 4, 4)}

	m := New(g)
	m.RunLVN()

	var blockPhis []*rwgraph.RWNode
	for _, p := range m.phis {
		if p.Block == b {
			blockPhis = append(blockPhis, p)
		}
	}
	for i := range blockPhis {
		for j := range blockPhis {
			if i == j {
				continue
			}
			a, c := blockPhis[i].PhiSite(), blockPhis[j].PhiSite()
			if a.Target == c.Target && a.Overlaps(c.Interval) {
				t.Fatalf("PHIs %v and %v cover overlapping ranges", a, c)
			}
		}
	}
}
