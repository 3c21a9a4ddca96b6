package rwgraph

import "github.com/dg-go/memssa/offset"

// Graph is the RW graph built by an external frontend before analysis
// begins (spec.md §6 "Frontend contract"). It owns the blocks and the
// per-Graph UNKNOWN_MEMORY sentinel object.
//
// Per spec.md §9, UNKNOWN_MEMORY's identity (not its value) is the
// recognition mechanism; it is scoped to a Graph rather than held in a
// package-level variable so that multiple MemorySSA transformations
// can run over independent graphs concurrently (spec.md §5) without
// sharing mutable package state.
type Graph struct {
	Blocks []*BasicBlock

	// UnknownMemory is this graph's sentinel target representing
	// memory the analysis cannot name.
	UnknownMemory *Object
}

// NewGraph returns an empty graph with a fresh UNKNOWN_MEMORY sentinel.
func NewGraph() *Graph {
	return &Graph{UnknownMemory: &Object{Name: "<unknown memory>"}}
}

// NewBlock creates and appends a new, edge-less block.
func (g *Graph) NewBlock(name string) *BasicBlock {
	b := &BasicBlock{
		Index:       len(g.Blocks),
		Name:        name,
		Definitions: NewDefinitionsMap[*RWNode](),
	}
	g.Blocks = append(g.Blocks, b)
	return b
}

// UnknownSite returns the def-site (UNKNOWN_MEMORY, 0, Unknown) that
// LVN/GVN consult alongside a target's own definitions (spec.md
// §4.4/§4.5).
func (g *Graph) UnknownSite() DefSite {
	return Site(g.UnknownMemory, 0, offset.Unknown)
}
