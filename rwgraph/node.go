package rwgraph

import "fmt"

// Kind distinguishes the two RWNode variants from spec.md §3. Memory
// the analysis cannot name is not a node at all — it is
// Graph.UnknownMemory, a sentinel *Object — so Kind needs no third
// case for it.
type Kind uint8

const (
	// Generic is an ordinary node supplied by the frontend: it may
	// overwrite, define, and/or use memory.
	Generic Kind = iota
	// Phi is a synthesized join node created by LVN/GVN. A Phi has
	// exactly one Overwrites entry and empty Defs/Uses; its Defuse
	// set is populated by GVN.
	Phi
)

func (k Kind) String() string {
	switch k {
	case Generic:
		return "generic"
	case Phi:
		return "phi"
	default:
		return "invalid"
	}
}

// RWNode is one node of the read/write graph: spec.md §3.
type RWNode struct {
	Kind  Kind
	Block *BasicBlock // nil for nodes in unreachable/dead blocks

	Overwrites []DefSite // strong updates; offsets and target must be known
	Defs       []DefSite // weak updates; target may be UNKNOWN_MEMORY, offsets may be unknown
	Uses       []DefSite // reads that demand reaching definitions

	// Defuse holds the resolved set of nodes that may define the
	// bytes this node uses or weakly redefines. It is written by LVN
	// and GVN and read by the query layer.
	Defuse map[*RWNode]struct{}

	// Name is used only for diagnostics.
	Name string
}

// NewNode creates a Generic node not yet attached to any block. The
// frontend is expected to build the whole graph (nodes, blocks, CFG
// edges, and each node's Overwrites/Defs/Uses) before analysis begins
// (spec.md §6 "Frontend contract").
func NewNode(name string) *RWNode {
	return &RWNode{Kind: Generic, Name: name, Defuse: make(map[*RWNode]struct{})}
}

// NewPhi creates a PHI node summarizing ds. It has no block yet; the
// caller (memssa's LVN/GVN) attaches it via BasicBlock.PrependAndUpdateCFG
// and appends it to the transformation's PHI registry.
func NewPhi(ds DefSite) *RWNode {
	return &RWNode{
		Kind:       Phi,
		Overwrites: []DefSite{ds},
		Defuse:     make(map[*RWNode]struct{}),
		Name:       "phi",
	}
}

// IsPhi reports whether n is a PHI node.
func (n *RWNode) IsPhi() bool { return n.Kind == Phi }

// PhiSite returns the single def-site a PHI summarizes. It panics if
// n is not a PHI — this is an invariant violation (spec.md §3: "A PHI
// node has exactly one entry in overwrites").
func (n *RWNode) PhiSite() DefSite {
	if !n.IsPhi() {
		panic(invariantf("PhiSite called on non-PHI node %s", n))
	}
	if len(n.Overwrites) != 1 {
		panic(invariantf("PHI node %s has %d overwrites, want exactly 1", n, len(n.Overwrites)))
	}
	return n.Overwrites[0]
}

// AddDefuse unions nodes into n.Defuse.
func (n *RWNode) AddDefuse(nodes ...*RWNode) {
	for _, d := range nodes {
		if d == nil {
			continue
		}
		n.Defuse[d] = struct{}{}
	}
}

// UsesUnknown reports whether any of n's uses targets UNKNOWN_MEMORY
// or has an unknown offset — the condition that routes
// ReachingDefinitions to the findAllReachingDefinitions fallback
// (spec.md §4.6).
func (n *RWNode) UsesUnknown(g *Graph) bool {
	for _, ds := range n.Uses {
		if ds.IsUnknownMemory(g) || !ds.Start.Known() || ds.Length == 0 {
			return true
		}
	}
	return false
}

func (n *RWNode) String() string {
	if n == nil {
		return "<nil node>"
	}
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("%s@%p", n.Kind, n)
}
