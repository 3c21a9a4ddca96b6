package rwgraph

import "strconv"

// BasicBlock is an ordered list of RWNodes plus the locally-visible
// definitions accumulated over that list by LVN, and the block-level
// CFG edges to its neighbors (spec.md §3/§4.3).
//
// The Index/Preds/Succs shape mirrors the basic-block bookkeeping
// the teacher codebase uses for its own SSA form (honnef.co/go/tools's
// ssa.BasicBlock in ssa/dom.go and ssa/func.go): a dense Index for
// bitset-backed visited-sets, and plain slices of neighbor pointers
// rather than a separate edge type.
type BasicBlock struct {
	Index int
	Nodes []*RWNode

	Preds, Succs []*BasicBlock

	// Definitions is the DefinitionsMap LVN populates and GVN/the
	// query layer consult (spec.md §4.4-§4.6).
	Definitions *DefinitionsMap[*RWNode]

	// Name is used only for diagnostics.
	Name string
}

func (b *BasicBlock) String() string {
	if b == nil {
		return "<dead block>"
	}
	if b.Name != "" {
		return b.Name
	}
	return "bb" + strconv.Itoa(b.Index)
}

// GetSinglePredecessor returns b's unique predecessor if b has
// exactly one, and ok=false otherwise (spec.md §4.3).
func (b *BasicBlock) GetSinglePredecessor() (pred *BasicBlock, ok bool) {
	if len(b.Preds) == 1 {
		return b.Preds[0], true
	}
	return nil, false
}

// PrependAndUpdateCFG installs n as the new first node of b. n is
// expected to have been created fresh (e.g. via the transformation's
// PHI registry) and not yet attached to any block (spec.md §4.3).
//
// Per spec.md §4.3, this "rewires CFG so n's successor is the former
// first node", i.e. the block's logical entry point — any caller that
// cares which node begins b — now observes n first. Block-level
// Preds/Succs are untouched: those are edges between blocks, and b's
// identity as a block does not change.
func (b *BasicBlock) PrependAndUpdateCFG(n *RWNode) {
	if n.Block != nil {
		Invariantf("PrependAndUpdateCFG: node %s is already attached to block %s", n, n.Block)
	}
	n.Block = b
	nodes := make([]*RWNode, 0, len(b.Nodes)+1)
	nodes = append(nodes, n)
	nodes = append(nodes, b.Nodes...)
	b.Nodes = nodes
}

// AddEdge records a block-level CFG edge from -> to.
func AddEdge(from, to *BasicBlock) {
	from.Succs = append(from.Succs, to)
	to.Preds = append(to.Preds, from)
}
