// Package memssa implements the memory SSA transformation: Local
// Value Numbering (LVN), Global Value Numbering (GVN), and the
// reaching-definitions query layer built on top of rwgraph's RW graph
// model (spec.md §2.4-7 / §4.4-6).
package memssa

import (
	"log"

	"github.com/dg-go/memssa/config"
	"github.com/dg-go/memssa/internal/trace"
	"github.com/dg-go/memssa/rwgraph"
)

// MemorySSA is the transformation-owned state for one analysis run
// over one *rwgraph.Graph: the PHI registry (spec.md §2.7/§9 "PHI
// registry as append-only list") plus the run-once guards for
// RunLVN/RunGVN (Open Question 3).
//
// A MemorySSA is not safe for concurrent use; independent instances
// over independent graphs share no mutable state (spec.md §5).
type MemorySSA struct {
	graph *rwgraph.Graph

	// phis is the append-only PHI registry. Indices are stable for the
	// lifetime of the analysis; GVN discovers newly-created PHIs by
	// comparing len(phis) before and after a findDefinitions call.
	phis []*rwgraph.RWNode

	trace *trace.Logger

	ranLVN bool
	ranGVN bool
}

// Option configures a MemorySSA at construction, the functional-options
// idiom the teacher's checker/config construction both use.
type Option func(*MemorySSA)

// WithTrace enables section/dump tracing of LVN, GVN, and the
// findAllReachingDefinitions fallback through out. Passing nil (the
// default) disables tracing.
func WithTrace(out *log.Logger) Option {
	return func(m *MemorySSA) { m.trace = trace.New(out) }
}

// WithMaxIntervalsPerTarget installs a defensive ceiling (SPEC_FULL.md
// §4.7) on every block's DefinitionsMap: once a single target's bucket
// count would exceed n, Update/Add panic with an *InvariantError. n<=0
// leaves the ceiling unlimited (the default).
func WithMaxIntervalsPerTarget(n int) Option {
	return func(m *MemorySSA) {
		for _, b := range m.graph.Blocks {
			b.Definitions.MaxIntervalsPerTarget = n
		}
	}
}

// WithConfig applies every knob in cfg (trace verbosity and the
// resource ceiling), the shape config.Load returns. It composes with
// WithTrace/WithMaxIntervalsPerTarget: later options win.
func WithConfig(cfg config.Config) Option {
	return func(m *MemorySSA) {
		m.trace = trace.FromConfig(cfg.Trace)
		WithMaxIntervalsPerTarget(cfg.MaxIntervalsPerTarget)(m)
	}
}

// New returns a MemorySSA ready to run over g. g must already be fully
// built: every block's node list, predecessor/successor edges, and
// each node's Overwrites/Defs/Uses must be final (spec.md §6 "Frontend
// contract").
func New(g *rwgraph.Graph, opts ...Option) *MemorySSA {
	m := &MemorySSA{graph: g}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// registerPhi appends p to the registry and installs it as the new
// first node of block, rewiring CFG per spec.md §3's PHI-placement
// invariant.
func (m *MemorySSA) registerPhi(block *rwgraph.BasicBlock, p *rwgraph.RWNode) {
	block.PrependAndUpdateCFG(p)
	m.phis = append(m.phis, p)
}

// newPhiFor creates, registers, and installs a PHI summarizing ds at
// block, after asserting the coverage-collision precondition from
// spec.md §4.4 step: "assert block.definitions.get(ds) is empty".
func (m *MemorySSA) newPhiFor(block *rwgraph.BasicBlock, ds rwgraph.DefSite) *rwgraph.RWNode {
	if existing := block.Definitions.Get(ds); len(existing) != 0 {
		invariantf("newPhiFor: %s already has coverage for %s in block %s", ds.Target, ds, block)
	}
	p := rwgraph.NewPhi(ds)
	block.Definitions.Update(ds, p)
	m.registerPhi(block, p)
	return p
}
