// Package cfgfixture builds rwgraph.Graph skeletons whose block-level
// control-flow mirrors a real parsed Go function, using
// golang.org/x/tools/go/cfg the way the teacher's own SSA-adjacent
// tests parse small Go snippets with go/parser rather than hand-
// building basic blocks (honnef.co/go/tools/go/ir/builder_test.go,
// honnef.co/go/tools/staticcheck/ineffassign.go's use of cfg.Block).
//
// This is explicitly not a frontend for the analysis — it never
// inspects statements to derive overwrites/defs/uses def-sites, only
// the shape of the CFG itself. Tests attach RW annotations to the
// resulting blocks by hand.
package cfgfixture

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	"golang.org/x/tools/go/cfg"

	"github.com/dg-go/memssa/rwgraph"
)

// alwaysMayReturn is the conservative golang.org/x/tools/go/cfg
// "may this call not return" callback: fixtures never call functions
// that diverge, so every call may return.
func alwaysMayReturn(*ast.CallExpr) bool { return true }

// Build parses src as a function literal's source (e.g.
// "func() { if x { } else { } }") and returns a *rwgraph.Graph with
// one block per reachable golang.org/x/tools/go/cfg block, wired with
// the same predecessor/successor edges, in the same block order.
// Unreachable blocks (cfg.Block.Live == false) are omitted, matching
// spec.md §6's "unreachable blocks may have null block pointers".
func Build(src string) (*rwgraph.Graph, error) {
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "fixture.go", src, 0)
	if err != nil {
		return nil, fmt.Errorf("cfgfixture: parsing %q: %w", src, err)
	}
	lit, ok := expr.(*ast.FuncLit)
	if !ok {
		return nil, fmt.Errorf("cfgfixture: %q is not a function literal", src)
	}

	g := cfg.New(lit.Body, alwaysMayReturn)

	graph := rwgraph.NewGraph()
	blocks := make(map[*cfg.Block]*rwgraph.BasicBlock, len(g.Blocks))
	for _, b := range g.Blocks {
		if !b.Live {
			continue
		}
		blocks[b] = graph.NewBlock(fmt.Sprintf("bb%d", b.Index))
	}
	for _, b := range g.Blocks {
		rb, ok := blocks[b]
		if !ok {
			continue
		}
		for _, succ := range b.Succs {
			if rsucc, ok := blocks[succ]; ok {
				rwgraph.AddEdge(rb, rsucc)
			}
		}
	}
	return graph, nil
}
