// Package rwgraph implements the read/write graph model that the
// memory SSA core operates over: memory objects, byte-precise
// def-sites, the interval-keyed DefinitionsMap, and the RWNode/basic
// block/graph types that carry them.
package rwgraph

import (
	"fmt"

	"github.com/dg-go/memssa/offset"
)

// Object is an opaque identity handle for a memory location: a local
// variable, a heap allocation, a global, or the distinguished "unknown
// memory" sentinel. Two Objects are the same memory location iff they
// are the same pointer; Object carries no other comparable fields on
// purpose; see Graph.UnknownMemory and the identity-comparison note in
// DESIGN.md.
type Object struct {
	// Name is used only for diagnostics and tracing; it plays no role
	// in identity or equality.
	Name string
}

func (o *Object) String() string {
	if o == nil {
		return "<nil object>"
	}
	return o.Name
}

// DefSite identifies a memory write or read range: the target object
// plus the half-open byte interval on it. Two DefSites are equal iff
// target, start, and length all match (spec.md §3).
type DefSite struct {
	Target *Object
	offset.Interval
}

// Site builds a DefSite for [start, start+length) on target.
func Site(target *Object, start, length offset.Offset) DefSite {
	return DefSite{Target: target, Interval: offset.Make(start, length)}
}

func (ds DefSite) String() string {
	return fmt.Sprintf("%s[%s,%s)", ds.Target, ds.Start, ds.Start.Add(ds.Length))
}

// IsUnknownMemory reports whether ds targets g's unknown-memory
// sentinel. Recognition is by pointer identity, per spec.md §6/§9.
func (ds DefSite) IsUnknownMemory(g *Graph) bool {
	return ds.Target == g.UnknownMemory
}
