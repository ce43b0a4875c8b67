// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package node

import (
	"fmt"

	"github.com/gviegas/scenetree/internal/bitvec"
	"github.com/gviegas/scenetree/linear"
	"github.com/gviegas/scenetree/sparse"
)

// Propagation selects how world transforms are updated
// after a call to Graph.SetLocal.
// Both strategies produce the same transforms.
type Propagation int

const (
	// PropagateSubtree walks the changed node's subtree
	// only, starting from its parent's world transform.
	PropagateSubtree Propagation = iota

	// PropagateScan searches from every unvisited node
	// in storage order until the changed node has been
	// reached, rewriting world transforms only within
	// the changed node's subtree.
	PropagateScan
)

var propNames = [...]string{
	PropagateSubtree: "subtree",
	PropagateScan:    "scan",
}

// String implements fmt.Stringer.
func (p Propagation) String() string {
	if p >= 0 && int(p) < len(propNames) {
		return propNames[p]
	}
	return fmt.Sprintf("Propagation(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Propagation) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Propagation) UnmarshalText(b []byte) error {
	for i, s := range propNames {
		if s == string(b) {
			*p = Propagation(i)
			return nil
		}
	}
	return fmt.Errorf("node: unknown propagation %q", string(b))
}

// Set parses s. It is meant for command line flags.
func (p *Propagation) Set(s string) error { return p.UnmarshalText([]byte(s)) }

// Type is used by command line flags.
func (*Propagation) Type() string { return "propagation" }

// parentWorld returns the world transform of i's parent,
// or the identity if i is a root.
func (g *Graph) parentWorld(i sparse.Index) (w linear.M4) {
	if p := g.nodes.Parent(i); p != sparse.Nil {
		return g.nodes.At(p).World
	}
	w.I()
	return
}

// propagateSubtree recomputes the world transforms of
// target and its descendants.
func (g *Graph) propagateSubtree(target sparse.Index) {
	// Walk visits parents before children, so each
	// parent's world transform is up to date when its
	// children are visited.
	for i, d := range g.nodes.Walk(target) {
		w := g.parentWorld(i)
		d.World.Mul(&w, &d.Local)
	}
}

// propagateScan recomputes the world transforms of target
// and its descendants without assuming anything about
// where they are stored.
func (g *Graph) propagateScan(target sparse.Index) {
	type entry struct {
		node     sparse.Index
		inTarget bool
		accum    linear.M4
	}
	var visited bitvec.V[uint64]
	visited.GrowTo(g.nodes.Len())
	var que []entry
	for s := range g.nodes.All() {
		if visited.IsSet(int(s)) {
			continue
		}
		found := false
		que = append(que[:0], entry{s, s == target, g.parentWorld(s)})
		for len(que) > 0 {
			e := que[0]
			que = que[1:]
			visited.Set(int(e.node))
			found = found || e.node == target
			d := g.nodes.At(e.node)
			if e.inTarget {
				d.World.Mul(&e.accum, &d.Local)
			}
			for c := range g.nodes.Children(e.node) {
				que = append(que, entry{c, e.inTarget || c == target, d.World})
			}
		}
		if found {
			// The search that reached target also
			// covered all of its descendants.
			break
		}
	}
}
