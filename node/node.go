// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene's graph.
package node

import (
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gviegas/scenetree/linear"
	"github.com/gviegas/scenetree/sparse"
	"github.com/gviegas/scenetree/tree"
)

// Node identifies a node in a Graph.
type Node sparse.Index

// Nil represents an invalid Node.
const Nil = Node(sparse.Nil)

func (n Node) index() sparse.Index { return sparse.Index(n) }

// ErrStale means that a node's world transform does not
// match the transforms of its ancestors.
var ErrStale = errors.New("node: stale world transform")

// Data is the content of a node.
type Data struct {
	// Name for the node.
	// It is not used by node code other than Find.
	Name string

	// ID is a unique identifier assigned on insertion
	// when left as uuid.Nil.
	ID uuid.UUID

	// Mesh and material references.
	// sparse.Nil when absent. These are not validated
	// by the graph.
	Mesh     sparse.Index
	Material sparse.Index

	// Local is the transform relative to the parent.
	Local linear.M4

	// World is the transform relative to the root.
	// It is computed by the graph; any value set
	// by the caller is ignored.
	World linear.M4

	Enabled bool
}

// Graph is a node graph.
// The zero value is not valid; call Init or New.
// A Graph is not safe for concurrent use.
type Graph struct {
	nodes tree.Forest[Data]
	root  Node
	prop  Propagation
	log   *zap.Logger
}

// New creates an initialized graph.
func New(prop Propagation, log *zap.Logger) *Graph { return new(Graph).Init(prop, log) }

// Init initializes g.
// The graph will contain only the root node, whose local
// transform is the identity.
// log may be nil.
func (g *Graph) Init(prop Propagation, log *zap.Logger) *Graph {
	if log == nil {
		log = zap.NewNop()
	}
	g.nodes = tree.Forest[Data]{}
	g.prop = prop
	g.log = log
	var root Data
	root.Name = "root"
	root.ID = uuid.New()
	root.Mesh = sparse.Nil
	root.Material = sparse.Nil
	root.Local.I()
	root.World.I()
	root.Enabled = true
	i, _ := g.nodes.Insert(root, sparse.Nil)
	g.root = Node(i)
	return g
}

// Root returns the root node.
func (g *Graph) Root() Node { return g.root }

// Len returns the number of nodes in g, including the
// root.
func (g *Graph) Len() int { return g.nodes.Count() }

// Cap returns the number of slots in g's storage.
func (g *Graph) Cap() int { return g.nodes.Len() }

// Insert inserts a new node as the last child of prev.
// It fails if prev is not a valid node, in which case
// the graph is not modified.
func (g *Graph) Insert(data Data, prev Node) (Node, error) {
	p, err := g.nodes.Get(prev.index())
	if err != nil {
		return Nil, err
	}
	if data.ID == uuid.Nil {
		data.ID = uuid.New()
	}
	data.World.Mul(&p.World, &data.Local)
	i, err := g.nodes.Insert(data, prev.index())
	if err != nil {
		return Nil, err
	}
	g.log.Debug("node inserted", zap.Int("node", int(i)), zap.Int("parent", int(prev)), zap.String("name", data.Name))
	return Node(i), nil
}

// Remove removes a node and all of its descendants.
// The root cannot be removed.
func (g *Graph) Remove(node Node) error {
	if err := g.nodes.Erase(node.index()); err != nil {
		return err
	}
	g.log.Debug("node removed", zap.Int("node", int(node)))
	return nil
}

// Get returns a copy of the node's data.
func (g *Graph) Get(node Node) (Data, error) {
	d, err := g.nodes.Get(node.index())
	if err != nil {
		return Data{}, err
	}
	return *d, nil
}

// Parent returns the node's parent, or Nil for the root.
func (g *Graph) Parent(node Node) (Node, error) {
	l, err := g.nodes.Link(node.index())
	if err != nil {
		return Nil, err
	}
	return Node(l.Parent), nil
}

// Transform returns the local and world transforms of
// the node.
func (g *Graph) Transform(node Node) (local, world linear.M4, err error) {
	d, err := g.nodes.Get(node.index())
	if err != nil {
		return
	}
	return d.Local, d.World, nil
}

// Local returns the local transform of the node.
func (g *Graph) Local(node Node) (linear.M4, error) {
	l, _, err := g.Transform(node)
	return l, err
}

// World returns the world transform of the node.
func (g *Graph) World(node Node) (linear.M4, error) {
	_, w, err := g.Transform(node)
	return w, err
}

// SetLocal sets the local transform of the node and
// updates the world transforms of the node and of its
// descendants.
func (g *Graph) SetLocal(node Node, local *linear.M4) error {
	d, err := g.nodes.Get(node.index())
	if err != nil {
		return err
	}
	d.Local = *local
	switch g.prop {
	case PropagateScan:
		g.propagateScan(node.index())
	default:
		g.propagateSubtree(node.index())
	}
	return nil
}

// set applies f to the node's data.
func (g *Graph) set(node Node, f func(*Data)) error {
	d, err := g.nodes.Get(node.index())
	if err != nil {
		return err
	}
	f(d)
	return nil
}

// SetMesh sets the mesh reference of the node.
func (g *Graph) SetMesh(node Node, mesh sparse.Index) error {
	return g.set(node, func(d *Data) { d.Mesh = mesh })
}

// SetMaterial sets the material reference of the node.
func (g *Graph) SetMaterial(node Node, mat sparse.Index) error {
	return g.set(node, func(d *Data) { d.Material = mat })
}

// SetEnabled sets whether the node is enabled.
func (g *Graph) SetEnabled(node Node, enabled bool) error {
	return g.set(node, func(d *Data) { d.Enabled = enabled })
}

// SetName sets the name of the node.
func (g *Graph) SetName(node Node, name string) error {
	return g.set(node, func(d *Data) { d.Name = name })
}

// Children returns an iterator over the immediate
// descendants of the node, in insertion order.
func (g *Graph) Children(node Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for i := range g.nodes.Children(node.index()) {
			if !yield(Node(i)) {
				return
			}
		}
	}
}

// Walk returns an iterator over the node and all of its
// descendants. Ancestors are visited first.
// The graph must not be changed during iteration.
func (g *Graph) Walk(node Node) iter.Seq2[Node, *Data] {
	return func(yield func(Node, *Data) bool) {
		for i, d := range g.nodes.Walk(node.index()) {
			if !yield(Node(i), d) {
				return
			}
		}
	}
}

// Find returns the first node named name, in breadth-first
// order from the root.
func (g *Graph) Find(name string) (Node, bool) {
	for n, d := range g.Walk(g.root) {
		if d.Name == name {
			return n, true
		}
	}
	return Nil, false
}

// Verify checks that the world transform of every node
// equals the world transform of its parent times its
// local transform, within eps.
func (g *Graph) Verify(eps float32) error {
	for i, d := range g.nodes.All() {
		want := d.Local
		if p := g.nodes.Parent(i); p != sparse.Nil {
			want.Mul(&g.nodes.At(p).World, &d.Local)
		}
		if !d.World.Equal(&want, eps) {
			return fmt.Errorf("%w: node %d (%q)", ErrStale, i, d.Name)
		}
	}
	return nil
}
