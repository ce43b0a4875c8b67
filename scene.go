// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene provides functionality for creating
// scene graphs from reusable resource templates.
//
// A Context owns every list, the resource forest and
// the node graph. Nodes and resources refer to list
// entries by index; such references are weak and are
// revalidated on lookup.
package scene

import (
	"errors"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/gviegas/scenetree/linear"
	"github.com/gviegas/scenetree/node"
	"github.com/gviegas/scenetree/sparse"
	"github.com/gviegas/scenetree/tree"
)

// ErrNotFound means that a name or reference could
// not be resolved.
var ErrNotFound = errors.New("scene: not found")

// Context is a self-contained scene.
// A Context is not safe for concurrent use.
type Context struct {
	Materials   tree.List[Material]
	Meshes      tree.List[Mesh]
	PointLights tree.List[PointLight]
	Cubemaps    tree.List[Cubemap]

	res   tree.Forest[Resource]
	lib   sparse.Index
	nodes *node.Graph
	cfg   Config
	log   *zap.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used by the Context and
// by its node graph.
func WithLogger(log *zap.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a new Context.
// If cfg is nil, DefaultConfig is used.
func New(cfg *Config, opts ...Option) *Context {
	c := &Context{log: zap.NewNop()}
	if cfg == nil {
		dfl := DefaultConfig()
		cfg = &dfl
	}
	c.cfg = *cfg
	for _, opt := range opts {
		opt(c)
	}
	c.Materials.Init()
	c.Meshes.Init()
	c.PointLights.Init()
	c.Cubemaps.Init()
	c.lib, _ = c.res.Insert(Resource{
		Name:     "library",
		Mesh:     sparse.Nil,
		Material: sparse.Nil,
		Local:    linear.Identity(),
	}, sparse.Nil)
	c.nodes = node.New(c.cfg.Propagation, c.log.Named("node"))
	return c
}

// Config returns the configuration c was created with.
func (c *Context) Config() Config { return c.cfg }

// Nodes returns the node graph.
func (c *Context) Nodes() *node.Graph { return c.nodes }

// Library returns the root of the resource forest.
// Resources inserted with a Nil parent are its children.
func (c *Context) Library() sparse.Index { return c.lib }

// Verify checks that every world transform in the node
// graph is up to date.
func (c *Context) Verify() error { return c.nodes.Verify(c.cfg.Epsilon) }

// checkRefs checks that mesh and mat are either Nil or
// refer to live list entries.
func (c *Context) checkRefs(mesh, mat sparse.Index) error {
	if mesh != sparse.Nil && !c.Meshes.Contains(mesh) {
		return fmt.Errorf("%w: mesh %d", ErrNotFound, mesh)
	}
	if mat != sparse.Nil && !c.Materials.Contains(mat) {
		return fmt.Errorf("%w: material %d", ErrNotFound, mat)
	}
	return nil
}

// find returns the index of the first entry in l whose
// name is name.
func find[T any](l *tree.List[T], name string, nameOf func(*T) string) (sparse.Index, bool) {
	for i, x := range l.All() {
		if nameOf(x) == name {
			return i, true
		}
	}
	return sparse.Nil, false
}

// FindMaterial returns the first material named name.
func (c *Context) FindMaterial(name string) (sparse.Index, bool) {
	return find(&c.Materials, name, func(m *Material) string { return m.Name })
}

// FindMesh returns the first mesh named name.
func (c *Context) FindMesh(name string) (sparse.Index, bool) {
	return find(&c.Meshes, name, func(m *Mesh) string { return m.Name })
}

// Stats describes the contents of a Context.
type Stats struct {
	Materials, Meshes, PointLights, Cubemaps int
	Resources, Nodes                         int
}

// Stats returns the number of live entries of each kind.
// The library root and the root node are not counted.
func (c *Context) Stats() Stats {
	return Stats{
		Materials:   c.Materials.Len(),
		Meshes:      c.Meshes.Len(),
		PointLights: c.PointLights.Len(),
		Cubemaps:    c.Cubemaps.Len(),
		Resources:   c.res.Count() - 1,
		Nodes:       c.nodes.Len() - 1,
	}
}

// seq adapts a forest iterator to yield indices only.
func seq[T any](s iter.Seq2[sparse.Index, *T]) iter.Seq[sparse.Index] {
	return func(yield func(sparse.Index) bool) {
		for i := range s {
			if !yield(i) {
				return
			}
		}
	}
}
