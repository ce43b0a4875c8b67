// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"iter"

	"go.uber.org/zap"

	"github.com/gviegas/scenetree/linear"
	"github.com/gviegas/scenetree/sparse"
	"github.com/gviegas/scenetree/tree"
)

// Resource is a node template.
// Mesh and Material are indices into the Context's
// lists, or sparse.Nil when absent.
type Resource struct {
	Name     string
	Mesh     sparse.Index
	Material sparse.Index
	Local    linear.M4
}

// NewResource returns a resource with no mesh and no
// material whose local transform is the identity.
func NewResource(name string) Resource {
	return Resource{
		Name:     name,
		Mesh:     sparse.Nil,
		Material: sparse.Nil,
		Local:    linear.Identity(),
	}
}

// AddResource inserts r as the last child of parent.
// If parent is sparse.Nil, r becomes a child of the
// library root.
// It fails if parent is not a live resource or if r
// refers to missing list entries.
func (c *Context) AddResource(parent sparse.Index, r Resource) (sparse.Index, error) {
	if parent == sparse.Nil {
		parent = c.lib
	}
	if err := c.checkRefs(r.Mesh, r.Material); err != nil {
		return sparse.Nil, err
	}
	i, err := c.res.Insert(r, parent)
	if err != nil {
		return sparse.Nil, err
	}
	c.log.Debug("resource added", zap.Int("resource", int(i)), zap.Int("parent", int(parent)), zap.String("name", r.Name))
	return i, nil
}

// RemoveResource removes a resource and all of its
// descendants. The library root cannot be removed.
// Nodes created from the resource are not affected.
func (c *Context) RemoveResource(i sparse.Index) error {
	if err := c.res.Erase(i); err != nil {
		return err
	}
	c.log.Debug("resource removed", zap.Int("resource", int(i)))
	return nil
}

// Resource returns a copy of the resource at i.
func (c *Context) Resource(i sparse.Index) (Resource, error) {
	r, err := c.res.Get(i)
	if err != nil {
		return Resource{}, err
	}
	return *r, nil
}

// ResourceParent returns the parent of the resource at i.
func (c *Context) ResourceParent(i sparse.Index) (sparse.Index, error) {
	l, err := c.res.Link(i)
	if err != nil {
		return sparse.Nil, err
	}
	return l.Parent, nil
}

// ResourceChildren returns an iterator over the immediate
// descendants of the resource at i.
func (c *Context) ResourceChildren(i sparse.Index) iter.Seq[sparse.Index] {
	return seq(c.res.Children(i))
}

// FindResource returns the first child of the library
// root named name.
func (c *Context) FindResource(name string) (sparse.Index, bool) {
	for i, r := range c.res.Children(c.lib) {
		if r.Name == name {
			return i, true
		}
	}
	return sparse.Nil, false
}

// CopyResource copies the subtree rooted at src as the
// last child of dst. If dst is sparse.Nil, the copy
// becomes a child of the library root.
// It returns the root of the copy.
func (c *Context) CopyResource(dst, src sparse.Index) (sparse.Index, error) {
	if dst == sparse.Nil {
		dst = c.lib
	}
	if src == c.lib {
		return sparse.Nil, tree.ErrRoot
	}
	i, err := tree.Copy(&c.res, dst, &c.res, src)
	if err != nil {
		return sparse.Nil, err
	}
	c.log.Debug("resource copied", zap.Int("resource", int(i)), zap.Int("source", int(src)), zap.Int("parent", int(dst)))
	return i, nil
}
