// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/gviegas/scenetree/node"
	"github.com/gviegas/scenetree/sparse"
)

// MakeNode creates nodes from the resource subtree rooted
// at res, inserting the copy of res as the last child of
// parent. Every node created is enabled and mirrors the
// shape of the template.
// It returns the node created from res.
//
// The parent, the resource and every mesh and material
// reference in the template are validated before any
// node is created. The template is not modified.
func (c *Context) MakeNode(parent node.Node, res sparse.Index) (node.Node, error) {
	if _, err := c.nodes.Get(parent); err != nil {
		return node.Nil, err
	}
	if res == c.lib {
		return node.Nil, fmt.Errorf("%w: resource %d is the library root", ErrNotFound, res)
	}
	if _, err := c.res.Get(res); err != nil {
		return node.Nil, err
	}
	for i, r := range c.res.Walk(res) {
		if err := c.checkRefs(r.Mesh, r.Material); err != nil {
			return node.Nil, fmt.Errorf("resource %d: %w", i, err)
		}
	}

	type pair struct {
		res    sparse.Index
		parent node.Node
	}
	first := node.Nil
	que := []pair{{res, parent}}
	for len(que) > 0 {
		p := que[0]
		que = que[1:]
		var d node.Data
		err := copier.Copy(&d, c.res.At(p.res))
		var n node.Node
		if err == nil {
			d.Enabled = true
			n, err = c.nodes.Insert(d, p.parent)
		}
		if err != nil {
			return node.Nil, c.undoMake(first, err)
		}
		if first == node.Nil {
			first = n
		}
		for ch := range c.res.Children(p.res) {
			que = append(que, pair{ch, n})
		}
	}
	c.log.Debug("node made", zap.Int("node", int(first)), zap.Int("resource", int(res)), zap.Int("parent", int(parent)))
	return first, nil
}

// undoMake removes the partial tree rooted at first, if
// any, after MakeNode failed with err.
// A failure to remove is joined to err.
func (c *Context) undoMake(first node.Node, err error) error {
	if first == node.Nil {
		return err
	}
	if rerr := c.nodes.Remove(first); rerr != nil {
		c.log.Error("node not removed", zap.Int("node", int(first)), zap.Error(rerr))
		return errors.Join(err, rerr)
	}
	return err
}

// NodeMesh returns the mesh referred to by n.
// It fails with ErrNotFound if n has no mesh or if the
// mesh was removed.
func (c *Context) NodeMesh(n node.Node) (*Mesh, error) {
	d, err := c.nodes.Get(n)
	if err != nil {
		return nil, err
	}
	if d.Mesh == sparse.Nil || !c.Meshes.Contains(d.Mesh) {
		return nil, fmt.Errorf("%w: mesh of node %d", ErrNotFound, n)
	}
	return c.Meshes.At(d.Mesh), nil
}

// NodeMaterial returns the material referred to by n.
// It fails with ErrNotFound if n has no material or if
// the material was removed.
func (c *Context) NodeMaterial(n node.Node) (*Material, error) {
	d, err := c.nodes.Get(n)
	if err != nil {
		return nil, err
	}
	if d.Material == sparse.Nil || !c.Materials.Contains(d.Material) {
		return nil, fmt.Errorf("%w: material of node %d", ErrNotFound, n)
	}
	return c.Materials.At(d.Material), nil
}
