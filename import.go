// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"bytes"
	"io"

	"go.uber.org/zap"

	"github.com/gviegas/scenetree/gltf"
	"github.com/gviegas/scenetree/linear"
	"github.com/gviegas/scenetree/sparse"
)

// ImportGLTF reads a glTF (JSON) or GLB file from r and
// adds its contents to c.
// Materials and meshes are appended to the lists. Each
// glTF scene becomes a child of a new resource named
// name, which is inserted under the library root and
// returned. Point lights are added to c.PointLights
// with positions taken from their nodes.
//
// Nothing is added if the file is not valid.
func (c *Context) ImportGLTF(name string, r io.Reader) (sparse.Index, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return sparse.Nil, err
	}
	var f *gltf.GLTF
	if gltf.IsGLB(b) {
		f, err = gltf.DecodeGLB(bytes.NewReader(b))
	} else {
		f, err = gltf.Decode(bytes.NewReader(b))
	}
	if err != nil {
		return sparse.Nil, err
	}
	if err := f.Check(); err != nil {
		return sparse.Nil, err
	}

	mats := make([]sparse.Index, len(f.Materials))
	for i := range f.Materials {
		mats[i] = c.Materials.Insert(convMaterial(&f.Materials[i]))
	}
	meshes := make([]sparse.Index, len(f.Meshes))
	meshMats := make([]sparse.Index, len(f.Meshes))
	for i, m := range f.Meshes {
		meshes[i] = c.Meshes.Insert(Mesh{Name: m.Name, Primitives: len(m.Primitives)})
		meshMats[i] = sparse.Nil
		if p := m.Primitives[0].Material; p != nil {
			meshMats[i] = mats[*p]
		}
	}

	root := c.addChild(c.lib, NewResource(name))
	for _, s := range scenes(f) {
		sr := c.addChild(root, NewResource(s.Name))
		type item struct {
			node   int64
			parent sparse.Index
			world  linear.M4
		}
		var que []item
		for _, n := range s.Nodes {
			que = append(que, item{n, sr, linear.Identity()})
		}
		for len(que) > 0 {
			it := que[0]
			que = que[1:]
			n := &f.Nodes[it.node]
			r := NewResource(n.Name)
			r.Local = nodeLocal(n)
			if n.Mesh != nil {
				r.Mesh = meshes[*n.Mesh]
				r.Material = meshMats[*n.Mesh]
			}
			i := c.addChild(it.parent, r)
			var world linear.M4
			world.Mul(&it.world, &r.Local)
			if x := n.Extensions; x != nil && x.KHRLightsPunctual != nil {
				c.importLight(f, x.KHRLightsPunctual.Light, &world)
			}
			for _, ch := range n.Children {
				que = append(que, item{ch, i, world})
			}
		}
	}
	c.log.Info("glTF imported",
		zap.String("name", name),
		zap.Int("resource", int(root)),
		zap.Int("materials", len(mats)),
		zap.Int("meshes", len(meshes)),
		zap.Int("nodes", len(f.Nodes)))
	return root, nil
}

// addChild inserts r under parent, which must be valid.
func (c *Context) addChild(parent sparse.Index, r Resource) sparse.Index {
	i, err := c.res.Insert(r, parent)
	if err != nil {
		panic("unexpected error: " + err.Error())
	}
	return i
}

// scenes returns the scenes of f. If f has none, every
// node without a parent is placed in a single scene.
func scenes(f *gltf.GLTF) []gltf.Scene {
	if len(f.Scenes) > 0 {
		return f.Scenes
	}
	child := make([]bool, len(f.Nodes))
	for _, n := range f.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var s gltf.Scene
	for i := range f.Nodes {
		if !child[i] {
			s.Nodes = append(s.Nodes, int64(i))
		}
	}
	return []gltf.Scene{s}
}

func (c *Context) importLight(f *gltf.GLTF, light int64, world *linear.M4) {
	l := &f.Extensions.KHRLightsPunctual.Lights[light]
	if l.Type != gltf.Lpoint {
		c.log.Debug("light ignored", zap.String("name", l.Name), zap.String("type", l.Type))
		return
	}
	p := PointLight{
		Name:      l.Name,
		Position:  world.Translation(),
		Color:     [3]float32{1, 1, 1},
		Intensity: 1,
		Range:     l.Range,
	}
	if l.Color != nil {
		p.Color = *l.Color
	}
	if l.Intensity != nil {
		p.Intensity = *l.Intensity
	}
	c.PointLights.Insert(p)
}

func convMaterial(m *gltf.Material) Material {
	mat := DefaultMaterial(m.Name)
	mat.DoubleSided = m.DoubleSided
	if m.EmissiveFactor != nil {
		mat.Emissive = *m.EmissiveFactor
	}
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			mat.BaseColor = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			mat.Metalness = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			mat.Roughness = *pbr.RoughnessFactor
		}
	}
	return mat
}

// nodeLocal returns the local transform of n.
// Both glTF and linear matrices are column-major.
func nodeLocal(n *gltf.Node) (m linear.M4) {
	if n.Matrix != nil {
		for i := range m {
			for j := range m[i] {
				m[i][j] = n.Matrix[i*4+j]
			}
		}
		return
	}
	var t, s linear.V3
	var q linear.Q
	s = linear.V3{1, 1, 1}
	q.I()
	if n.Translation != nil {
		t = *n.Translation
	}
	if n.Rotation != nil {
		r := n.Rotation
		q = linear.Q{V: linear.V3{r[0], r[1], r[2]}, R: r[3]}
	}
	if n.Scale != nil {
		s = *n.Scale
	}
	m.TRS(&t, &q, &s)
	return
}
