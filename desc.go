// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gviegas/scenetree/linear"
	"github.com/gviegas/scenetree/sparse"
)

// Description describes the contents of a Context.
// Entries refer to each other by name.
type Description struct {
	Materials   []Material     `toml:"materials" yaml:"materials"`
	Meshes      []Mesh         `toml:"meshes" yaml:"meshes"`
	PointLights []PointLight   `toml:"point_lights" yaml:"point_lights"`
	Cubemaps    []Cubemap      `toml:"cubemaps" yaml:"cubemaps"`
	Models      []ModelDesc    `toml:"models" yaml:"models"`
	Resources   []ResourceDesc `toml:"resources" yaml:"resources"`
	Instances   []InstanceDesc `toml:"instances" yaml:"instances"`
}

// ModelDesc describes a glTF file to import.
// The import root is named Name.
type ModelDesc struct {
	Name string `toml:"name" yaml:"name"`
	Path string `toml:"path" yaml:"path"`
}

// ResourceDesc describes a resource template.
// Mesh and Material name entries of the Context's lists
// and may be empty.
type ResourceDesc struct {
	Name      string         `toml:"name" yaml:"name"`
	Mesh      string         `toml:"mesh" yaml:"mesh"`
	Material  string         `toml:"material" yaml:"material"`
	Transform Transform      `toml:"transform" yaml:"transform"`
	Children  []ResourceDesc `toml:"children" yaml:"children"`
}

// InstanceDesc describes a node tree to create from the
// top-level resource named Resource.
// Parent names an existing node; empty means the root.
type InstanceDesc struct {
	Name      string     `toml:"name" yaml:"name"`
	Resource  string     `toml:"resource" yaml:"resource"`
	Parent    string     `toml:"parent" yaml:"parent"`
	Transform *Transform `toml:"transform" yaml:"transform"`
}

// Transform is a translation, rotation and scale.
type Transform struct {
	Translation linear.V3 `toml:"translation" yaml:"translation"`
	// Rotation of Angle radians about Axis.
	// A zero Axis means no rotation.
	Axis  linear.V3 `toml:"axis" yaml:"axis"`
	Angle float32   `toml:"angle" yaml:"angle"`
	// A zero Scale means [1, 1, 1].
	Scale linear.V3 `toml:"scale" yaml:"scale"`
}

// Matrix returns the transform as a matrix.
func (t *Transform) Matrix() (m linear.M4) {
	var q linear.Q
	q.I()
	if t.Axis != (linear.V3{}) && t.Angle != 0 {
		var axis linear.V3
		axis.Norm(&t.Axis)
		q.Rotate(t.Angle, &axis)
	}
	s := t.Scale
	if s == (linear.V3{}) {
		s = linear.V3{1, 1, 1}
	}
	m.TRS(&t.Translation, &q, &s)
	return
}

// LoadDescription reads the description file at path.
// The format is chosen by extension as in LoadConfig.
// Relative model paths are made relative to the
// directory of path.
func LoadDescription(path string) (*Description, error) {
	var d Description
	if err := decodeFile(path, &d); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for i := range d.Models {
		if p := d.Models[i].Path; p != "" && !filepath.IsAbs(p) {
			d.Models[i].Path = filepath.Join(dir, p)
		}
	}
	return &d, nil
}

// Build adds the contents of d to c.
// Lists are extended first, then models are imported,
// then resource templates are created and finally the
// instances are made, in order.
// Each entry is either added in full or not at all;
// Build stops at the first entry that fails and returns
// the error. Entries added before that remain.
func (c *Context) Build(d *Description) error {
	for _, m := range d.Materials {
		c.Materials.Insert(m)
	}
	for _, m := range d.Meshes {
		c.Meshes.Insert(m)
	}
	for _, l := range d.PointLights {
		c.PointLights.Insert(l)
	}
	for _, x := range d.Cubemaps {
		c.Cubemaps.Insert(x)
	}
	for _, m := range d.Models {
		if err := c.importFile(m.Name, m.Path); err != nil {
			return err
		}
	}
	for i := range d.Resources {
		if err := c.buildResource(&d.Resources[i]); err != nil {
			return err
		}
	}
	for i := range d.Instances {
		if err := c.buildInstance(&d.Instances[i]); err != nil {
			return err
		}
	}
	s := c.Stats()
	c.log.Info("description built",
		zap.Int("materials", s.Materials),
		zap.Int("meshes", s.Meshes),
		zap.Int("resources", s.Resources),
		zap.Int("nodes", s.Nodes))
	return nil
}

func (c *Context) importFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = c.ImportGLTF(name, f)
	return err
}

// resolve returns the list indices named by mesh and mat.
func (c *Context) resolve(mesh, mat string) (sparse.Index, sparse.Index, error) {
	mi, ti := sparse.Nil, sparse.Nil
	if mesh != "" {
		var ok bool
		if mi, ok = c.FindMesh(mesh); !ok {
			return mi, ti, fmt.Errorf("%w: mesh %q", ErrNotFound, mesh)
		}
	}
	if mat != "" {
		var ok bool
		if ti, ok = c.FindMaterial(mat); !ok {
			return mi, ti, fmt.Errorf("%w: material %q", ErrNotFound, mat)
		}
	}
	return mi, ti, nil
}

// buildResource creates the resource tree described by
// rd under the library root. Names are resolved before
// anything is created.
func (c *Context) buildResource(rd *ResourceDesc) error {
	if err := c.checkResource(rd); err != nil {
		return err
	}
	i := c.addResource(c.lib, rd)
	c.log.Debug("resource built", zap.Int("resource", int(i)), zap.String("name", rd.Name))
	return nil
}

func (c *Context) checkResource(rd *ResourceDesc) error {
	if _, _, err := c.resolve(rd.Mesh, rd.Material); err != nil {
		return fmt.Errorf("resource %q: %w", rd.Name, err)
	}
	for i := range rd.Children {
		if err := c.checkResource(&rd.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) addResource(parent sparse.Index, rd *ResourceDesc) sparse.Index {
	mesh, mat, _ := c.resolve(rd.Mesh, rd.Material)
	i, err := c.res.Insert(Resource{
		Name:     rd.Name,
		Mesh:     mesh,
		Material: mat,
		Local:    rd.Transform.Matrix(),
	}, parent)
	if err != nil {
		panic("unexpected error: " + err.Error())
	}
	for j := range rd.Children {
		c.addResource(i, &rd.Children[j])
	}
	return i
}

// buildInstance makes the nodes described by in.
func (c *Context) buildInstance(in *InstanceDesc) error {
	res, ok := c.FindResource(in.Resource)
	if !ok {
		return fmt.Errorf("%w: resource %q", ErrNotFound, in.Resource)
	}
	parent := c.nodes.Root()
	if in.Parent != "" {
		if parent, ok = c.nodes.Find(in.Parent); !ok {
			return fmt.Errorf("%w: node %q", ErrNotFound, in.Parent)
		}
	}
	n, err := c.MakeNode(parent, res)
	if err != nil {
		return fmt.Errorf("instance %q: %w", in.Name, err)
	}
	if in.Name != "" {
		c.nodes.SetName(n, in.Name)
	}
	if in.Transform != nil {
		m := in.Transform.Matrix()
		c.nodes.SetLocal(n, &m)
	}
	return nil
}
