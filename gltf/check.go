// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"errors"
	"fmt"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

func inRange(i, n int) bool { return i >= 0 && i < n }

// Check checks that f is valid glTF.
// It validates every index that the scene hierarchy
// depends on and that nodes form a forest: no node has
// more than one parent and no node is its own ancestor.
func (f *GLTF) Check() error {
	if f.Asset.Version == "" {
		return newErr("missing GLTF.Asset.Version")
	}
	if s := f.Scene; s != nil && !inRange(int(*s), len(f.Scenes)) {
		return newErr("invalid GLTF.Scene index")
	}
	for i := range f.Meshes {
		if err := f.Meshes[i].Check(f); err != nil {
			return err
		}
	}
	if err := f.checkNodes(); err != nil {
		return err
	}
	for i := range f.Scenes {
		if err := f.Scenes[i].Check(f); err != nil {
			return err
		}
	}
	return nil
}

// Check checks that m is valid glTF.meshes' element.
func (m *Mesh) Check(gltf *GLTF) error {
	if len(m.Primitives) == 0 {
		return newErr("empty Mesh.Primitives")
	}
	for _, p := range m.Primitives {
		if p.Material != nil && !inRange(int(*p.Material), len(gltf.Materials)) {
			return newErr("invalid Primitive.Material index")
		}
		if p.Mode != nil && (*p.Mode < POINTS || *p.Mode > TRIANGLE_FAN) {
			return newErr("invalid Primitive.Mode value")
		}
	}
	return nil
}

// Check checks that s is valid glTF.scenes' element.
// It must be called after the nodes were checked.
func (s *Scene) Check(gltf *GLTF) error {
	seen := make(map[int64]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if !inRange(int(n), len(gltf.Nodes)) {
			return newErr("invalid Scene.Nodes index")
		}
		if seen[n] {
			return newErr("duplicate Scene.Nodes index")
		}
		seen[n] = true
	}
	for i := range gltf.Nodes {
		for _, c := range gltf.Nodes[i].Children {
			if seen[c] {
				return fmt.Errorf("gltf: Scene.Nodes index %d is not a root node", c)
			}
		}
	}
	return nil
}

func (f *GLTF) checkNodes() error {
	var lights int
	if x := f.Extensions; x != nil && x.KHRLightsPunctual != nil {
		lights = len(x.KHRLightsPunctual.Lights)
	}
	parent := make([]int64, len(f.Nodes))
	for i := range parent {
		parent[i] = -1
	}
	for i, n := range f.Nodes {
		if n.Mesh != nil && !inRange(int(*n.Mesh), len(f.Meshes)) {
			return newErr("invalid Node.Mesh index")
		}
		if x := n.Extensions; x != nil && x.KHRLightsPunctual != nil {
			if !inRange(int(x.KHRLightsPunctual.Light), lights) {
				return newErr("invalid Node.Extensions.KHR_lights_punctual.Light index")
			}
		}
		for _, c := range n.Children {
			switch {
			case !inRange(int(c), len(f.Nodes)):
				return newErr("invalid Node.Children index")
			case parent[c] != -1:
				return fmt.Errorf("gltf: node %d has more than one parent", c)
			}
			parent[c] = int64(i)
		}
	}
	// With a single parent per node, a cycle exists
	// iff following parents never reaches a root.
	for i := range parent {
		p := parent[i]
		for range len(parent) {
			if p == -1 {
				break
			}
			p = parent[p]
		}
		if p != -1 {
			return fmt.Errorf("gltf: node %d has cyclic ancestry", i)
		}
	}
	return nil
}
