// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"github.com/gviegas/scenetree/linear"
)

// Material describes surface properties.
type Material struct {
	Name        string     `toml:"name" yaml:"name"`
	BaseColor   [4]float32 `toml:"base_color" yaml:"base_color"`
	Metalness   float32    `toml:"metalness" yaml:"metalness"`
	Roughness   float32    `toml:"roughness" yaml:"roughness"`
	Emissive    [3]float32 `toml:"emissive" yaml:"emissive"`
	DoubleSided bool       `toml:"double_sided" yaml:"double_sided"`
}

// DefaultMaterial returns an opaque white material.
func DefaultMaterial(name string) Material {
	return Material{
		Name:      name,
		BaseColor: [4]float32{1, 1, 1, 1},
		Metalness: 1,
		Roughness: 1,
	}
}

// Mesh describes geometry.
// Vertex data is not stored.
type Mesh struct {
	Name       string `toml:"name" yaml:"name"`
	Primitives int    `toml:"primitives" yaml:"primitives"`
}

// PointLight is an omnidirectional light source.
type PointLight struct {
	Name      string     `toml:"name" yaml:"name"`
	Position  linear.V3  `toml:"position" yaml:"position"`
	Color     [3]float32 `toml:"color" yaml:"color"`
	Intensity float32    `toml:"intensity" yaml:"intensity"`
	// 0 for infinite range.
	Range float32 `toml:"range" yaml:"range"`
}

// Cubemap is an environment map.
type Cubemap struct {
	Name string `toml:"name" yaml:"name"`
	// Image paths in +X, -X, +Y, -Y, +Z, -Z order.
	Faces [6]string `toml:"faces" yaml:"faces"`
}
