// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package gltf implements glTF 2.0 serialization.
//
// Only the objects that describe a scene's hierarchy
// are represented. Buffers, accessors and other binary
// data are ignored when decoding.
package gltf

import (
	"encoding/json"
	"io"
)

// Root glTF object.
type GLTF struct {
	ExtensionsUsed     []string `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string `json:"extensionsRequired,omitempty"`
	Asset              struct {
		Copyright  string `json:"copyright,omitempty"`
		Generator  string `json:"generator,omitempty"`
		Version    string `json:"version"`
		MinVersion string `json:"minVersion,omitempty"`
		Extensions any    `json:"extensions,omitempty"`
		Extras     any    `json:"extras,omitempty"`
	} `json:"asset"`
	Materials  []Material  `json:"materials,omitempty"`
	Meshes     []Mesh      `json:"meshes,omitempty"`
	Nodes      []Node      `json:"nodes,omitempty"`
	Scene      *int64      `json:"scene,omitempty"`
	Scenes     []Scene     `json:"scenes,omitempty"`
	Extensions *Extensions `json:"extensions,omitempty"`
	Extras     any         `json:"extras,omitempty"`
}

// glTF.extensions.
type Extensions struct {
	KHRLightsPunctual *KHRLightsPunctual `json:"KHR_lights_punctual,omitempty"`
}

// glTF.materials' element.
type Material struct {
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	EmissiveFactor       *[3]float32           `json:"emissiveFactor,omitempty"` // Default is [0, 0, 0].
	AlphaMode            string                `json:"alphaMode,omitempty"`      // Default is "OPAQUE".
	AlphaCutoff          *float32              `json:"alphaCutoff,omitempty"`    // Default is 0.5.
	DoubleSided          bool                  `json:"doubleSided,omitempty"`    // Default is false.
	Name                 string                `json:"name,omitempty"`
	Extensions           any                   `json:"extensions,omitempty"`
	Extras               any                   `json:"extras,omitempty"`
}

// material.pbrMetallicRoughness.
type PBRMetallicRoughness struct {
	BaseColorFactor *[4]float32 `json:"baseColorFactor,omitempty"` // Default is [1, 1, 1, 1].
	MetallicFactor  *float32    `json:"metallicFactor,omitempty"`  // Default is 1.
	RoughnessFactor *float32    `json:"roughnessFactor,omitempty"` // Default is 1.
	Extensions      any         `json:"extensions,omitempty"`
	Extras          any         `json:"extras,omitempty"`
}

// material.alphaMode values.
const (
	OPAQUE = "OPAQUE"
	MASK   = "MASK"
	BLEND  = "BLEND"
)

// glTF.meshes' element.
type Mesh struct {
	Primitives []Primitive `json:"primitives"`
	Weights    []float32   `json:"weights,omitempty"`
	Name       string      `json:"name,omitempty"`
	Extensions any         `json:"extensions,omitempty"`
	Extras     any         `json:"extras,omitempty"`
}

// mesh.primitives' element.
type Primitive struct {
	Attributes map[string]int64 `json:"attributes"`
	Indices    *int64           `json:"indices,omitempty"`
	Material   *int64           `json:"material,omitempty"`
	Mode       *int64           `json:"mode,omitempty"` // Default is 4.
	Extensions any              `json:"extensions,omitempty"`
	Extras     any              `json:"extras,omitempty"`
}

// mesh.primitive.mode values.
const (
	POINTS = iota
	LINES
	LINE_LOOP
	LINE_STRIP
	TRIANGLES
	TRIANGLE_STRIP
	TRIANGLE_FAN
)

// glTF.nodes' element.
type Node struct {
	Children    []int64         `json:"children,omitempty"`
	Matrix      *[16]float32    `json:"matrix,omitempty"` // Default is identity.
	Mesh        *int64          `json:"mesh,omitempty"`
	Rotation    *[4]float32     `json:"rotation,omitempty"`    // Default is [0, 0, 0, 1].
	Scale       *[3]float32     `json:"scale,omitempty"`       // Default is [1, 1, 1].
	Translation *[3]float32     `json:"translation,omitempty"` // Default is [0, 0, 0].
	Name        string          `json:"name,omitempty"`
	Extensions  *NodeExtensions `json:"extensions,omitempty"`
	Extras      any             `json:"extras,omitempty"`
}

// node.extensions.
type NodeExtensions struct {
	KHRLightsPunctual *NodeLight `json:"KHR_lights_punctual,omitempty"`
}

// node.extensions.KHR_lights_punctual.
type NodeLight struct {
	Light      int64 `json:"light"`
	Extensions any   `json:"extensions,omitempty"`
	Extras     any   `json:"extras,omitempty"`
}

// glTF.scenes' element.
type Scene struct {
	Nodes      []int64 `json:"nodes,omitempty"`
	Name       string  `json:"name,omitempty"`
	Extensions any     `json:"extensions,omitempty"`
	Extras     any     `json:"extras,omitempty"`
}

// glTF.extensions.KHR_lights_punctual.
type KHRLightsPunctual struct {
	Lights     []Light `json:"lights"`
	Extensions any     `json:"extensions,omitempty"`
	Extras     any     `json:"extras,omitempty"`
}

// KHR_lights_punctual.lights' element.
type Light struct {
	Color      *[3]float32 `json:"color,omitempty"`     // Default is [1, 1, 1].
	Intensity  *float32    `json:"intensity,omitempty"` // Default is 1.
	Range      float32     `json:"range,omitempty"`     // 0 for infinite range.
	Type       string      `json:"type"`
	Name       string      `json:"name,omitempty"`
	Extensions any         `json:"extensions,omitempty"`
	Extras     any         `json:"extras,omitempty"`
}

// KHR_lights_punctual.light.type values.
const (
	Ldirectional = "directional"
	Lpoint       = "point"
	Lspot        = "spot"
)

// Encode encodes gltf into w.
func Encode(w io.Writer, gltf *GLTF) error {
	enc := json.NewEncoder(w)
	err := enc.Encode(gltf)
	if err != nil {
		return err
	}
	return nil
}

// Decode decodes r into a new GLTF instance.
// Unknown members are ignored.
func Decode(r io.Reader) (*GLTF, error) {
	var gltf GLTF
	dec := json.NewDecoder(r)
	err := dec.Decode(&gltf)
	if err != nil {
		return nil, err
	}
	return &gltf, nil
}
