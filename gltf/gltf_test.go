// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func load(t *testing.T) *GLTF {
	t.Helper()
	file, err := os.Open("testdata/car.gltf")
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	gltf, err := Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	return gltf
}

func TestGLTF(t *testing.T) {
	gltf := load(t)
	if err := gltf.Check(); err != nil {
		t.Fatalf("gltf.Check:\nhave %v\nwant nil", err)
	}
	if n := len(gltf.Nodes); n != 5 {
		t.Fatalf("len(gltf.Nodes):\nhave %d\nwant 5", n)
	}
	if s := gltf.Scene; s == nil || *s != 0 {
		t.Fatalf("gltf.Scene:\nhave %v\nwant 0", s)
	}
	car := gltf.Nodes[0]
	if diff := cmp.Diff([]int64{1, 2, 3}, car.Children); diff != "" {
		t.Fatalf("gltf.Nodes[0].Children (-want +have):\n%s", diff)
	}
	if car.Translation == nil || *car.Translation != [3]float32{1, 0, 0} {
		t.Fatalf("gltf.Nodes[0].Translation:\nhave %v\nwant [1 0 0]", car.Translation)
	}
	if m := gltf.Nodes[4].Matrix; m == nil || m[13] != -1 {
		t.Fatalf("gltf.Nodes[4].Matrix:\nhave %v", m)
	}
	lamp := gltf.Nodes[3]
	if lamp.Extensions == nil || lamp.Extensions.KHRLightsPunctual == nil || lamp.Extensions.KHRLightsPunctual.Light != 0 {
		t.Fatalf("gltf.Nodes[3].Extensions:\nhave %+v", lamp.Extensions)
	}
	l := gltf.Extensions.KHRLightsPunctual.Lights[0]
	if l.Type != Lpoint || l.Intensity == nil || *l.Intensity != 20 {
		t.Fatalf("light:\nhave %+v", l)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, gltf); err != nil {
		t.Fatal(err)
	}
	dec, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(gltf, dec); diff != "" {
		t.Fatalf("Decode(Encode(gltf)) (-want +have):\n%s", diff)
	}
}

func TestGLB(t *testing.T) {
	gltf := load(t)
	var buf bytes.Buffer
	if err := EncodeGLB(&buf, gltf); err != nil {
		t.Fatal(err)
	}
	if buf.Len()%4 != 0 {
		t.Fatalf("EncodeGLB: length %d is not aligned", buf.Len())
	}
	if !IsGLB(buf.Bytes()) {
		t.Fatal("IsGLB(glb):\nhave false\nwant true")
	}
	if IsGLB([]byte(`{"asset":{"version":"2.0"}}`)) {
		t.Fatal("IsGLB(json):\nhave true\nwant false")
	}
	dec, err := DecodeGLB(&buf)
	if err != nil {
		t.Fatalf("DecodeGLB:\nhave %v\nwant nil", err)
	}
	if diff := cmp.Diff(gltf, dec); diff != "" {
		t.Fatalf("DecodeGLB(EncodeGLB(gltf)) (-want +have):\n%s", diff)
	}
	if _, err := DecodeGLB(bytes.NewReader([]byte(`{"asset":{"version":"2.0"}}`))); err == nil {
		t.Fatal("DecodeGLB(json):\nhave nil\nwant error")
	}
}

func TestCheck(t *testing.T) {
	idx := func(i int64) *int64 { return &i }
	for _, x := range [...]struct {
		name string
		mut  func(*GLTF)
	}{
		{"version", func(f *GLTF) { f.Asset.Version = "" }},
		{"scene", func(f *GLTF) { f.Scene = idx(1) }},
		{"mesh", func(f *GLTF) { f.Nodes[1].Mesh = idx(2) }},
		{"material", func(f *GLTF) { f.Meshes[0].Primitives[0].Material = idx(-1) }},
		{"primitives", func(f *GLTF) { f.Meshes[1].Primitives = nil }},
		{"child", func(f *GLTF) { f.Nodes[1].Children = []int64{5} }},
		{"two parents", func(f *GLTF) { f.Nodes[4].Children = []int64{1} }},
		{"self", func(f *GLTF) { f.Nodes[4].Children = []int64{4} }},
		{"cycle", func(f *GLTF) { f.Nodes[3].Children = []int64{0} }},
		{"scene node", func(f *GLTF) { f.Scenes[0].Nodes = append(f.Scenes[0].Nodes, 2) }},
		{"scene dup", func(f *GLTF) { f.Scenes[0].Nodes = []int64{0, 0} }},
		{"light", func(f *GLTF) { f.Nodes[3].Extensions.KHRLightsPunctual.Light = 1 }},
	} {
		gltf := load(t)
		x.mut(gltf)
		if err := gltf.Check(); err == nil {
			t.Fatalf("gltf.Check (%s):\nhave nil\nwant error", x.name)
		}
	}
}
