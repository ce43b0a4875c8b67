// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level=error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildDescription(t *testing.T) {
	for _, prop := range [...]string{"subtree", "scan"} {
		out, err := run("build", "--propagation", prop, "../../testdata/scene.yaml")
		require.NoError(t, err, out)
		assert.True(t, strings.HasPrefix(out, "# ../../testdata/scene.yaml: 10 nodes, 10 resources"), out)
		assert.Contains(t, out, "\nroot [0 0 0]\n")
		assert.Contains(t, out, "\n  stack.a [5 0 0]\n")
		assert.Contains(t, out, "\n    top [5 1 0]\n")
		assert.Contains(t, out, "wheel.l [6 0 1]\n")
	}
}

func TestBuildGLTF(t *testing.T) {
	out, err := run("build", "--config", "../../testdata/config.toml", "../../gltf/testdata/car.gltf")
	require.NoError(t, err, out)
	assert.Contains(t, out, "7 nodes, 7 resources, 2 materials, 2 meshes, 1 point lights")
	assert.Contains(t, out, "\n  car [0 0 0]\n")
	assert.Contains(t, out, "lamp [1 2 0]\n")
	assert.Contains(t, out, "ground [0 -1 0]\n")
}

func TestBuildInvalid(t *testing.T) {
	_, err := run("build", "../../testdata/missing.yaml")
	assert.Error(t, err)
	_, err = run("build", "--propagation", "sideways", "../../testdata/scene.yaml")
	assert.Error(t, err)
	_, err = run("build")
	assert.Error(t, err)
	_, err = run("build", "--config", "../../testdata/scene.json", "../../testdata/scene.yaml")
	assert.Error(t, err)
}
