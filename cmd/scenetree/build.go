// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gviegas/scenetree"
	"github.com/gviegas/scenetree/node"
)

func newBuildCmd(opts *options) *cobra.Command {
	var watchFile bool
	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Build a scene and print its node tree",
		Long: `Build reads a scene description (.yaml, .yml or .toml) or a glTF
model (.gltf or .glb), instantiates it under the root node and prints
the node tree with world translations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()
			path := args[0]
			rebuild := func() error { return build(cmd.OutOrStdout(), path, &cfg, log) }
			err = rebuild()
			if !watchFile {
				return err
			}
			if err != nil {
				log.Error("build failed", zap.Error(err))
			}
			return watch(cmd.Context(), path, log, rebuild)
		},
	}
	cmd.Flags().BoolVar(&watchFile, "watch", false, "rebuild whenever the file changes")
	return cmd
}

// build creates a new Context from the file at path and
// prints its node tree to w.
func build(w io.Writer, path string, cfg *scene.Config, log *zap.Logger) error {
	c := scene.New(cfg, scene.WithLogger(log))
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		res, err := c.ImportGLTF(name, f)
		if err != nil {
			return err
		}
		if _, err := c.MakeNode(c.Nodes().Root(), res); err != nil {
			return err
		}
	default:
		d, err := scene.LoadDescription(path)
		if err != nil {
			return err
		}
		if err := c.Build(d); err != nil {
			return err
		}
	}
	if err := c.Verify(); err != nil {
		return err
	}
	s := c.Stats()
	fmt.Fprintf(w, "# %s: %d nodes, %d resources, %d materials, %d meshes, %d point lights, %d cubemaps\n",
		path, s.Nodes, s.Resources, s.Materials, s.Meshes, s.PointLights, s.Cubemaps)
	printTree(w, c.Nodes(), c.Nodes().Root(), 0)
	return nil
}

func printTree(w io.Writer, g *node.Graph, n node.Node, depth int) {
	d, err := g.Get(n)
	if err != nil {
		return
	}
	t := d.World.Translation()
	fmt.Fprintf(w, "%s%s [%g %g %g]\n", strings.Repeat("  ", depth), d.Name, t[0], t[1], t[2])
	for ch := range g.Children(n) {
		printTree(w, g, ch, depth+1)
	}
}

// watch calls rebuild whenever the file at path is
// written or replaced, until ctx is done.
func watch(ctx context.Context, path string, log *zap.Logger, rebuild func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Editors often replace files instead of writing
	// them, so the directory is watched.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	path = filepath.Clean(path)
	log.Info("watching", zap.String("file", path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			log.Debug("file changed", zap.Stringer("op", ev.Op))
			if err := rebuild(); err != nil {
				log.Error("build failed", zap.Error(err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}
