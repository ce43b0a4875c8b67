// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Scenetree builds scenes from description or glTF files
// and prints the resulting node trees.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gviegas/scenetree"
	"github.com/gviegas/scenetree/node"
)

// options holds the persistent command line flags.
type options struct {
	config      string
	logLevel    zapcore.Level
	propagation node.Propagation
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:          "scenetree",
		Short:        "Build scene graphs from resource templates",
		SilenceUsage: true,
	}
	f := root.PersistentFlags()
	f.StringVar(&opts.config, "config", "", "configuration file (TOML or YAML)")
	f.Var(levelValue{&opts.logLevel}, "log-level", "minimum log level (debug, info, warn, error)")
	f.Var(&opts.propagation, "propagation", "world transform propagation (subtree, scan)")
	root.AddCommand(newBuildCmd(&opts))
	return root
}

// load returns the configuration selected by the flags.
// Flags override settings from the configuration file.
func (o *options) load(cmd *cobra.Command) (scene.Config, error) {
	cfg := scene.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = scene.LoadConfig(o.config); err != nil {
			return cfg, err
		}
	}
	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if f.Changed("propagation") {
		cfg.Propagation = o.propagation
	}
	return cfg, nil
}

// levelValue adapts zapcore.Level to pflag.Value.
type levelValue struct{ l *zapcore.Level }

func (v levelValue) String() string {
	if v.l == nil {
		return ""
	}
	return v.l.String()
}

func (v levelValue) Set(s string) error { return v.l.Set(s) }

func (levelValue) Type() string { return "level" }

// newLogger creates a console logger writing to stderr.
func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("scenetree: logger: %w", err)
	}
	return log, nil
}
