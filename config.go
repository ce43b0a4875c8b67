// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/gviegas/scenetree/node"
)

const dflEpsilon = 1e-4

// Config is used to configure a Context.
type Config struct {
	// How world transforms are updated when a local
	// transform changes.
	//
	// Default is node.PropagateSubtree.
	Propagation node.Propagation `toml:"propagation" yaml:"propagation"`

	// The tolerance used by Context.Verify.
	//
	// Default is 1e-4.
	Epsilon float32 `toml:"epsilon" yaml:"epsilon"`

	// The minimum level of log messages.
	// Only meaningful for loggers built from the
	// configuration.
	//
	// Default is zapcore.InfoLevel.
	LogLevel zapcore.Level `toml:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Propagation: node.PropagateSubtree,
		Epsilon:     dflEpsilon,
		LogLevel:    zapcore.InfoLevel,
	}
}

// LoadConfig reads the configuration file at path.
// The format is chosen by extension: ".toml" for TOML,
// ".yaml" or ".yml" for YAML. Omitted settings keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := decodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Epsilon <= 0 {
		return Config{}, fmt.Errorf("scene: invalid epsilon %v in %s", cfg.Epsilon, path)
	}
	return cfg, nil
}

// decodeFile decodes the TOML or YAML file at path
// into v.
func decodeFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(b, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, v)
	default:
		return fmt.Errorf("scene: unknown file format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("scene: %s: %w", path, err)
	}
	return nil
}
