// Package config holds the knobs a batch run or CLI tool needs beyond
// what a single file's own Global section declares: where to read and
// write, how many workers to run, and the Open-Question policy defaults
// package model.Policy otherwise hardcodes.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable paths and conversion settings for a
// batch or watch run.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Conversion settings
	TargetUnitFlag int     `json:"target_unit_flag"` // 0 = leave file units unchanged
	TargetUnitName string  `json:"target_unit_name"`
	MinResolution  float64 `json:"min_resolution_override"` // 0 = keep each file's own

	// PermissiveInterleave is the config-file value for the Composite
	// Curve (102) consecutive-Point-member rule; Flags has no field for
	// it, and PermissiveInterleaveOrDefault returns it, permissive when
	// unset. Nothing in this module copies it into model.Policy.
	PermissiveInterleave *bool `json:"permissive_interleave,omitempty"`

	Workers int `json:"workers"`
}

// Load reads a JSON config file and returns Config. Fields not set in
// the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir  string
	OutputDir string
	Workers   int
}

// Resolve fills in any empty fields with defaults. CLI flags take
// priority over both the config file and the built-in defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// PermissiveInterleaveOrDefault returns the configured value, or true
// (package model's own default) if the config left it unset.
func (c *Config) PermissiveInterleaveOrDefault() bool {
	if c.PermissiveInterleave == nil {
		return true
	}
	return *c.PermissiveInterleave
}
