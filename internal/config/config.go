// Package config loads gcscan settings from a gcscan.toml file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/leftmike/gcscan/preprocess"
)

const FileName = "gcscan.toml"

type Config struct {
	// Precision is the grid size, in mm, used to deduplicate extrusion points.
	Precision float64 `toml:"precision"`
	// OutputSuffix is added to the stem of processed files; empty rewrites in place.
	OutputSuffix string `toml:"output_suffix"`
	// Hull is the polygon written for each object: bbox or convex.
	Hull string    `toml:"hull"`
	Jobs int       `toml:"jobs"`
	Log  LogConfig `toml:"log"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func Default() Config {
	return Config{
		Precision: 1.0,
		Hull:      preprocess.HullBoundingBox.String(),
		Jobs:      runtime.NumCPU(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func (cfg Config) Validate() error {
	if !(cfg.Precision > 0) || math.IsInf(cfg.Precision, 1) {
		return fmt.Errorf("precision must be positive: %v", cfg.Precision)
	}
	if _, err := preprocess.ParseHullMode(cfg.Hull); err != nil {
		return err
	}
	if cfg.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1: %d", cfg.Jobs)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("unknown log format: %q", cfg.Log.Format)
	}
	return nil
}

// Load reads path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find looks for gcscan.toml in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve loads path if it is set, else the nearest gcscan.toml above startDir,
// else the defaults.
func Resolve(path, startDir string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	found, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(found)
}
