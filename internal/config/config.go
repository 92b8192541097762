// Package config loads irkit.toml and batch fragment files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"irkit/internal/diag"
	"irkit/internal/snapshot"
	"irkit/internal/trace"
)

const FileName = "irkit.toml"

// Config mirrors irkit.toml. Zero values mean "use the default".
type Config struct {
	Output Output `toml:"output"`
	Trace  Trace  `toml:"trace"`
	Batch  Batch  `toml:"batch"`
}

type Output struct {
	Format string `toml:"format"` // text|json|yaml|msgpack
	Color  string `toml:"color"`  // auto|always|never
}

type Trace struct {
	Level  string `toml:"level"`  // off|error|phase|detail|debug
	Output string `toml:"output"` // file path, "-" for stderr
	Format string `toml:"format"` // auto|text|ndjson
	Mode   string `toml:"mode"`   // stream|ring|both
	Ring   int    `toml:"ring_size"`
}

type Batch struct {
	Jobs int `toml:"jobs"`
}

// ColorMode selects when ANSI styling is used.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func ParseColor(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "on":
		return ColorAlways, nil
	case "never", "off":
		return ColorNever, nil
	}
	return ColorAuto, diag.Invalidf(diag.IOConfigError, "invalid color mode %q (expected: auto|always|never)", s)
}

func Default() Config {
	return Config{
		Output: Output{Format: "text", Color: "auto"},
		Trace:  Trace{Level: "off", Output: "-", Format: "auto", Mode: "stream"},
	}
}

// Find walks up from startDir to locate irkit.toml.
func Find(startDir string) (path string, ok bool, err error) {
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

// Load reads path over Default. Unknown keys are rejected so typos surface.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, diag.Invalidf(diag.IOConfigError, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest irkit.toml above startDir, or Default when
// there is none.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func (c Config) Validate() error {
	if _, err := snapshot.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if _, err := ParseColor(c.Output.Color); err != nil {
		return err
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return diag.Invalidf(diag.IOConfigError, "%v", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return diag.Invalidf(diag.IOConfigError, "%v", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return diag.Invalidf(diag.IOConfigError, "%v", err)
	}
	if c.Trace.Ring < 0 {
		return diag.Invalidf(diag.IOConfigError, "trace.ring_size must not be negative, got %d", c.Trace.Ring)
	}
	if c.Batch.Jobs < 0 {
		return diag.Invalidf(diag.IOConfigError, "batch.jobs must not be negative, got %d", c.Batch.Jobs)
	}
	return nil
}

// TraceConfig converts the [trace] section for trace.New.
func (c Config) TraceConfig() (trace.Config, error) {
	level, err := trace.ParseLevel(c.Trace.Level)
	if err != nil {
		return trace.Config{}, err
	}
	format, err := trace.ParseFormat(c.Trace.Format)
	if err != nil {
		return trace.Config{}, err
	}
	mode, err := trace.ParseMode(c.Trace.Mode)
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: c.Trace.Output,
		RingSize:   c.Trace.Ring,
	}, nil
}
