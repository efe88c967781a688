// Package config holds runtime configuration for a conversion batch: defaults,
// optional YAML overrides, and validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPatterns are the source filename globs matched during a scan.
// Matching is case-sensitive.
var DefaultPatterns = []string{"*.jpg", "*.jpeg", "*.png", "*.gif"}

const (
	DefaultQuality   = 40
	DefaultOutputExt = "webp"
)

var (
	ErrInvalidRoot      = errors.New("invalid scan root")
	ErrInvalidPattern   = errors.New("invalid scan pattern")
	ErrInvalidOutputExt = errors.New("invalid output extension")
)

// Config holds every setting a batch needs. Build it with DefaultConfig or
// Load, then apply CLI overrides before calling Validate.
type Config struct {
	Root      string   `yaml:"root"`
	Quality   int      `yaml:"quality"` // Passed through to the encoder unchecked.
	Patterns  []string `yaml:"patterns"`
	OutputExt string   `yaml:"output_ext"` // Output is "<source>.<ext>".
	Workers   int      `yaml:"workers"`    // <= 0 means runtime.NumCPU().

	Optimize      bool `yaml:"optimize"`       // Slowest, smallest encoder method.
	AutoOrient    bool `yaml:"auto_orient"`    // Apply EXIF orientation before encoding.
	IncludeHidden bool `yaml:"include_hidden"` // Match dot-files and descend dot-dirs.
	FailOnError   bool `yaml:"fail_on_error"`  // Non-zero exit when any job fails.

	Verbose bool `yaml:"verbose"`
	TUI     bool `yaml:"tui"`
}

// DefaultConfig returns the baseline settings. Root defaults to the current
// working directory.
func DefaultConfig() Config {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return Config{
		Root:       root,
		Quality:    DefaultQuality,
		Patterns:   append([]string(nil), DefaultPatterns...),
		OutputExt:  DefaultOutputExt,
		Workers:    runtime.NumCPU(),
		Optimize:   true,
		AutoOrient: true,
	}
}

// Load returns DefaultConfig overlaid with the YAML file at path. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WorkerCount resolves Workers to a usable pool size.
func (c Config) WorkerCount() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Validate checks the settings that would otherwise fail late. Quality is left
// to the encoder.
func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}
	if _, err := os.Stat(c.Root); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}

	if len(c.Patterns) == 0 {
		return fmt.Errorf("%w: no patterns configured", ErrInvalidPattern)
	}
	for _, p := range c.Patterns {
		if p == "" || strings.ContainsRune(p, '/') || strings.ContainsRune(p, filepath.Separator) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidPattern, p, err)
		}
	}

	ext := c.OutputExt
	if ext == "" || strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidOutputExt, ext)
	}
	return nil
}
