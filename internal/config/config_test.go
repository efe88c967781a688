package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	wd, _ := os.Getwd()

	if cfg.Root != wd {
		t.Errorf("Root = %q, want cwd %q", cfg.Root, wd)
	}
	if cfg.Quality != 40 {
		t.Errorf("Quality = %d, want 40", cfg.Quality)
	}
	if cfg.OutputExt != "webp" {
		t.Errorf("OutputExt = %q, want webp", cfg.OutputExt)
	}
	if len(cfg.Patterns) != 4 {
		t.Errorf("Patterns = %v", cfg.Patterns)
	}
	if !cfg.Optimize || !cfg.AutoOrient {
		t.Error("Optimize and AutoOrient should default to true")
	}
	if cfg.IncludeHidden || cfg.FailOnError || cfg.TUI {
		t.Error("opt-in flags should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultPatternsNotShared(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Patterns[0] = "*.bmp"
	if DefaultPatterns[0] != "*.jpg" {
		t.Fatal("DefaultConfig must copy DefaultPatterns")
	}
}

func TestLoad_YAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webpify.yaml")
	body := "root: " + dir + "\nquality: 75\npatterns: [\"*.png\"]\nworkers: 3\noptimize: false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != dir || cfg.Quality != 75 || cfg.Workers != 3 || cfg.Optimize {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.Patterns) != 1 || cfg.Patterns[0] != "*.png" {
		t.Errorf("Patterns = %v", cfg.Patterns)
	}
	if cfg.OutputExt != "webp" || !cfg.AutoOrient {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestLoad_EmptyPathAndEmptyFile(t *testing.T) {
	if _, err := Load(""); err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}

	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(empty): %v", err)
	}
	if cfg.Quality != DefaultQuality {
		t.Errorf("Quality = %d", cfg.Quality)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("qualty: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"missing root", func(c *Config) { c.Root = filepath.Join(dir, "missing") }, ErrInvalidRoot},
		{"empty root", func(c *Config) { c.Root = "" }, ErrInvalidRoot},
		{"no patterns", func(c *Config) { c.Patterns = nil }, ErrInvalidPattern},
		{"bad glob", func(c *Config) { c.Patterns = []string{"[.png"} }, ErrInvalidPattern},
		{"pattern with dir", func(c *Config) { c.Patterns = []string{"sub/*.png"} }, ErrInvalidPattern},
		{"empty ext", func(c *Config) { c.OutputExt = "" }, ErrInvalidOutputExt},
		{"dotted ext", func(c *Config) { c.OutputExt = ".webp" }, ErrInvalidOutputExt},
		{"ext with sep", func(c *Config) { c.OutputExt = "a/b" }, ErrInvalidOutputExt},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Root = dir
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidate_QualityPassthrough(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = t.TempDir()
	cfg.Quality = 500
	if err := cfg.Validate(); err != nil {
		t.Fatalf("quality must not be validated locally: %v", err)
	}
}

func TestWorkerCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 0
	if cfg.WorkerCount() != runtime.NumCPU() {
		t.Errorf("WorkerCount = %d", cfg.WorkerCount())
	}
	cfg.Workers = 2
	if cfg.WorkerCount() != 2 {
		t.Errorf("WorkerCount = %d", cfg.WorkerCount())
	}
}
