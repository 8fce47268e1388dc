package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `db = "/data/movies.db"
types = "/data/types.yaml"

[ui]
accent = "39"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.DB != "/data/movies.db" {
		t.Errorf("expected db '/data/movies.db', got %q", cfg.DB)
	}
	if cfg.Types != "/data/types.yaml" {
		t.Errorf("expected types '/data/types.yaml', got %q", cfg.Types)
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("expected accent '39', got %q", cfg.UI.Accent)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("db = [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}
