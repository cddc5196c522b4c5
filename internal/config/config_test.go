package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	def := Default()
	if len(cfg.Extensions) != len(def.Extensions) {
		t.Errorf("expected default extensions, got %v", cfg.Extensions)
	}
	if !cfg.TrimText {
		t.Error("trim_text should default to true")
	}
	if cfg.CachePath != def.CachePath {
		t.Errorf("expected default cache path, got %q", cfg.CachePath)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `
extensions = [".tpl.html"]
schema_path = "schema.cue"
trim_text = false
cache_path = "cache.db"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".tpl.html" {
		t.Errorf("unexpected extensions %v", cfg.Extensions)
	}
	if cfg.SchemaPath != "schema.cue" {
		t.Errorf("unexpected schema path %q", cfg.SchemaPath)
	}
	if cfg.TrimText {
		t.Error("trim_text should be overridden to false")
	}
	if cfg.CachePath != "cache.db" {
		t.Errorf("unexpected cache path %q", cfg.CachePath)
	}
}

func TestLoadEmptyExtensionListFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("extensions = []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(cfg.Extensions) == 0 {
		t.Error("empty extension list should fall back to defaults")
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("extensions = {"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed config")
	}
}
