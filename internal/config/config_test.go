package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Log.Debug {
		t.Error("Load() defaulted debug to true, want false")
	}
	if cfg.Log.Color != "auto" {
		t.Errorf("Load() defaulted color to %q, want auto", cfg.Log.Color)
	}
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	content := "[log]\ndebug = true\ncolor = \"never\"\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !cfg.Log.Debug {
		t.Error("Log.Debug = false, want true")
	}
	if cfg.Log.Color != "never" {
		t.Errorf("Log.Color = %q, want never", cfg.Log.Color)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("not toml ["), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestLoadInvalidColorValue(t *testing.T) {
	dir := t.TempDir()
	content := "[log]\ncolor = \"sometimes\"\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid log.color value")
	}
}
