package config

import (
	"os"
	"path/filepath"
	"testing"
)

const saveFixture = `base_url: https://gitspatial.com
theme: dark
repos:
  - id: 42
    name: city-parks
feature_sets:
  - id: 3
`

// TestConfigSave tests saving theme changes to config
func TestConfigSave(t *testing.T) {
	path := writeConfig(t, t.TempDir(), saveFixture)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	cfg.Theme = "gruvbox"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if reloaded.Theme != "gruvbox" {
		t.Errorf("Expected saved theme 'gruvbox', got '%s'", reloaded.Theme)
	}

	// Verify other fields are preserved
	if reloaded.BaseURL != "https://gitspatial.com" {
		t.Errorf("Expected base_url preserved, got '%s'", reloaded.BaseURL)
	}
	if len(reloaded.Repos) != 1 || reloaded.Repos[0] != (Resource{ID: 42, Name: "city-parks"}) {
		t.Errorf("Expected repos preserved, got %+v", reloaded.Repos)
	}
	if len(reloaded.FeatureSets) != 1 || reloaded.FeatureSets[0].ID != 3 {
		t.Errorf("Expected feature sets preserved, got %+v", reloaded.FeatureSets)
	}
}

// TestConfigUpdateTheme tests the UpdateTheme convenience method
func TestConfigUpdateTheme(t *testing.T) {
	path := writeConfig(t, t.TempDir(), saveFixture)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.UpdateTheme("nord"); err != nil {
		t.Fatalf("UpdateTheme failed: %v", err)
	}
	if cfg.Theme != "nord" {
		t.Errorf("Expected in-memory theme 'nord', got '%s'", cfg.Theme)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if reloaded.Theme != "nord" {
		t.Errorf("Expected persisted theme 'nord', got '%s'", reloaded.Theme)
	}

	if err := cfg.UpdateTheme(""); err == nil {
		t.Error("UpdateTheme should reject an empty theme")
	}
}

func TestConfigSave_NoPath(t *testing.T) {
	cfg := &Config{Theme: "dark"}
	if err := cfg.Save(); err == nil {
		t.Error("Save should fail when the config was not loaded from a file")
	}
}

func TestConfigSave_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, saveFixture)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	cfg.path = filepath.Join(dir, "missing", "config.yaml")
	if err := cfg.Save(); err == nil {
		t.Error("Save should fail when the directory does not exist")
	}
	if _, err := os.Stat(cfg.path); err == nil {
		t.Error("no file should have been written")
	}
}
