package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
)

// setTestHome sets the appropriate home directory environment variable for the current OS
func setTestHome(t *testing.T, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", dir)
		return
	}
	t.Setenv("HOME", dir)
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_ConfigFileNotFound(t *testing.T) {
	setTestHome(t, t.TempDir())

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when config file is not found")
	}
	if cfg != nil {
		t.Error("Expected cfg to be nil when config file is not found")
	}
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
	if !strings.Contains(err.Error(), filepath.Join("gitspatial-tui", "config.yaml")) {
		t.Errorf("Expected error message to mention the config path, got: %s", err)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".config", "gitspatial-tui")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}
	writeConfig(t, configDir, `base_url: https://staging.gitspatial.com/
theme: nord
log_level: debug
repos:
  - id: 42
    name: city-parks
  - id: 7
feature_sets:
  - id: 3
    name: trails
`)
	setTestHome(t, tempDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.BaseURL != "https://staging.gitspatial.com" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.BaseURL)
	}
	if cfg.Theme != "nord" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected theme/log level: %s/%s", cfg.Theme, cfg.LogLevel)
	}
	if len(cfg.Repos) != 2 || cfg.Repos[0].ID != 42 || cfg.Repos[0].Name != "city-parks" {
		t.Errorf("unexpected repos: %+v", cfg.Repos)
	}
	if len(cfg.FeatureSets) != 1 || cfg.FeatureSets[0].ID != 3 {
		t.Errorf("unexpected feature sets: %+v", cfg.FeatureSets)
	}
	if !strings.HasSuffix(cfg.Path(), "config.yaml") {
		t.Errorf("Path() = %s", cfg.Path())
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "repos:\n  - id: 1\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme = %s, want %s", cfg.Theme, DefaultTheme)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %s, want %s", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "base_url: https://gitspatial.com\n")
	t.Setenv("GITSPATIAL_BASE_URL", "http://localhost:8000")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("expected env override, got %s", cfg.BaseURL)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"relative url", "base_url: gitspatial.com\n", "base_url"},
		{"bad scheme", "base_url: ftp://gitspatial.com\n", "base_url"},
		{"bad log level", "log_level: loud\n", "log_level"},
		{"zero id", "repos:\n  - id: 0\n", "repos[0]"},
		{"duplicate id", "feature_sets:\n  - id: 3\n  - id: 3\n", "duplicate id 3"},
		{"malformed yaml", "repos: [\n", "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadFrom(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		BaseURL: "nope",
		Theme:   "",
		Repos:   []Resource{{ID: -1}},
	}

	err := cfg.Validate()
	if got := len(multierr.Errors(err)); got != 3 {
		t.Errorf("expected 3 errors, got %d: %v", got, err)
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := &Config{
		BaseURL:     DefaultBaseURL,
		Theme:       DefaultTheme,
		LogLevel:    "WARN",
		Repos:       []Resource{{ID: 1}, {ID: 2}},
		FeatureSets: []Resource{{ID: 1}},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestEntries(t *testing.T) {
	cfg := &Config{
		Repos:       []Resource{{ID: 42, Name: "city-parks"}, {ID: 7}},
		FeatureSets: []Resource{{ID: 3, Name: "trails"}},
	}

	got := cfg.Entries()
	want := []Entry{
		{Ref: gitspatial.Ref{Kind: gitspatial.KindRepo, ID: 42}, Name: "city-parks"},
		{Ref: gitspatial.Ref{Kind: gitspatial.KindRepo, ID: 7}, Name: "repo/7"},
		{Ref: gitspatial.Ref{Kind: gitspatial.KindFeatureSet, ID: 3}, Name: "trails"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGetTheme(t *testing.T) {
	if got := (&Config{}).GetTheme(); got != DefaultTheme {
		t.Errorf("GetTheme() = %s, want default", got)
	}
	if got := (&Config{Theme: "gruvbox"}).GetTheme(); got != "gruvbox" {
		t.Errorf("GetTheme() = %s, want gruvbox", got)
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("GITSPATIAL_BASE_URL", "http://localhost:8000/")

	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %s, want env override without trailing slash", cfg.BaseURL)
	}
	if len(cfg.Entries()) != 0 {
		t.Error("defaults should list no resources")
	}
	if err := cfg.Save(); err == nil {
		t.Error("Save() should fail without a file path")
	}
}

func TestLogPath(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(writeConfig(t, dir, "theme: dark\n"))
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if got, want := cfg.LogPath(), filepath.Join(dir, "gitspatial-tui.log"); got != want {
		t.Errorf("LogPath() = %s, want %s", got, want)
	}

	cfg.LogFile = "/var/log/gitspatial.log"
	if got := cfg.LogPath(); got != "/var/log/gitspatial.log" {
		t.Errorf("LogPath() = %s, want the configured file", got)
	}
}
