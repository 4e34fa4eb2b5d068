package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
)

// Resource is a repository or feature set listed in the config file.
type Resource struct {
	ID   int    `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// Config holds the application configuration
type Config struct {
	BaseURL     string     `mapstructure:"base_url"`
	Theme       string     `mapstructure:"theme"`
	LogLevel    string     `mapstructure:"log_level"`
	LogFile     string     `mapstructure:"log_file"`
	Repos       []Resource `mapstructure:"repos"`
	FeatureSets []Resource `mapstructure:"feature_sets"`

	path string
}

// Entry pairs a resource reference with its display name.
type Entry struct {
	Ref  gitspatial.Ref
	Name string
}

// Default configuration values
const (
	DefaultBaseURL  = "https://gitspatial.com"
	DefaultTheme    = "dark"
	DefaultLogLevel = "info"

	envPrefix = "GITSPATIAL"
)

// GetPath returns the path to the config file
func GetPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "gitspatial-tui", "config.yaml"), nil
}

// Load reads the configuration from ~/.config/gitspatial-tui/config.yaml.
// Returns an error if the file doesn't exist, showing the expected path.
func Load() (*Config, error) {
	path, err := GetPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return LoadFrom(path)
}

// ErrNotConfigured is wrapped by LoadFrom when the config file is missing.
var ErrNotConfigured = errors.New("config file not found")

// LoadFrom reads the configuration from an explicit file path. Values can be
// overridden with GITSPATIAL_* environment variables.
func LoadFrom(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at: %s\nPlease create a config.yaml file listing the 'repos' and 'feature_sets' to manage", ErrNotConfigured, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return decode(v, path)
}

// Default returns the built-in defaults with environment overrides applied.
// It has no resources and no file path, so it cannot be saved.
func Default() (*Config, error) {
	return decode(newViper(), "")
}

// newViper returns a fresh instance so no state leaks between loads.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper, path string) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.path = path
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks every configuration value and reports all problems at once.
func (c *Config) Validate() error {
	var errs error

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = multierr.Append(errs, fmt.Errorf("base_url must be an absolute http(s) URL, got %q", c.BaseURL))
	}

	if c.Theme == "" {
		errs = multierr.Append(errs, errors.New("theme cannot be empty"))
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("log_level: %w", err))
		}
	}

	errs = multierr.Append(errs, validateResources("repos", c.Repos))
	errs = multierr.Append(errs, validateResources("feature_sets", c.FeatureSets))

	return errs
}

func validateResources(key string, resources []Resource) error {
	var errs error
	seen := make(map[int]bool, len(resources))
	for i, r := range resources {
		if r.ID <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s[%d]: id must be greater than 0, got %d", key, i, r.ID))
			continue
		}
		if seen[r.ID] {
			errs = multierr.Append(errs, fmt.Errorf("%s[%d]: duplicate id %d", key, i, r.ID))
		}
		seen[r.ID] = true
	}
	return errs
}

// Entries returns every configured resource, repositories first.
// Resources without a name are labelled by their reference.
func (c *Config) Entries() []Entry {
	entries := make([]Entry, 0, len(c.Repos)+len(c.FeatureSets))
	add := func(kind gitspatial.Kind, resources []Resource) {
		for _, r := range resources {
			ref := gitspatial.Ref{Kind: kind, ID: r.ID}
			name := r.Name
			if name == "" {
				name = ref.String()
			}
			entries = append(entries, Entry{Ref: ref, Name: name})
		}
	}
	add(gitspatial.KindRepo, c.Repos)
	add(gitspatial.KindFeatureSet, c.FeatureSets)
	return entries
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// LogPath returns the log file for interactive runs. It defaults to
// gitspatial-tui.log next to the config file.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	dir := filepath.Dir(c.path)
	if c.path == "" {
		if p, err := GetPath(); err == nil {
			dir = filepath.Dir(p)
		}
	}
	return filepath.Join(dir, "gitspatial-tui.log")
}

// GetTheme returns the configured theme name.
// Returns the default theme if the theme is empty.
func (c *Config) GetTheme() string {
	if c.Theme == "" {
		return DefaultTheme
	}
	return c.Theme
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("base_url", c.BaseURL)
	v.Set("theme", c.Theme)
	v.Set("log_level", c.LogLevel)
	if c.LogFile != "" {
		v.Set("log_file", c.LogFile)
	}
	v.Set("repos", resourceMaps(c.Repos))
	v.Set("feature_sets", resourceMaps(c.FeatureSets))

	if err := v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// UpdateTheme changes the theme and persists it.
func (c *Config) UpdateTheme(theme string) error {
	if theme == "" {
		return errors.New("theme cannot be empty")
	}
	c.Theme = theme
	return c.Save()
}

func resourceMaps(resources []Resource) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(resources))
	for _, r := range resources {
		m := map[string]interface{}{"id": r.ID}
		if r.Name != "" {
			m["name"] = r.Name
		}
		out = append(out, m)
	}
	return out
}
