package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"assetmanifest/internal/manifest"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no --config
// flag is given.
const DefaultConfigFile = "assetmanifest.yaml"

// Config holds all assetmanifest configuration.
type Config struct {
	// Glob pattern whose matches are listed in the manifest
	SourcePattern string `yaml:"source_pattern"`

	// Manifest file to replace
	DestinationPath string `yaml:"destination_path"`

	// Output byte layout: compact or indent
	Format string `yaml:"format"`

	// Watch mode
	Watch WatchConfig `yaml:"watch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// Quiet period after the last filesystem event before regenerating
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the default configuration. Source and destination
// match the historical fixed locations.
func DefaultConfig() *Config {
	return &Config{
		SourcePattern:   manifest.DefaultSourcePattern,
		DestinationPath: manifest.DefaultDestinationPath,
		Format:          string(manifest.FormatCompact),

		Watch: WatchConfig{
			Debounce: "250ms",
		},

		Logging: DefaultLoggingConfig(),
	}
}

// Load loads configuration from a YAML file. Fields missing from the file
// keep their default values; a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() (manifest.Format, error) {
	return manifest.ParseFormat(c.Format)
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 250 * time.Millisecond
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := manifest.ValidatePattern(c.SourcePattern); err != nil {
		return fmt.Errorf("invalid source_pattern %q: %w", c.SourcePattern, err)
	}
	if c.DestinationPath == "" {
		return fmt.Errorf("destination_path not configured")
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			return fmt.Errorf("invalid watch.debounce %q: %w", c.Watch.Debounce, err)
		}
	}
	return c.Logging.Validate()
}
