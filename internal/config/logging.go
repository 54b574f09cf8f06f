package config

import (
	"fmt"
	"strings"
)

// ValidLogLevels lists the accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted logging.format values.
var ValidLogFormats = []string{"console", "json"}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultLoggingConfig returns the logging defaults.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "info",
		Format: "console",
	}
}

// Validate checks level and format against the accepted values. Empty
// values are allowed and mean the default.
func (c LoggingConfig) Validate() error {
	if c.Level != "" && !contains(ValidLogLevels, strings.ToLower(c.Level)) {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Level, ValidLogLevels)
	}
	if c.Format != "" && !contains(ValidLogFormats, strings.ToLower(c.Format)) {
		return fmt.Errorf("invalid logging format: %s (valid: %v)", c.Format, ValidLogFormats)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
