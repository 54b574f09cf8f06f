// Package logging builds the zap loggers used by assetmanifest.
// Logs go to stderr so stdout carries only command output.
package logging

import (
	"fmt"
	"strings"

	"assetmanifest/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot  Category = "boot"  // Config loading, startup
	CategoryGlob  Category = "glob"  // Source listing
	CategoryWrite Category = "write" // Manifest replacement
	CategoryCheck Category = "check" // Staleness checks
	CategoryWatch Category = "watch" // Filesystem watcher
)

// New builds a logger from the logging config. verbose forces debug level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zcfg, err := buildConfig(cfg, verbose)
	if err != nil {
		return nil, err
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func buildConfig(cfg config.LoggingConfig, verbose bool) (zap.Config, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Sampling = nil

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zap.Config{}, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableStacktrace = !verbose

	switch strings.ToLower(cfg.Format) {
	case "", "console":
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		zcfg.Encoding = "json"
	default:
		return zap.Config{}, fmt.Errorf("invalid logging format: %s", cfg.Format)
	}
	return zcfg, nil
}

// ParseLevel converts a config level to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid logging level: %s", s)
	}
	return level, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Get returns the named child logger for a category.
func Get(base *zap.Logger, category Category) *zap.Logger {
	if base == nil {
		base = Nop()
	}
	return base.Named(string(category))
}
