package logging

import (
	"testing"

	"assetmanifest/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_DefaultLevelIsInfo(t *testing.T) {
	logger, err := New(config.DefaultLoggingConfig(), false)
	require.NoError(t, err)
	defer logger.Sync()

	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_VerboseForcesDebug(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "error"}, true)
	require.NoError(t, err)
	defer logger.Sync()

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_JSONFormat(t *testing.T) {
	zcfg, err := buildConfig(config.LoggingConfig{Level: "warn", Format: "json"}, false)
	require.NoError(t, err)
	assert.Equal(t, "json", zcfg.Encoding)
	assert.Equal(t, zapcore.WarnLevel, zcfg.Level.Level())
	assert.Equal(t, []string{"stderr"}, zcfg.OutputPaths)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Format: "xml"}, false)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"INFO":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestGet_NamesLoggerByCategory(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Get(zap.New(core), CategoryWatch).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "watch", entries[0].LoggerName)

	assert.NotNil(t, Get(nil, CategoryBoot))
}

func TestNop_DiscardsEverything(t *testing.T) {
	logger := Nop()
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
	logger.Error("dropped")
}
