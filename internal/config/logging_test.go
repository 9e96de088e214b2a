package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videvian/log-in-with-ethos/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected config.LogLevel
	}{
		{"off lowercase", "off", config.LogLevelOff},
		{"off uppercase", "OFF", config.LogLevelOff},
		{"none", "none", config.LogLevelOff},
		{"error", "error", config.LogLevelError},
		{"info", "Info", config.LogLevelInfo},
		{"debug", "DEBUG", config.LogLevelDebug},
		{"with whitespace", "  debug  ", config.LogLevelDebug},
		{"empty returns error", "", config.LogLevelError},
		{"unknown value", "warn", config.LogLevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, config.ParseLogLevel(tt.input))
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "off", config.LogLevelOff.String())
	assert.Equal(t, "error", config.LogLevelError.String())
	assert.Equal(t, "info", config.LogLevelInfo.String())
	assert.Equal(t, "debug", config.LogLevelDebug.String())
	assert.Equal(t, "error", config.LogLevel(99).String())
}

func TestNewLogger_LevelOff(t *testing.T) {
	t.Parallel()
	logger, err := config.NewLogger(config.LogLevelOff, filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	assert.Equal(t, config.LogLevelOff, logger.Level())
}

func TestNewLogger_WritesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "ethos-login.log")

	logger, err := config.NewLogger(config.LogLevelInfo, path)
	require.NoError(t, err)

	logger.Error("lookup failed: %s", "boom")
	logger.Info("fetching %s", "0x1")
	logger.Debug("hidden at info level")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path) //nolint:gosec // test file path
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[ERROR] lookup failed: boom")
	assert.Contains(t, content, "[INFO] fetching 0x1")
	assert.NotContains(t, content, "hidden")
}

func TestWriterLogger_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := config.NewWriterLogger(config.LogLevelError, &buf)

	logger.Debug("debug line")
	logger.Error("error line")
	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "[ERROR] error line")

	logger.SetLevel(config.LogLevelDebug)
	logger.Debug("debug now")
	assert.Contains(t, buf.String(), "[DEBUG] debug now")

	require.NoError(t, logger.Close())
}

func TestNullLogger(t *testing.T) {
	t.Parallel()

	logger := config.NullLogger()
	logger.Error("ignored")
	assert.Equal(t, config.LogLevelOff, logger.Level())
	assert.NoError(t, logger.Close())
}
