package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Level
		expectError bool
	}{
		{name: "empty defaults to info", input: "", expected: LevelInfo},
		{name: "lowercase debug", input: "debug", expected: LevelDebug},
		{name: "uppercase warn", input: "WARN", expected: LevelWarn},
		{name: "mixed case error", input: "Error", expected: LevelError},
		{name: "unknown level", input: "verbose", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLevelValidate(t *testing.T) {
	for _, valid := range []Level{"", "debug", LevelDebug, LevelInfo, LevelWarn, LevelError} {
		assert.NoError(t, valid.Validate(), "level %q", valid)
	}
	assert.Error(t, Level("TRACE").Validate())
}

func TestLevelToZapCoreLevel(t *testing.T) {
	tests := []struct {
		level    Level
		expected zapcore.Level
	}{
		{Level(""), zapcore.InfoLevel},
		{LevelDebug, zapcore.DebugLevel},
		{LevelInfo, zapcore.InfoLevel},
		{LevelWarn, zapcore.WarnLevel},
		{LevelError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		actual, err := tt.level.toZapCoreLevel()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, actual)
	}

	_, err := Level("TRACE").toZapCoreLevel()
	assert.Error(t, err)
}

func TestConfigToZapCoreLevel(t *testing.T) {
	c := &Config{Debug: true, Level: LevelError}
	actual, err := c.toZapCoreLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, actual, "debug overrides the configured level")
}
