package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{name: "empty means info", input: "", expected: zapcore.InfoLevel},
		{name: "lowercase", input: "debug", expected: zapcore.DebugLevel},
		{name: "uppercase with spaces", input: " WARN ", expected: zapcore.WarnLevel},
		{name: "unknown level", input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
	}{
		{name: "development", env: "development", level: "debug"},
		{name: "production", env: EnvProduction, level: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.env, tt.level)

			require.NoError(t, err)
			expected, _ := ParseLevel(tt.level)
			assert.True(t, logger.Core().Enabled(expected))
			assert.False(t, logger.Core().Enabled(expected-1))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("development", "chatty")

	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger, err := New("development", "info")
	require.NoError(t, err)
	assert.Same(t, logger, OrNop(logger))
}
