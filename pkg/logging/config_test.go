package logging

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name         string
		options      []Option
		expectError  bool
		validateFunc func(*testing.T, *Config)
	}{
		{
			name:    "no options",
			options: nil,
			validateFunc: func(t *testing.T, c *Config) {
				assert.False(t, c.Debug)
				assert.Equal(t, Level(""), c.Level)
			},
		},
		{
			name: "nil options are skipped",
			options: []Option{
				nil,
				func(c *Config) error {
					c.Debug = true
					return nil
				},
			},
			validateFunc: func(t *testing.T, c *Config) {
				assert.True(t, c.Debug)
			},
		},
		{
			name: "failing option",
			options: []Option{
				func(c *Config) error { return errors.New("boom") },
			},
			expectError: true,
		},
		{
			name: "with viper",
			options: []Option{
				WithViper(func() *viper.Viper {
					v := viper.New()
					v.Set("logging.level", "WARN")
					v.Set("logging.disableConsoleOutput", true)
					v.Set("logging.maxsize", 42)
					return v
				}()),
			},
			validateFunc: func(t *testing.T, c *Config) {
				assert.Equal(t, LevelWarn, c.Level)
				assert.True(t, c.DisableConsoleOutput)
				assert.Equal(t, 42, c.MaxSize)
			},
		},
		{
			name:        "nil viper",
			options:     []Option{WithViper(nil)},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := NewConfig(tt.options...)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validateFunc != nil {
				tt.validateFunc(t, config)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError string
	}{
		{name: "zero value is valid", mutate: func(c *Config) {}},
		{
			name:        "negative maxsize",
			mutate:      func(c *Config) { c.MaxSize = -1 },
			expectError: "maxsize",
		},
		{
			name:        "negative maxbackups",
			mutate:      func(c *Config) { c.MaxBackups = -2 },
			expectError: "maxbackups",
		},
		{
			name:        "negative maxage",
			mutate:      func(c *Config) { c.MaxAge = -3 },
			expectError: "maxage",
		},
		{
			name:        "bad level",
			mutate:      func(c *Config) { c.Level = "TRACE" },
			expectError: "invalid level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}
