package logging

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ConfigKey is the root configuration key (in Viper) for this module.
var ConfigKey = "logging"

// Config holds the configuration for logging.
type Config struct {
	// Debug forces the level to DEBUG and switches the encoder to the
	// console format. For debug-level JSON logs use "debug=false,
	// level=DEBUG" instead.
	Debug bool `mapstructure:"debug"`

	// Level controls the logging level. Defaults to INFO when unset.
	Level Level `mapstructure:"level"`

	// If set, timestamps are serialized in the RFC3339Nano format instead
	// of the encoder default (ISO8601 for console, epoch for JSON).
	EncodeTimeAsRFC3339Nano bool `mapstructure:"encodeTimeAsRFC3339Nano"`

	// DisableConsoleOutput stops logs from being copied to stdout, leaving
	// only the rotated log file. Useful where stdout is forwarded to syslog
	// and would double the disk usage.
	DisableConsoleOutput bool `mapstructure:"disableConsoleOutput"`

	// Logger carries the lumberjack file-rotation knobs (filename, maxsize,
	// maxbackups, maxage, compress).
	lumberjack.Logger `mapstructure:",squash"`
}

// Option is a configuration option for logging.
type Option func(*Config) error

// Validate ensures the logging Config is valid.
func (c *Config) Validate() error {
	if c.MaxSize < 0 {
		return fmt.Errorf("maxsize must be >= 0, not %d", c.MaxSize)
	}
	if c.MaxBackups < 0 {
		return fmt.Errorf("maxbackups must be >= 0, not %d", c.MaxBackups)
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("maxage days must be >= 0, not %d", c.MaxAge)
	}
	if err := c.Level.Validate(); err != nil {
		return fmt.Errorf("invalid level: %w", err)
	}

	return nil
}

// WithViper applies the configuration using Viper root configuration key
// "logging". It assumes that Viper has already been configured to read from a
// config file, the environment, or flags.
func WithViper(v *viper.Viper) Option {
	return WithViperKey(v, ConfigKey)
}

// WithViperKey applies the configuration from a specific Viper configuration
// key. Used for secondary loggers that live next to the root one.
func WithViperKey(v *viper.Viper, configKey string) Option {
	return func(c *Config) error {
		if v == nil {
			return errors.New("nil Viper")
		}

		return v.UnmarshalKey(configKey, c)
	}
}

// Apply takes the supplied options and applies them to the configuration.
func (c *Config) Apply(opts ...Option) error {
	for _, o := range opts {
		if o == nil {
			continue
		}

		if err := o(c); err != nil {
			return err
		}
	}

	return nil
}

// NewConfig creates a new logging config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}

	return c, nil
}
