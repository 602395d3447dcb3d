package exporter

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/objectstorage"
)

// ConfigKey is the root configuration key (in Viper) for this module.
var ConfigKey = "exporter"

// Config describes one warehouse-to-bucket export.
type Config struct {
	AnotherLogger logging.Interface

	// Query is the SQL whose result set gets exported.
	Query string `mapstructure:"query" validate:"required"`

	// Target names the destination object. Format is inferred from the
	// object name's extension (.csv or .parquet).
	Target objectstorage.ObjectURI `mapstructure:"target" validate:"required"`
}

// Option defines a functional configuration override for building a Config.
type Option func(*Config) error

// Apply applies a sequence of configuration options to the Config instance.
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

// NewConfig constructs and returns a new Config by applying the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// WithViper populates the Config from the "exporter" viper key.
func WithViper(v *viper.Viper) Option {
	return func(c *Config) error {
		if v == nil {
			return errors.New("nil Viper")
		}
		return v.UnmarshalKey(ConfigKey, c)
	}
}

// WithAnotherLog sets the logger to be used by the Config.
func WithAnotherLog(logger logging.Interface) Option {
	return func(c *Config) error {
		if logger == nil {
			return errors.New("nil another logger")
		}
		c.AnotherLogger = logger
		return nil
	}
}

// Validate performs struct validation using go-playground/validator.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Target.ObjectName == "" {
		return errors.New("exporter.target.object_name is required")
	}
	return nil
}
