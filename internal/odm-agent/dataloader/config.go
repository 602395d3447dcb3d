package dataloader

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/objectstorage"
)

// ConfigKey is the root configuration key (in Viper) for this module.
var ConfigKey = "data_loader"

// Config describes one bucket-to-warehouse load.
type Config struct {
	AnotherLogger logging.Interface

	// Source names the object to load. Format is inferred from the object
	// name's extension (.csv or .parquet).
	Source objectstorage.ObjectURI `mapstructure:"source" validate:"required"`

	// Table is the destination table.
	Table string `mapstructure:"table" validate:"required"`

	// Mode is append, replace, or fail. Defaults to append.
	Mode string `mapstructure:"mode"`

	// BatchSize is the row count per insert chunk. Defaults to the adw
	// package default when unset.
	BatchSize int `mapstructure:"batch_size"`
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

// WithViper populates the Config from the "data_loader" viper key.
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
	if c.Source.ObjectName == "" {
		return errors.New("data_loader.source.object_name is required")
	}
	return nil
}
