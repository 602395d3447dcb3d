package objectstorage

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/principals"
)

// ConfigKey is the root configuration key (in Viper) for this module.
var ConfigKey = "object_storage"

// UploadSettings tune when and how UploadFile switches to multipart.
type UploadSettings struct {
	// ThresholdInMB is the file size at or above which multipart upload is
	// used instead of a single PutObject. Defaults to 128.
	ThresholdInMB int `mapstructure:"threshold_in_mb"`

	// PartSizeInMB is the multipart part size. Defaults to 10.
	PartSizeInMB int `mapstructure:"part_size_in_mb"`

	// Threads is the number of goroutines uploading parts. Defaults to 3.
	Threads int `mapstructure:"threads"`
}

// DownloadSettings tune when DownloadFile switches to ranged multipart
// downloads and how the parts are fetched.
type DownloadSettings struct {
	// ThresholdInMB is the object size at or above which multipart download
	// is used. Defaults to 100.
	ThresholdInMB int `mapstructure:"threshold_in_mb"`

	// ChunkSizeInMB is the ranged GET size per part. Defaults to 8.
	ChunkSizeInMB int `mapstructure:"chunk_size_in_mb"`

	// Threads is the number of goroutines fetching parts. Defaults to 16.
	Threads int `mapstructure:"threads"`
}

// Config holds the parameters required to build a Client.
// Fields are populated using viper, environment values, or explicitly
// through Options.
type Config struct {
	AnotherLogger logging.Interface

	// Name labels the configuration in multi-store setups.
	Name string `mapstructure:"name"`

	// Auth selects and configures the OCI authentication principal.
	Auth *principals.Config `mapstructure:"auth" validate:"required"`

	// CompartmentId is the OCI compartment OCID used for namespace lookup.
	CompartmentId *string `mapstructure:"compartment_id"`

	// Region optionally overrides the region resolved from the principal.
	Region string `mapstructure:"region_override"`

	// Namespace is the object storage namespace. Fetched from the service
	// and cached when empty.
	Namespace string `mapstructure:"namespace"`

	// Bucket is the default bucket for ObjectURIs that do not name one.
	Bucket string `mapstructure:"bucket"`

	EnableOboToken bool   `mapstructure:"enable_obo_token"`
	OboToken       string `mapstructure:"obo_token" validate:"required_if=EnableOboToken true"`

	Upload   UploadSettings   `mapstructure:"upload"`
	Download DownloadSettings `mapstructure:"download"`
}

// Option defines a functional configuration override for building a Config.
type Option func(*Config) error

// Apply applies a sequence of configuration options to the Config instance.
// It returns the first error encountered or nil if all options succeed.
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

// WithViper populates the Config from the "object_storage" viper key.
func WithViper(v *viper.Viper) Option {
	return WithViperKey(v, ConfigKey)
}

// WithViperKey populates the Config from a specific viper key, for setups
// with more than one store in the same config file.
func WithViperKey(v *viper.Viper, configKey string) Option {
	return func(c *Config) error {
		if v == nil {
			return errors.New("nil Viper")
		}
		return v.UnmarshalKey(configKey, c)
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

// Validate performs struct validation using go-playground/validator and
// validates the nested principal configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return c.Auth.Validate()
}
