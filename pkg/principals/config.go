package principals

import (
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
)

// AuthenticationType is the enum for the supported authentication flavors.
type AuthenticationType string

const (
	UserPrincipal     AuthenticationType = "UserPrincipal"
	InstancePrincipal AuthenticationType = "InstancePrincipal"
	ResourcePrincipal AuthenticationType = "ResourcePrincipal"
)

// Config describes how to construct an oci-go-sdk ConfigurationProvider.
// No credentials are handled here; everything is delegated to the SDK.
//
// This structure is meant to be unmarshalled with spf13/viper.
type Config struct {
	// AuthType selects which principal flavor to build.
	AuthType AuthenticationType `mapstructure:"auth_type"`

	// UPConfig configures user principal authentication.
	UPConfig UserPrincipalConfig `mapstructure:"user_principal"`

	// IPConfig configures instance principal authentication.
	IPConfig InstancePrincipalConfig `mapstructure:"instance_principal"`

	// RPConfig configures resource principal authentication.
	RPConfig ResourcePrincipalConfig `mapstructure:"resource_principal"`

	// Fallback is tried when the primary provider cannot be constructed.
	// Fallbacks can be chained.
	Fallback *Config `mapstructure:"fallback"`
}

// Validate validates the principal configuration, fallbacks included.
func (c Config) Validate() error {
	switch c.AuthType {
	case UserPrincipal:
		if err := c.UPConfig.Validate(); err != nil {
			return fmt.Errorf("invalid user_principal config: %w", err)
		}
	case InstancePrincipal:
		if err := c.IPConfig.Validate(); err != nil {
			return fmt.Errorf("invalid instance_principal config: %w", err)
		}
	case ResourcePrincipal:
		if err := c.RPConfig.Validate(); err != nil {
			return fmt.Errorf("invalid resource_principal config: %w", err)
		}
	default:
		return fmt.Errorf("invalid auth_type: %s", c.AuthType)
	}

	if c.Fallback != nil {
		return c.Fallback.Validate()
	}

	return nil
}

// Build builds an oci-go-sdk common.ConfigurationProvider from c.
func (c Config) Build(opts Opts) (common.ConfigurationProvider, error) {
	opts.log().WithField("AuthType", c.AuthType).Info("Building configuration provider")

	var (
		confProvider common.ConfigurationProvider
		err          error
	)

	switch c.AuthType {
	case UserPrincipal:
		confProvider, err = c.UPConfig.Build(opts)
	case InstancePrincipal:
		confProvider, err = c.IPConfig.Build(opts)
	case ResourcePrincipal:
		confProvider, err = c.RPConfig.Build(opts)
	default:
		return nil, fmt.Errorf("unknown auth_type: %v", c.AuthType)
	}

	if err == nil {
		return confProvider, nil
	}

	if c.Fallback != nil {
		opts.log().WithError(err).Warn("Failed to build configuration provider. Trying fallback..")
		return c.Fallback.Build(opts)
	}

	return nil, err
}
