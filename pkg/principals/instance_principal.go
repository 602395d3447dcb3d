package principals

import (
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
)

// InstancePrincipalConfig configures instance principal authentication.
//
// The zero value is ready to use, the SDK auto-detects everything from IMDS.
type InstancePrincipalConfig struct {
	// Region override. When unset the SDK detects the region from IMDS.
	Region string `mapstructure:"region"`

	// AuthEndpointOverride for realms where the default cannot be derived.
	AuthEndpointOverride string `mapstructure:"auth_endpoint_override"`
}

// Validate validates c. All fields are optional.
func (c InstancePrincipalConfig) Validate() error {
	return nil
}

// Build builds an instance principal configuration provider from c.
func (c InstancePrincipalConfig) Build(opts Opts) (common.ConfigurationProvider, error) {
	setEnvOverride(opts, "OCI_REGION", c.Region)
	setEnvOverride(opts, "OCI_SDK_AUTH_CLIENT_REGION_URL", c.AuthEndpointOverride)

	result, err := opts.factory().NewInstancePrincipal()
	if err != nil {
		return nil, fmt.Errorf("creating instance principal: %v", err)
	}

	opts.log().Info("Initialized instance principal configuration provider")

	return result, nil
}
