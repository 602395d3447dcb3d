package principals

import (
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
)

// ResourcePrincipalConfig configures resource principal authentication.
//
// The zero value is ready to use where the container runtime exports the
// OCI_RESOURCE_PRINCIPAL_* environment variables.
type ResourcePrincipalConfig struct {
	// Region override.
	Region string `mapstructure:"region"`

	// Version override, the runtime usually sets "2.2" or "1.1".
	Version string `mapstructure:"version"`

	// Endpoint overrides, rarely needed.
	RPTEndpoint          string `mapstructure:"rpt_endpoint"`
	RPTPath              string `mapstructure:"rpt_path"`
	RPSTEndpoint         string `mapstructure:"rpst_endpoint"`
	AuthEndpointOverride string `mapstructure:"auth_endpoint_override"`
}

// Validate validates c. All fields are optional.
func (c ResourcePrincipalConfig) Validate() error {
	return nil
}

// Build builds a resource principal configuration provider from c.
func (c ResourcePrincipalConfig) Build(opts Opts) (common.ConfigurationProvider, error) {
	setEnvOverride(opts, "OCI_RESOURCE_PRINCIPAL_REGION", c.Region)
	setEnvOverride(opts, "OCI_RESOURCE_PRINCIPAL_VERSION", c.Version)
	setEnvOverride(opts, "OCI_RESOURCE_PRINCIPAL_RPT_ENDPOINT", c.RPTEndpoint)
	setEnvOverride(opts, "OCI_RESOURCE_PRINCIPAL_RPT_PATH", c.RPTPath)
	setEnvOverride(opts, "OCI_RESOURCE_PRINCIPAL_RPST_ENDPOINT", c.RPSTEndpoint)
	setEnvOverride(opts, "OCI_SDK_AUTH_CLIENT_REGION_URL", c.AuthEndpointOverride)

	result, err := opts.factory().NewResourcePrincipal()
	if err != nil {
		return nil, fmt.Errorf("couldn't get resource principal config provider: %v", err)
	}

	opts.log().Info("Initialized resource principal configuration provider")

	return result, nil
}
