package principals

import (
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/common/auth"
)

// Factory creates the underlying configuration providers. It exists as a
// test shim in front of the oci-go-sdk common & auth packages.
type Factory interface {
	// NewUserPrincipal creates a configuration provider backed by an API key
	// or a security token from the given OCI config file profile.
	NewUserPrincipal(configPath string, profile string, useSessionToken bool) (common.ConfigurationProvider, error)

	// NewInstancePrincipal creates a configuration provider for compute
	// instances, certificates fetched from IMDS.
	NewInstancePrincipal() (common.ConfigurationProvider, error)

	// NewResourcePrincipal creates a configuration provider from the well
	// known OCI_RESOURCE_PRINCIPAL_* environment variables.
	NewResourcePrincipal() (common.ConfigurationProvider, error)
}

type commonAuthFactory struct{}

func (c commonAuthFactory) NewUserPrincipal(configPath string, profile string, useSessionToken bool) (common.ConfigurationProvider, error) {
	if useSessionToken {
		return common.CustomProfileSessionTokenConfigProvider(configPath, profile), nil
	}
	return common.CustomProfileConfigProvider(configPath, profile), nil
}

func (c commonAuthFactory) NewInstancePrincipal() (common.ConfigurationProvider, error) {
	return auth.InstancePrincipalConfigurationProvider()
}

func (c commonAuthFactory) NewResourcePrincipal() (common.ConfigurationProvider, error) {
	return auth.ResourcePrincipalConfigurationProvider()
}

var defaultFactory Factory = &commonAuthFactory{}
