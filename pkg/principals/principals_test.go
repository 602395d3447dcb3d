package principals

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odm-project/odm/pkg/logging"
)

type fakeFactory struct {
	userCalls []struct {
		configPath      string
		profile         string
		useSessionToken bool
	}
	instanceCalls int
	resourceCalls int

	userErr     error
	instanceErr error
	resourceErr error
}

func fakeProvider() common.ConfigurationProvider {
	return common.NewRawConfigurationProvider("tenancy", "user", "us-ashburn-1", "fingerprint", "key", nil)
}

func (f *fakeFactory) NewUserPrincipal(configPath, profile string, useSessionToken bool) (common.ConfigurationProvider, error) {
	f.userCalls = append(f.userCalls, struct {
		configPath      string
		profile         string
		useSessionToken bool
	}{configPath, profile, useSessionToken})
	if f.userErr != nil {
		return nil, f.userErr
	}
	return fakeProvider(), nil
}

func (f *fakeFactory) NewInstancePrincipal() (common.ConfigurationProvider, error) {
	f.instanceCalls++
	if f.instanceErr != nil {
		return nil, f.instanceErr
	}
	return fakeProvider(), nil
}

func (f *fakeFactory) NewResourcePrincipal() (common.ConfigurationProvider, error) {
	f.resourceCalls++
	if f.resourceErr != nil {
		return nil, f.resourceErr
	}
	return fakeProvider(), nil
}

func testOpts(f Factory) Opts {
	return Opts{Factory: f, Log: logging.Discard()}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError string
	}{
		{
			name: "valid user principal",
			config: Config{
				AuthType: UserPrincipal,
				UPConfig: UserPrincipalConfig{ConfigPath: "~/.oci/config", Profile: "DEFAULT"},
			},
		},
		{
			name:        "user principal without config path",
			config:      Config{AuthType: UserPrincipal, UPConfig: UserPrincipalConfig{Profile: "DEFAULT"}},
			expectError: "config_path",
		},
		{
			name:        "user principal without profile",
			config:      Config{AuthType: UserPrincipal, UPConfig: UserPrincipalConfig{ConfigPath: "/etc/oci"}},
			expectError: "profile",
		},
		{name: "instance principal", config: Config{AuthType: InstancePrincipal}},
		{name: "resource principal", config: Config{AuthType: ResourcePrincipal}},
		{name: "unknown auth type", config: Config{AuthType: "SecretHandshake"}, expectError: "invalid auth_type"},
		{name: "empty auth type", config: Config{}, expectError: "invalid auth_type"},
		{
			name: "invalid fallback",
			config: Config{
				AuthType: InstancePrincipal,
				Fallback: &Config{AuthType: UserPrincipal},
			},
			expectError: "config_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigBuildDispatch(t *testing.T) {
	f := &fakeFactory{}

	_, err := Config{AuthType: InstancePrincipal}.Build(testOpts(f))
	require.NoError(t, err)
	assert.Equal(t, 1, f.instanceCalls)

	_, err = Config{AuthType: ResourcePrincipal}.Build(testOpts(f))
	require.NoError(t, err)
	assert.Equal(t, 1, f.resourceCalls)

	_, err = Config{AuthType: "SecretHandshake"}.Build(testOpts(f))
	assert.Error(t, err)
}

func TestConfigBuildFallback(t *testing.T) {
	f := &fakeFactory{instanceErr: errors.New("no IMDS here")}

	config := Config{
		AuthType: InstancePrincipal,
		Fallback: &Config{
			AuthType: UserPrincipal,
			UPConfig: UserPrincipalConfig{ConfigPath: "/etc/oci/config", Profile: "DEFAULT"},
		},
	}

	provider, err := config.Build(testOpts(f))
	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.Equal(t, 1, f.instanceCalls)
	require.Len(t, f.userCalls, 1)
	assert.Equal(t, "/etc/oci/config", f.userCalls[0].configPath)
}

func TestConfigBuildFallbackExhausted(t *testing.T) {
	f := &fakeFactory{instanceErr: errors.New("no IMDS"), resourceErr: errors.New("no env")}

	config := Config{
		AuthType: InstancePrincipal,
		Fallback: &Config{AuthType: ResourcePrincipal},
	}

	_, err := config.Build(testOpts(f))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no env")
}

func TestUserPrincipalBuild(t *testing.T) {
	t.Run("expands home in config path", func(t *testing.T) {
		f := &fakeFactory{}
		c := UserPrincipalConfig{ConfigPath: "~/.oci/config", Profile: "DEFAULT"}

		_, err := c.Build(testOpts(f))
		require.NoError(t, err)

		home, err := os.UserHomeDir()
		require.NoError(t, err)
		require.Len(t, f.userCalls, 1)
		assert.Equal(t, filepath.Join(home, ".oci", "config"), f.userCalls[0].configPath)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("OCI_CONFIG_PATH", "/from/env/config")
		t.Setenv("PROFILE", "ENVPROFILE")
		t.Setenv("USE_SESSION_TOKEN", "TRUE")

		f := &fakeFactory{}
		c := UserPrincipalConfig{ConfigPath: "/configured", Profile: "DEFAULT"}

		_, err := c.Build(testOpts(f))
		require.NoError(t, err)

		require.Len(t, f.userCalls, 1)
		assert.Equal(t, "/from/env/config", f.userCalls[0].configPath)
		assert.Equal(t, "ENVPROFILE", f.userCalls[0].profile)
		assert.True(t, f.userCalls[0].useSessionToken)
	})
}
