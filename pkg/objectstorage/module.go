package objectstorage

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/odm-project/odm/pkg/afero"
	"github.com/odm-project/odm/pkg/logging"
)

// ProvideClient initializes a Client from the "object_storage" viper key,
// backed by the provided filesystem. It is intended to be used as an fx
// provider.
func ProvideClient(v *viper.Viper, logger logging.Interface, fs afero.Fs) (*Client, error) {
	config, err := NewConfig(WithViper(v), WithAnotherLog(logger))
	if err != nil {
		return nil, fmt.Errorf("error reading object storage config: %w", err)
	}
	client, err := NewClient(config)
	if err != nil {
		return nil, err
	}
	client.fs = fs
	return client, nil
}

// Module is an fx module that provides a singleton object storage Client.
var Module = fx.Provide(
	fx.Annotate(ProvideClient, fx.ParamTags(``, `name:"another_log"`, ``)),
)
