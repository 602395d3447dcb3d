package adw

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/odm-project/odm/pkg/logging"
)

// ProvideClient initializes a Client from the "adw" viper key. It is
// intended to be used as an fx provider.
func ProvideClient(v *viper.Viper, logger logging.Interface) (*Client, error) {
	config, err := NewConfig(WithViper(v), WithAnotherLog(logger))
	if err != nil {
		return nil, fmt.Errorf("error reading adw config: %w", err)
	}
	return NewClient(config)
}

// Module is an fx module that provides a singleton ADW Client.
var Module = fx.Provide(
	fx.Annotate(ProvideClient, fx.ParamTags(``, `name:"another_log"`)),
)
