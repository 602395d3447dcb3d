package exporter

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/odm-project/odm/pkg/adw"
	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/objectstorage"
)

type exporterParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Storage       *objectstorage.Client
	ADW           *adw.Client
}

// Module provides an Exporter assembled from viper configuration and the
// storage and warehouse clients.
var Module = fx.Provide(
	func(v *viper.Viper, params exporterParams) (*Exporter, error) {
		config, err := NewConfig(
			WithViper(v),
			WithAnotherLog(params.AnotherLogger),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating exporter config: %w", err)
		}
		return NewExporter(config, params.Storage, params.ADW)
	})
