package dataloader

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/odm-project/odm/pkg/adw"
	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/objectstorage"
)

type loaderParams struct {
	fx.In

	AnotherLogger logging.Interface `name:"another_log"`
	Storage       *objectstorage.Client
	ADW           *adw.Client
}

// Module provides a DataLoader assembled from viper configuration and the
// storage and warehouse clients.
var Module = fx.Provide(
	func(v *viper.Viper, params loaderParams) (*DataLoader, error) {
		config, err := NewConfig(
			WithViper(v),
			WithAnotherLog(params.AnotherLogger),
		)
		if err != nil {
			return nil, fmt.Errorf("error creating data loader config: %w", err)
		}
		return NewDataLoader(config, params.Storage, params.ADW)
	})
