package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/odm-project/odm/pkg/configutils"
)

const envPrefix = "ODM_AGENT"

func configProvider(cli *cobra.Command) fx.Option {
	return configutils.ProvideViperFromFile(envPrefix, cli.Flags(), configFilePath)
}
