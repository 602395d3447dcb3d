package configutils

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// ProvideViperFromFile provides an fx module for creating a viper instance
// from the given config file. An empty configFilePath falls back to the
// LocateConfigFile search path.
func ProvideViperFromFile(envPrefix string, pflags *pflag.FlagSet, configFilePath string) fx.Option {
	return fx.Provide(func() (*viper.Viper, error) {
		v := viper.New()

		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if pflags != nil {
			if err := v.BindPFlag("debug", pflags.Lookup("debug")); err != nil {
				return nil, fmt.Errorf("can't bind debug flag: %w", err)
			}
		}

		path, err := LocateConfigFile(configFilePath)
		if err != nil {
			return nil, err
		}

		if err := ResolveAndMergeFile(v, path); err != nil {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}

		// UnmarshalKey ignores AutomaticEnv, so pin every key's effective
		// value (environment included) back into the viper.
		for _, key := range v.AllKeys() {
			v.Set(key, v.Get(key))
		}

		return v, nil
	})
}
