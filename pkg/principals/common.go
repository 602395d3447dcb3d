package principals

import (
	"os"

	"github.com/odm-project/odm/pkg/logging"
)

// Opts carries the dependencies used while constructing principals.
type Opts struct {
	// Factory creates the underlying oci-go-sdk configuration providers.
	// Defaults to the common & auth package implementations when unset.
	Factory Factory

	// Log is the logger.
	Log logging.Interface
}

func (opts Opts) factory() Factory {
	if opts.Factory != nil {
		return opts.Factory
	}

	return defaultFactory
}

func (opts Opts) log() logging.Interface {
	if opts.Log != nil {
		return opts.Log
	}

	return logging.Discard()
}

// setEnvOverride exports an SDK environment override when the configured
// value is non-empty. The SDK reads these during provider construction.
func setEnvOverride(opts Opts, key, value string) {
	if value == "" {
		return
	}
	if err := os.Setenv(key, value); err != nil {
		opts.log().WithError(err).Warnf("Failed to set %s", key)
	}
}
