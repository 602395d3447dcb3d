package afero

import (
	"go.uber.org/fx"
)

var fs = NewOsFs()

// Module makes the process-wide OS filesystem available to fx apps.
var Module fx.Option = fx.Provide(
	func() Fs { return fs },
)
