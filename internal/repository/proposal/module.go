package proposal

import "go.uber.org/fx"

// Module provides the proposal repository to Fx.
var Module = fx.Provide(NewRepository)
