package proposal

import "go.uber.org/fx"

// Module provides the proposal service to Fx.
var Module = fx.Provide(NewService)
