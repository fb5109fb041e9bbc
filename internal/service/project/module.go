package project

import "go.uber.org/fx"

// Module provides the project service to Fx.
var Module = fx.Provide(NewService)
