package http

import (
	"go.uber.org/fx"

	projecttransport "github.com/Additional-Code/bidentry/internal/transport/http/project"
	proposaltransport "github.com/Additional-Code/bidentry/internal/transport/http/proposal"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	projecttransport.Module,
	proposaltransport.Module,
)
