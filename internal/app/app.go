package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/bidentry/internal/cache"
	"github.com/Additional-Code/bidentry/internal/config"
	"github.com/Additional-Code/bidentry/internal/database"
	"github.com/Additional-Code/bidentry/internal/logger"
	"github.com/Additional-Code/bidentry/internal/messaging"
	"github.com/Additional-Code/bidentry/internal/observability"
	projectrepo "github.com/Additional-Code/bidentry/internal/repository/project"
	proposalrepo "github.com/Additional-Code/bidentry/internal/repository/proposal"
	"github.com/Additional-Code/bidentry/internal/seeddata"
	"github.com/Additional-Code/bidentry/internal/seeder"
	grpcserver "github.com/Additional-Code/bidentry/internal/server/grpc"
	httpserver "github.com/Additional-Code/bidentry/internal/server/http"
	projectsvc "github.com/Additional-Code/bidentry/internal/service/project"
	proposalsvc "github.com/Additional-Code/bidentry/internal/service/proposal"
	transporthttp "github.com/Additional-Code/bidentry/internal/transport/http"
	"github.com/Additional-Code/bidentry/internal/worker"
	workerseed "github.com/Additional-Code/bidentry/internal/worker/seed"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
)

// Read exposes the project and proposal read paths.
var Read = fx.Options(
	projectrepo.Module,
	proposalrepo.Module,
	projectsvc.Module,
	proposalsvc.Module,
)

// HTTP wires the HTTP and gRPC servers on top of the core modules.
var HTTP = fx.Options(
	Core,
	Read,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerseed.Module,
)

// Seed resets and fills the database. The observability manager is forced
// so the seeder's spans and counters reach the configured exporters.
var Seed = fx.Options(
	Core,
	seeddata.Module,
	seeder.Module,
	fx.Invoke(func(*observability.Manager) {}),
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
