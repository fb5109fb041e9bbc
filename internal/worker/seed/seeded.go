package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/bidentry/internal/cache"
	"github.com/Additional-Code/bidentry/internal/config"
	"github.com/Additional-Code/bidentry/internal/messaging"
	"github.com/Additional-Code/bidentry/internal/seeder"
	projectsvc "github.com/Additional-Code/bidentry/internal/service/project"
	proposalsvc "github.com/Additional-Code/bidentry/internal/service/proposal"
	"github.com/Additional-Code/bidentry/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/bidentry/worker/seed")

// Module registers the seed-event worker handler.
var Module = fx.Module("worker_seed",
	fx.Provide(
		fx.Annotate(
			NewSeededHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewSeededHandler drops every cached project and proposal read once the
// tables have been reset.
func NewSeededHandler(logger *zap.Logger, cfg config.Config, store cache.Store) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.seed.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event seeder.SeededEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode seeded event", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		for _, prefix := range []string{projectsvc.CachePrefix, proposalsvc.CachePrefix} {
			if err := store.Flush(ctx, prefix); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "cache flush failed")
				return fmt.Errorf("flush %s: %w", prefix, err)
			}
		}

		logger.Info("seeded event processed",
			zap.Int("projects", event.Projects),
			zap.Int("proposals", event.Proposals),
			zap.Time("seeded_at", event.SeededAt),
		)

		return nil
	}

	return worker.HandlerRegistration{
		Topic:     cfg.Messaging.Kafka.Topic,
		EventType: seeder.SeededEventType,
		Handler:   handler,
	}
}
