package seed_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/bidentry/internal/cache"
	"github.com/Additional-Code/bidentry/internal/config"
	"github.com/Additional-Code/bidentry/internal/messaging"
	"github.com/Additional-Code/bidentry/internal/seeder"
	"github.com/Additional-Code/bidentry/internal/worker"
	"github.com/Additional-Code/bidentry/internal/worker/seed"
)

func TestSeededEventFlushesReadCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore(time.Minute)
	for _, key := range []string{"projects:all", "projects:1", "proposals:2", "sessions:abc"} {
		require.NoError(t, store.Set(ctx, key, []byte("x"), 0))
	}

	cfg := config.Config{Messaging: config.Messaging{Kafka: config.Kafka{Topic: "bidentry.events"}}}
	reg := seed.NewSeededHandler(zap.NewNop(), cfg, store)
	assert.Equal(t, "bidentry.events", reg.Topic)
	assert.Equal(t, seeder.SeededEventType, reg.EventType)

	engine := worker.NewEngine(worker.Params{Logger: zap.NewNop(), Registrations: []worker.HandlerRegistration{reg}})

	payload, err := json.Marshal(seeder.NewSeededEvent(4, 3))
	require.NoError(t, err)
	msg := messaging.Message{
		Topic:   "bidentry.events",
		Value:   payload,
		Headers: map[string]string{messaging.HeaderEventType: seeder.SeededEventType},
	}
	require.NoError(t, engine.Dispatch(ctx, msg))

	for _, key := range []string{"projects:all", "projects:1", "proposals:2"} {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrCacheMiss, key)
	}
	_, err = store.Get(ctx, "sessions:abc")
	assert.NoError(t, err)
}

func TestSeededHandlerRejectsBadPayload(t *testing.T) {
	reg := seed.NewSeededHandler(zap.NewNop(), config.Config{}, cache.NewMemoryStore(0))

	err := reg.Handler(context.Background(), messaging.Message{Value: []byte("{")})
	assert.Error(t, err)
}
