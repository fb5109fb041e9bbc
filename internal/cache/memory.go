package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in process. It backs the "memory" driver used by
// single-instance deployments and tests.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore returns an empty in-process store. Entries set without a TTL
// use defaultTTL; a non-positive defaultTTL keeps them until deleted.
func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	cleanup := defaultTTL
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &MemoryStore{items: gocache.New(defaultTTL, cleanup)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), v.([]byte)...), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.items.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *MemoryStore) Flush(_ context.Context, prefix string) error {
	if prefix == "" {
		return ErrEmptyPrefix
	}
	for key := range m.items.Items() {
		if strings.HasPrefix(key, prefix) {
			m.items.Delete(key)
		}
	}
	return nil
}
