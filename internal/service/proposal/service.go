package proposal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/bidentry/internal/cache"
	"github.com/Additional-Code/bidentry/internal/config"
	"github.com/Additional-Code/bidentry/internal/entity"
	repo "github.com/Additional-Code/bidentry/internal/repository/proposal"
	"github.com/Additional-Code/bidentry/pkg/errorbank"
)

// CachePrefix namespaces every cached proposal entry. A reseed flushes it.
const CachePrefix = cache.ProposalPrefix

var serviceTracer = otel.Tracer("github.com/Additional-Code/bidentry/service/proposal")

// Service serves seeded proposals with a read-through cache.
type Service struct {
	repo     *repo.Repository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:     p.Repository,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		logger:   p.Logger,
	}
}

// List returns all proposals in id order.
func (s *Service) List(ctx context.Context) ([]entity.Proposal, error) {
	ctx, span := serviceTracer.Start(ctx, "ProposalService.List")
	defer span.End()

	key := CachePrefix + "all"
	var proposals []entity.Proposal
	if err := s.readCache(ctx, key, &proposals); err == nil {
		return proposals, nil
	}

	proposals, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, mapError(err)
	}

	s.writeCache(ctx, key, proposals)
	return proposals, nil
}

// Get retrieves a proposal by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Proposal, error) {
	ctx, span := serviceTracer.Start(ctx, "ProposalService.Get", trace.WithAttributes(attribute.Int64("proposal.id", id)))
	defer span.End()

	key := fmt.Sprintf("%s%d", CachePrefix, id)
	var cached entity.Proposal
	if err := s.readCache(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	proposal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "repository error")
		}
		return nil, mapError(err)
	}

	s.writeCache(ctx, key, proposal)
	return proposal, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return errorbank.NotFound("proposal not found")
	case errors.Is(err, repo.ErrNotInitialized):
		return errorbank.Unavailable("database has not been seeded", errorbank.WithCause(err))
	default:
		return errorbank.Internal("failed to load proposals", errorbank.WithCause(err))
	}
}

func (s *Service) readCache(ctx context.Context, key string, dest any) error {
	if s.cache == nil {
		return cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) && s.logger != nil {
			s.logger.Warn("proposals cache read failed", zap.String("key", key), zap.Error(err))
		}
		return err
	}
	return json.Unmarshal(bytes, dest)
}

func (s *Service) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	bytes, err := json.Marshal(value)
	if err == nil {
		err = s.cache.Set(ctx, key, bytes, s.cacheTTL)
	}
	if err != nil && s.logger != nil {
		s.logger.Warn("proposals cache write failed", zap.String("key", key), zap.Error(err))
	}
}
