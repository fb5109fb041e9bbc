package project

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
	repo "github.com/Additional-Code/bidentry/internal/repository/project"
	"github.com/Additional-Code/bidentry/pkg/errorbank"
)

// CachePrefix namespaces every cached project entry. A reseed flushes it.
const CachePrefix = cache.ProjectPrefix

var serviceTracer = otel.Tracer("github.com/Additional-Code/bidentry/service/project")

// Service serves seeded projects with a read-through cache.
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

// List returns all projects in id order.
func (s *Service) List(ctx context.Context) ([]entity.Project, error) {
	ctx, span := serviceTracer.Start(ctx, "ProjectService.List")
	defer span.End()

	key := CachePrefix + "all"
	var projects []entity.Project
	if err := s.readCache(ctx, key, &projects); err == nil {
		return projects, nil
	}

	projects, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, mapError(err)
	}

	s.writeCache(ctx, key, projects)
	return projects, nil
}

// Get retrieves a project by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Project, error) {
	ctx, span := serviceTracer.Start(ctx, "ProjectService.Get", trace.WithAttributes(attribute.Int64("project.id", id)))
	defer span.End()

	key := fmt.Sprintf("%s%d", CachePrefix, id)
	var cached entity.Project
	if err := s.readCache(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "repository error")
		}
		return nil, mapError(err)
	}

	s.writeCache(ctx, key, project)
	return project, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return errorbank.NotFound("project not found")
	case errors.Is(err, repo.ErrNotInitialized):
		return errorbank.Unavailable("database has not been seeded", errorbank.WithCause(err))
	default:
		return errorbank.Internal("failed to load projects", errorbank.WithCause(err))
	}
}

func (s *Service) readCache(ctx context.Context, key string, dest any) error {
	if s.cache == nil {
		return cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) && s.logger != nil {
			s.logger.Warn("projects cache read failed", zap.String("key", key), zap.Error(err))
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
		s.logger.Warn("projects cache write failed", zap.String("key", key), zap.Error(err))
	}
}
