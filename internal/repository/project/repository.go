package project

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/bidentry/internal/database"
	"github.com/Additional-Code/bidentry/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/bidentry/repository/project")

var (
	// ErrNotFound is returned when a project is missing.
	ErrNotFound = errors.New("project not found")
	// ErrNotInitialized is returned when the project table does not exist yet.
	ErrNotInitialized = errors.New("project table not initialized")
)

// Repository reads seeded projects.
type Repository struct {
	reader *bun.DB
}

// NewRepository wires a repository backed by the read connection.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{reader: conns.Reader}
}

// List returns every project in id order.
func (r *Repository) List(ctx context.Context) ([]entity.Project, error) {
	ctx, span := repoTracer.Start(ctx, "ProjectRepository.List")
	defer span.End()

	projects := make([]entity.Project, 0)
	err := r.reader.NewSelect().Model(&projects).Order("id ASC").Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, translate(err)
	}
	span.SetAttributes(attribute.Int("project.count", len(projects)))
	return projects, nil
}

// GetByID fetches a project by primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	ctx, span := repoTracer.Start(ctx, "ProjectRepository.GetByID", trace.WithAttributes(attribute.Int64("project.id", id)))
	defer span.End()

	project := new(entity.Project)
	err := r.reader.NewSelect().Model(project).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, translate(err)
	}
	return project, nil
}

func translate(err error) error {
	if database.IsUndefinedTable(err) {
		return ErrNotInitialized
	}
	return err
}
