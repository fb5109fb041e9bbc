package proposal

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

var repoTracer = otel.Tracer("github.com/Additional-Code/bidentry/repository/proposal")

var (
	// ErrNotFound is returned when a proposal is missing.
	ErrNotFound = errors.New("proposal not found")
	// ErrNotInitialized is returned when the proposal table does not exist yet.
	ErrNotInitialized = errors.New("proposal table not initialized")
)

// Repository reads seeded proposals.
type Repository struct {
	reader *bun.DB
}

// NewRepository wires a repository backed by the read connection.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{reader: conns.Reader}
}

// List returns every proposal in id order.
func (r *Repository) List(ctx context.Context) ([]entity.Proposal, error) {
	ctx, span := repoTracer.Start(ctx, "ProposalRepository.List")
	defer span.End()

	proposals := make([]entity.Proposal, 0)
	err := r.reader.NewSelect().Model(&proposals).Order("id ASC").Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, translate(err)
	}
	span.SetAttributes(attribute.Int("proposal.count", len(proposals)))
	return proposals, nil
}

// GetByID fetches a proposal by primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Proposal, error) {
	ctx, span := repoTracer.Start(ctx, "ProposalRepository.GetByID", trace.WithAttributes(attribute.Int64("proposal.id", id)))
	defer span.End()

	proposal := new(entity.Proposal)
	err := r.reader.NewSelect().Model(proposal).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, translate(err)
	}
	return proposal, nil
}

func translate(err error) error {
	if database.IsUndefinedTable(err) {
		return ErrNotInitialized
	}
	return err
}
