package seeder

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/uptrace/bun/dialect"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/bidentry/internal/cache"
	"github.com/Additional-Code/bidentry/internal/config"
	"github.com/Additional-Code/bidentry/internal/database"
	"github.com/Additional-Code/bidentry/internal/messaging"
	"github.com/Additional-Code/bidentry/internal/seeddata"
)

const instrumentationName = "github.com/Additional-Code/bidentry/seeder"

// Store is the storage context the seeder issues statements through.
type Store interface {
	Execute(ctx context.Context, query string, args ...any) (sql.Result, error)
	RetrieveValue(ctx context.Context, dest any, query string, args ...any) error
	Dialect() dialect.Name
}

// Seeder resets the project and proposal tables and fills them from seed data.
type Seeder struct {
	store     Store
	data      seeddata.Data
	logger    *zap.Logger
	publisher messaging.Client
	cache     cache.Store
	tracer    trace.Tracer
	inserted  metric.Int64Counter
}

// Option customises a Seeder.
type Option func(*Seeder)

// WithLogger enables progress messages.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Seeder) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPublisher announces every completed reset on the message bus.
func WithPublisher(publisher messaging.Client) Option {
	return func(s *Seeder) {
		s.publisher = publisher
	}
}

// WithCache drops the cached project and proposal reads held in store once
// a reset succeeds.
func WithCache(store cache.Store) Option {
	return func(s *Seeder) {
		s.cache = store
	}
}

// WithTracerProvider records spans through tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Seeder) {
		if tp != nil {
			s.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// Params defines dependencies for constructing a Seeder through Fx.
type Params struct {
	fx.In

	Context   *database.Context
	Data      seeddata.Data
	Config    config.Config
	Logger    *zap.Logger
	Publisher messaging.Client `optional:"true"`
	Cache     cache.Store      `optional:"true"`
}

// Module provides the Seeder to Fx.
var Module = fx.Provide(Provide)

// Provide builds a Seeder from configuration. Progress messages are only
// wired in when seed logging is enabled.
func Provide(p Params) *Seeder {
	var opts []Option
	if p.Config.Seed.EnableLogging && p.Logger != nil {
		opts = append(opts, WithLogger(p.Logger.Named("seeder")))
	}
	if p.Config.Messaging.Enabled && p.Publisher != nil {
		opts = append(opts, WithPublisher(p.Publisher))
	}
	if p.Cache != nil {
		opts = append(opts, WithCache(p.Cache))
	}
	return New(p.Context, p.Data, opts...)
}

// New constructs a Seeder over store. Without WithLogger it is silent.
func New(store Store, data seeddata.Data, opts ...Option) *Seeder {
	s := &Seeder{
		store:  store,
		data:   data,
		logger: zap.NewNop(),
		tracer: otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}

	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"bidentry.seeder.rows_inserted",
		metric.WithDescription("Rows inserted by the seeder"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		s.logger.Warn("seeder metrics disabled", zap.Error(err))
		counter, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("bidentry.seeder.rows_inserted")
	}
	s.inserted = counter

	return s
}

// Initialize drops, recreates and fills the project table, then the proposal
// table. Statements run one at a time in that order. The first failure is
// returned as produced by the store and nothing after it runs; a table
// already recreated keeps the rows inserted before the failure.
func (s *Seeder) Initialize(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "Seeder.Initialize", trace.WithAttributes(
		attribute.String("db.system", s.store.Dialect().String()),
		attribute.Int("seed.projects", len(s.data.Projects)),
		attribute.Int("seed.proposals", len(s.data.Proposals)),
	))
	defer span.End()

	if err := s.seedTable(ctx, projectTable, projectRows(s.data.Projects)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "seed project failed")
		return err
	}

	if n := countUnstored(s.data.Proposals); n > 0 {
		s.logger.Debug("ignoring proposal fields without columns",
			zap.Int("records", n),
			zap.Strings("fields", []string{"diversity", "union", "prevBidder"}),
		)
	}

	if err := s.seedTable(ctx, proposalTable, proposalRows(s.data.Proposals)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "seed proposal failed")
		return err
	}

	s.logger.Info("Database successfully initialized!")

	s.flushCache(ctx)
	s.publishSeeded(ctx)
	return nil
}

func (s *Seeder) seedTable(ctx context.Context, t table, rows [][]any) error {
	ctx, span := s.tracer.Start(ctx, "Seeder.seedTable", trace.WithAttributes(
		attribute.String("db.sql.table", t.name),
		attribute.Int("seed.rows", len(rows)),
	))
	defer span.End()

	d := s.store.Dialect()

	exists, err := s.tableExists(ctx, t.name)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if exists {
		s.logger.Info("Dropping the " + t.name + " table...")
		if _, err := s.store.Execute(ctx, t.dropStatement(d)); err != nil {
			span.RecordError(err)
			return err
		}
	}

	s.logger.Info("Creating the " + t.name + " table...")
	if _, err := s.store.Execute(ctx, t.createStatement(d)); err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.Info("Creating the " + t.name + " records...")
	insert := t.insertStatement(d)
	tableAttr := metric.WithAttributes(attribute.String("table", t.name))
	for i, row := range rows {
		if _, err := s.store.Execute(ctx, insert, row...); err != nil {
			span.RecordError(err, trace.WithAttributes(attribute.Int("seed.row_index", i)))
			return err
		}
		s.inserted.Add(ctx, 1, tableAttr)
	}

	return nil
}

func (s *Seeder) tableExists(ctx context.Context, name string) (bool, error) {
	s.logger.Info("Checking if the " + name + " table exists...")

	query, err := existsStatement(s.store.Dialect())
	if err != nil {
		return false, err
	}

	var exists bool
	if err := s.store.RetrieveValue(ctx, &exists, query, name); err != nil {
		return false, err
	}
	return exists, nil
}

// flushCache runs after the tables are committed, so a failed flush leaves
// the seed in place and is only logged.
func (s *Seeder) flushCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, prefix := range []string{cache.ProjectPrefix, cache.ProposalPrefix} {
		if err := s.cache.Flush(ctx, prefix); err != nil {
			s.logger.Warn("flush cached reads", zap.String("prefix", prefix), zap.Error(err))
		}
	}
}

func (s *Seeder) publishSeeded(ctx context.Context) {
	if s.publisher == nil {
		return
	}
	event := NewSeededEvent(len(s.data.Projects), len(s.data.Proposals))
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal seeded event", zap.Error(err))
		return
	}
	header := messaging.Header{Key: messaging.HeaderEventType, Value: SeededEventType}
	if err := s.publisher.Publish(ctx, []byte(SeededEventKey), payload, header); err != nil {
		s.logger.Error("publish seeded event", zap.Error(err))
	}
}

func projectRows(projects []seeddata.Project) [][]any {
	rows := make([][]any, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []any{p.Name})
	}
	return rows
}

// proposalRows follows proposalTable's column order. Diversity, Union and
// PrevBidder are never bound.
func proposalRows(proposals []seeddata.Proposal) [][]any {
	rows := make([][]any, 0, len(proposals))
	for _, p := range proposals {
		rows = append(rows, []any{
			p.CompanyName,
			p.ContactName,
			p.Address,
			p.City,
			p.State,
			p.Zip.String(),
			p.EmailAddress,
			p.PhoneNumber,
		})
	}
	return rows
}

func countUnstored(proposals []seeddata.Proposal) int {
	n := 0
	for _, p := range proposals {
		if p.HasUnstoredFields() {
			n++
		}
	}
	return n
}
