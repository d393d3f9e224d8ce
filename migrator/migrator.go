// Package migrator provisions the order-management schema, loads its seed
// data once and reports whether the store is ready for use.
//
// Every statement commits on its own. Re-running any operation is safe
// because each step is idempotent, not because steps are transactional.
package migrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ridoystarlord/ordermigrate/database"
	"github.com/ridoystarlord/ordermigrate/generator"
	"github.com/ridoystarlord/ordermigrate/introspect"
	"github.com/ridoystarlord/ordermigrate/loader"
	"github.com/ridoystarlord/ordermigrate/schema"
)

// Migrator runs against one caller-owned connection. It is not safe for
// concurrent use.
type Migrator struct {
	db          database.DB
	models      []schema.Model
	seed        *loader.SeedSet
	schemaName  string
	clearBefore bool
	logger      *slog.Logger
}

type Option func(*Migrator)

// WithSchema sets the namespace checked by the readiness query. Default "public".
func WithSchema(name string) Option {
	return func(m *Migrator) {
		if name != "" {
			m.schemaName = name
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Migrator) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSeed replaces the embedded seed data.
func WithSeed(seed *loader.SeedSet) Option {
	return func(m *Migrator) { m.seed = seed }
}

// WithModels replaces the table declarations.
func WithModels(models []schema.Model) Option {
	return func(m *Migrator) { m.models = models }
}

// WithClearBeforeSeed controls the DELETE issued on an empty table before its
// seed insert. Enabled by default.
func WithClearBeforeSeed(clear bool) Option {
	return func(m *Migrator) { m.clearBefore = clear }
}

// New returns a Migrator for db.
func New(db database.DB, opts ...Option) (*Migrator, error) {
	m := &Migrator{
		db:          db,
		models:      schema.Tables(),
		schemaName:  "public",
		clearBefore: true,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.seed == nil {
		seed, err := loader.DefaultSeed()
		if err != nil {
			return nil, fmt.Errorf("loading default seed data: %w", err)
		}
		m.seed = seed
	}
	return m, nil
}

// Run is the combined startup entry point: schema, readiness gate, seed.
// Seed failures are reported in the returned SeedReport and logged; they do
// not fail the run.
func (m *Migrator) Run(ctx context.Context) (SeedReport, error) {
	m.logger.Info("running database migrations")

	if err := m.EnsureSchema(ctx); err != nil {
		return SeedReport{}, fmt.Errorf("ensure schema: %w", err)
	}
	if !m.IsReady(ctx) {
		return SeedReport{}, ErrNotReady
	}

	report, err := m.EnsureSeedData(ctx)
	if err != nil {
		m.logger.Warn("seed data incomplete", "error", err)
	}
	m.logger.Info("migrations finished", "seeded", len(report.Seeded), "skipped", len(report.Skipped), "failed", len(report.Failed))
	return report, nil
}

// Plan returns the DDL EnsureSchema would send, in order.
func (m *Migrator) Plan() (string, error) {
	return generator.Script(m.models)
}

// RowCounts reports the number of rows in every required table.
func (m *Migrator) RowCounts(ctx context.Context) []introspect.TableCount {
	return introspect.CountAllRows(ctx, m.db, schema.RequiredTableNames(m.models))
}
