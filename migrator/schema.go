package migrator

import (
	"context"
	"fmt"

	"github.com/ridoystarlord/ordermigrate/database"
	"github.com/ridoystarlord/ordermigrate/diff"
	"github.com/ridoystarlord/ordermigrate/generator"
	"github.com/ridoystarlord/ordermigrate/introspect"
	"github.com/ridoystarlord/ordermigrate/validator"
)

// EnsureSchema creates every table, then the foreign keys between them, then
// the secondary indexes. Objects that already exist are left alone; any other
// failure stops the run before later phases start.
func (m *Migrator) EnsureSchema(ctx context.Context) error {
	result := validator.ValidateModels(m.models)
	for _, w := range result.Warnings {
		m.logger.Warn("table declaration warning", "table", w.Table, "message", w.Message)
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid table declarations: %w", err)
	}

	for _, op := range diff.Plan(m.models) {
		stmt, err := generator.Statement(op)
		if err != nil {
			return err
		}
		if err := m.execDDL(ctx, op, stmt); err != nil {
			return err
		}
	}

	m.logger.Info("schema ensured", "tables", len(m.models))
	return nil
}

func (m *Migrator) execDDL(ctx context.Context, op diff.Operation, stmt string) error {
	_, err := m.db.Exec(ctx, stmt)
	switch {
	case err == nil:
		m.logger.Info("applied", "operation", op.Type, "object", op.Name())
		return nil
	case isIdempotentDDLError(err):
		m.logger.Info("already exists", "operation", op.Type, "object", op.Name())
		return nil
	default:
		return fmt.Errorf("%s %s: %w", op.Type, op.Name(), err)
	}
}

// MissingObjects lists declared tables, foreign keys and indexes absent from
// the catalog. It needs a connection that supports multi-row queries.
func (m *Migrator) MissingObjects(ctx context.Context) ([]diff.Operation, error) {
	q, ok := m.db.(database.Querier)
	if !ok {
		return nil, fmt.Errorf("catalog snapshot needs a multi-row query connection, got %T", m.db)
	}
	snap, err := introspect.TakeSnapshot(ctx, q, m.schemaName)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return diff.Missing(m.models, snap), nil
}
