package migrator

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ridoystarlord/ordermigrate/schema"
)

const restartSequenceSQL = `SELECT setval(pg_get_serial_sequence($1, 'id'), 1, false)`

// ResetAndReseed deletes all rows in reverse dependency order, restarts the
// id sequences at 1 and loads the seed data again. A failing step is
// returned; rows deleted before it stay deleted. Calling it again is safe.
func (m *Migrator) ResetAndReseed(ctx context.Context) (SeedReport, error) {
	m.logger.Warn("resetting all order data")

	teardown := schema.Reversed(m.models)
	for _, t := range teardown {
		if _, err := m.db.Exec(ctx, "DELETE FROM "+pgx.Identifier{t.TableName}.Sanitize()); err != nil {
			return SeedReport{}, fmt.Errorf("clearing %s: %w", t.TableName, err)
		}
		m.logger.Info("table cleared", "table", t.TableName)
	}

	for _, t := range teardown {
		// setval on a NULL sequence name returns NULL instead of failing.
		var restarted *int64
		if err := m.db.QueryRow(ctx, restartSequenceSQL, pgx.Identifier{t.TableName}.Sanitize()).Scan(&restarted); err != nil {
			return SeedReport{}, fmt.Errorf("restarting id sequence of %s: %w", t.TableName, err)
		}
		if restarted == nil {
			return SeedReport{}, fmt.Errorf("restarting id sequence of %s: %w", t.TableName, ErrNoSequence)
		}
	}
	m.logger.Info("id sequences restarted")

	return m.EnsureSeedData(ctx)
}
