package migrator

import (
	"context"

	"github.com/ridoystarlord/ordermigrate/introspect"
	"github.com/ridoystarlord/ordermigrate/schema"
)

// IsReady reports whether every required table exists in the configured
// schema. A failed catalog query counts as not ready.
func (m *Migrator) IsReady(ctx context.Context) bool {
	required := schema.RequiredTableNames(m.models)

	found, err := introspect.CountTables(ctx, m.db, m.schemaName, required)
	if err != nil {
		m.logger.Error("readiness check failed", "error", err)
		return false
	}

	m.logger.Info("required tables found", "found", found, "required", len(required), "schema", m.schemaName)
	return found == len(required)
}
