package migrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ridoystarlord/ordermigrate/introspect"
	"github.com/ridoystarlord/ordermigrate/schema"
)

// SeedReport says what EnsureSeedData did per table.
type SeedReport struct {
	Seeded  []string
	Skipped []string
	Failed  map[string]error
}

type seedStep struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
	clear   bool
}

// EnsureSeedData inserts the baseline rows into every empty table, in
// dependency order. A table that already has rows is skipped. A failure on
// one table is logged and collected, and the remaining tables are still
// attempted; the returned error joins all failures.
func (m *Migrator) EnsureSeedData(ctx context.Context) (SeedReport, error) {
	report := SeedReport{Failed: map[string]error{}}

	var errs []error
	for _, step := range m.seedSteps() {
		seeded, err := m.seedTable(ctx, step)
		switch {
		case err != nil:
			m.logger.Error("seeding failed", "table", step.table, "error", err)
			report.Failed[step.table] = err
			errs = append(errs, fmt.Errorf("seed %s: %w", step.table, err))
		case seeded:
			report.Seeded = append(report.Seeded, step.table)
		default:
			report.Skipped = append(report.Skipped, step.table)
		}
	}

	return report, errors.Join(errs...)
}

func (m *Migrator) seedTable(ctx context.Context, step seedStep) (bool, error) {
	count, err := introspect.CountRows(ctx, m.db, step.table)
	if err != nil {
		return false, err
	}
	if count > 0 {
		m.logger.Info("seed data already present", "table", step.table, "rows", count)
		return false, nil
	}
	if len(step.rows) == 0 {
		m.logger.Info("no seed rows declared", "table", step.table)
		return false, nil
	}

	if step.clear && m.clearBefore {
		if _, err := m.db.Exec(ctx, "DELETE FROM "+pgx.Identifier{step.table}.Sanitize()); err != nil {
			m.logger.Warn("could not clear table before seeding", "table", step.table, "error", err)
		}
	}

	if err := m.insertRows(ctx, step); err != nil {
		return false, err
	}
	m.logger.Info("seed data inserted", "table", step.table, "rows", len(step.rows))
	return true, nil
}

// insertRows sends the whole batch as one multi-row INSERT with bound values.
func (m *Migrator) insertRows(ctx context.Context, step seedStep) error {
	cols := make([]string, len(step.columns))
	for i, c := range step.columns {
		cols[i] = pgx.Identifier{c}.Sanitize()
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(pgx.Identifier{step.table}.Sanitize())
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(step.rows)*len(step.columns))
	for i, row := range step.rows {
		if len(row) != len(step.columns) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(step.columns))
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			args = append(args, v)
			fmt.Fprintf(&b, "$%d", len(args))
		}
		b.WriteByte(')')
	}
	if step.suffix != "" {
		b.WriteString(" ")
		b.WriteString(step.suffix)
	}

	_, err := m.db.Exec(ctx, b.String(), args...)
	return err
}

// seedSteps builds one step per table in dependency order. Money values are
// bound as fixed two-place strings so the server parses them as numeric.
func (m *Migrator) seedSteps() []seedStep {
	statuses := make([][]any, 0, len(m.seed.OrderStatuses))
	for _, name := range m.seed.OrderStatuses {
		statuses = append(statuses, []any{name})
	}

	products := make([][]any, 0, len(m.seed.Products))
	for _, p := range m.seed.Products {
		products = append(products, []any{p.Name, p.Description, p.Price.StringFixed(2), p.Quantity, p.Category})
	}

	customers := make([][]any, 0, len(m.seed.Customers))
	for _, c := range m.seed.Customers {
		customers = append(customers, []any{c.FirstName, c.LastName, c.Phone, c.Email})
	}

	orders := make([][]any, 0, len(m.seed.Orders))
	for _, o := range m.seed.Orders {
		orders = append(orders, []any{o.ProductID, o.CustomerID, o.StatusID, o.Quantity, o.TotalAmount.StringFixed(2)})
	}

	return []seedStep{
		{
			table:   schema.OrderStatusTable,
			columns: []string{"name"},
			rows:    statuses,
			suffix:  "ON CONFLICT (name) DO NOTHING",
		},
		{
			table:   schema.ProductsTable,
			columns: []string{"name", "description", "price", "quantity", "category"},
			rows:    products,
			clear:   true,
		},
		{
			table:   schema.CustomersTable,
			columns: []string{"first_name", "last_name", "phone", "email"},
			rows:    customers,
			clear:   true,
		},
		{
			table:   schema.OrdersTable,
			columns: []string{"product_id", "customer_id", "status_id", "quantity", "total_amount"},
			rows:    orders,
			clear:   true,
		},
	}
}
