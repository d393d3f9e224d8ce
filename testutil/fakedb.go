package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Call is one statement seen by FakeDB.
type Call struct {
	Kind string // "exec" or "query"
	SQL  string
	Args []any
}

// FakeDB records statements and answers COUNT(*) queries from fixed data.
// It satisfies database.DB.
type FakeDB struct {
	Calls []Call

	// TableCount answers the information_schema readiness query.
	TableCount    int64
	TableCountErr error

	// RowCounts answers SELECT COUNT(*) FROM "<table>".
	RowCounts   map[string]int64
	RowCountErr map[string]error

	// ExecErr, when set, decides the error for each Exec.
	ExecErr func(sql string) error

	// QueryErr, when set, decides the error for each QueryRow.
	QueryErr func(sql string) error

	// MissingSequences lists quoted table names whose id sequence lookup
	// yields NULL. Every other table has one.
	MissingSequences map[string]bool
}

func (f *FakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.Calls = append(f.Calls, Call{Kind: "exec", SQL: sql, Args: args})
	if f.ExecErr != nil {
		if err := f.ExecErr(sql); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (f *FakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.Calls = append(f.Calls, Call{Kind: "query", SQL: sql, Args: args})

	if f.QueryErr != nil {
		if err := f.QueryErr(sql); err != nil {
			return fakeRow{err: err}
		}
	}
	if strings.Contains(sql, "pg_get_serial_sequence") {
		if len(args) > 0 {
			if name, ok := args[0].(string); ok && f.MissingSequences[name] {
				return fakeRow{null: true}
			}
		}
		return fakeRow{val: 1}
	}
	if strings.Contains(sql, "information_schema.tables") {
		return fakeRow{val: f.TableCount, err: f.TableCountErr}
	}
	for table, err := range f.RowCountErr {
		if strings.HasSuffix(sql, pgx.Identifier{table}.Sanitize()) {
			return fakeRow{err: err}
		}
	}
	for table, n := range f.RowCounts {
		if strings.HasSuffix(sql, pgx.Identifier{table}.Sanitize()) {
			return fakeRow{val: n}
		}
	}
	return fakeRow{}
}

// Execs returns the SQL of every Exec call, in order.
func (f *FakeDB) Execs() []string {
	var out []string
	for _, c := range f.Calls {
		if c.Kind == "exec" {
			out = append(out, c.SQL)
		}
	}
	return out
}

// IndexOf returns the position of the first Exec whose SQL has prefix, or -1.
func (f *FakeDB) IndexOf(prefix string) int {
	for i, sql := range f.Execs() {
		if strings.HasPrefix(sql, prefix) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the position of the last Exec whose SQL has prefix, or -1.
func (f *FakeDB) LastIndexOf(prefix string) int {
	last := -1
	for i, sql := range f.Execs() {
		if strings.HasPrefix(sql, prefix) {
			last = i
		}
	}
	return last
}

type fakeRow struct {
	val  int64
	null bool
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 1 {
		return fmt.Errorf("fake row: expected 1 destination, got %d", len(dest))
	}
	if d, ok := dest[0].(**int64); ok {
		if r.null {
			*d = nil
			return nil
		}
		v := r.val
		*d = &v
		return nil
	}
	if r.null {
		return fmt.Errorf("fake row: cannot scan NULL into %T", dest[0])
	}
	switch d := dest[0].(type) {
	case *int64:
		*d = r.val
	case *int:
		*d = int(r.val)
	default:
		return fmt.Errorf("fake row: unsupported destination %T", dest[0])
	}
	return nil
}
