package migrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/ordermigrate/testutil"
)

func TestResetAndReseed(t *testing.T) {
	db := &testutil.FakeDB{}
	m := newTestMigrator(t, db)

	report, err := m.ResetAndReseed(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Seeded, 4)

	execs := db.Execs()
	require.GreaterOrEqual(t, len(execs), 4)
	assert.Equal(t, []string{
		`DELETE FROM "orders"`,
		`DELETE FROM "customers"`,
		`DELETE FROM "products"`,
		`DELETE FROM "order_status"`,
	}, execs[:4])

	var sequences []any
	for _, c := range db.Calls {
		if c.SQL == restartSequenceSQL {
			require.Len(t, c.Args, 1)
			sequences = append(sequences, c.Args[0])
		}
	}
	assert.Equal(t, []any{`"orders"`, `"customers"`, `"products"`, `"order_status"`}, sequences)

	lastRestart, firstInsert := -1, -1
	for i, c := range db.Calls {
		switch {
		case c.SQL == restartSequenceSQL:
			assert.Equal(t, "query", c.Kind)
			lastRestart = i
		case firstInsert < 0 && strings.HasPrefix(c.SQL, `INSERT INTO "order_status"`):
			firstInsert = i
		}
	}
	require.NotEqual(t, -1, lastRestart)
	assert.Less(t, lastRestart, firstInsert)
}

func TestResetAndReseed_DeleteFailureStops(t *testing.T) {
	db := &testutil.FakeDB{
		ExecErr: failOn(`DELETE FROM "customers"`, errors.New("lock timeout")),
	}
	m := newTestMigrator(t, db)

	_, err := m.ResetAndReseed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clearing customers")

	assert.Equal(t, []string{`DELETE FROM "orders"`, `DELETE FROM "customers"`}, db.Execs())
}

func TestResetAndReseed_SequenceFailure(t *testing.T) {
	db := &testutil.FakeDB{
		QueryErr: failOn("SELECT setval", errors.New("permission denied for sequence")),
	}
	m := newTestMigrator(t, db)

	_, err := m.ResetAndReseed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restarting id sequence of orders")
	assert.Equal(t, -1, db.IndexOf("INSERT"))
}

func TestResetAndReseed_Repeatable(t *testing.T) {
	db := &testutil.FakeDB{}
	m := newTestMigrator(t, db)

	_, err := m.ResetAndReseed(context.Background())
	require.NoError(t, err)
	first := len(db.Execs())

	_, err = m.ResetAndReseed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2*first, len(db.Execs()))
}

func TestResetAndReseed_TableWithoutSequence(t *testing.T) {
	db := &testutil.FakeDB{MissingSequences: map[string]bool{`"products"`: true}}
	m := newTestMigrator(t, db)

	_, err := m.ResetAndReseed(context.Background())
	require.ErrorIs(t, err, ErrNoSequence)
	assert.Contains(t, err.Error(), "restarting id sequence of products")
	assert.Equal(t, -1, db.IndexOf("INSERT"))

	var restarted []any
	for _, c := range db.Calls {
		if c.SQL == restartSequenceSQL {
			restarted = append(restarted, c.Args[0])
		}
	}
	assert.Equal(t, []any{`"orders"`, `"customers"`, `"products"`}, restarted)
}
