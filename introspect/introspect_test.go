package introspect

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/ordermigrate/testutil"
)

func TestCountTables(t *testing.T) {
	db := &testutil.FakeDB{TableCount: 3}

	n, err := CountTables(context.Background(), db, "public", []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.Len(t, db.Calls, 1)
	assert.Contains(t, db.Calls[0].SQL, "table_name = ANY($2)")
	assert.Equal(t, []any{"public", []string{"a", "b", "c", "d"}}, db.Calls[0].Args)
}

func TestCountTables_Error(t *testing.T) {
	db := &testutil.FakeDB{TableCountErr: errors.New("no connection")}

	_, err := CountTables(context.Background(), db, "public", []string{"orders"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counting tables")
}

func TestCountRows_QuotesTable(t *testing.T) {
	db := &testutil.FakeDB{RowCounts: map[string]int64{`weird"name`: 7}}

	n, err := CountRows(context.Background(), db, `weird"name`)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, `SELECT COUNT(*) FROM "weird""name"`, db.Calls[0].SQL)
	assert.Empty(t, db.Calls[0].Args)
}

func TestCountAllRows(t *testing.T) {
	db := &testutil.FakeDB{
		RowCounts:   map[string]int64{"products": 10, "orders": 2},
		RowCountErr: map[string]error{"customers": errors.New("permission denied")},
	}

	counts := CountAllRows(context.Background(), db, []string{"products", "customers", "orders"})
	require.Len(t, counts, 3)

	assert.Equal(t, TableCount{Table: "products", Rows: 10}, counts[0])
	assert.Equal(t, "customers", counts[1].Table)
	assert.ErrorContains(t, counts[1].Err, "counting rows in customers")
	assert.Equal(t, TableCount{Table: "orders", Rows: 2}, counts[2])
}

func TestSnapshotHasTable(t *testing.T) {
	snap := Snapshot{Tables: map[string]ExistingTable{"orders": {TableName: "orders"}}}

	assert.True(t, snap.HasTable("orders"))
	assert.False(t, snap.HasTable("products"))
}

func TestSplitColumns(t *testing.T) {
	assert.Equal(t, []string{"customer_id", "order_date"}, splitColumns("customer_id, order_date"))
	assert.Equal(t, []string{"id"}, splitColumns("id"))
}
