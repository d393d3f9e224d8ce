package migrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/ordermigrate/loader"
	"github.com/ridoystarlord/ordermigrate/testutil"
)

func insertFor(db *testutil.FakeDB, table string) (testutil.Call, bool) {
	for _, c := range db.Calls {
		if c.Kind == "exec" && strings.HasPrefix(c.SQL, `INSERT INTO "`+table+`"`) {
			return c, true
		}
	}
	return testutil.Call{}, false
}

func TestEnsureSeedData_EmptyStore(t *testing.T) {
	db := &testutil.FakeDB{}
	m := newTestMigrator(t, db)

	report, err := m.EnsureSeedData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"order_status", "products", "customers", "orders"}, report.Seeded)
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Failed)

	statuses, ok := insertFor(db, "order_status")
	require.True(t, ok)
	assert.Equal(t,
		`INSERT INTO "order_status" ("name") VALUES ($1), ($2), ($3), ($4), ($5), ($6) ON CONFLICT (name) DO NOTHING`,
		statuses.SQL)
	assert.Equal(t, []any{"New", "Confirmed", "Processing", "Shipped", "Delivered", "Cancelled"}, statuses.Args)

	products, ok := insertFor(db, "products")
	require.True(t, ok)
	assert.Len(t, products.Args, 50)
	assert.Equal(t, "45000.00", products.Args[2])
	assert.Contains(t, products.SQL, "($46, $47, $48, $49, $50)")

	customers, ok := insertFor(db, "customers")
	require.True(t, ok)
	assert.Len(t, customers.Args, 40)

	orders, ok := insertFor(db, "orders")
	require.True(t, ok)
	assert.Len(t, orders.Args, 50)
	assert.NotContains(t, orders.SQL, "ON CONFLICT")
}

func TestEnsureSeedData_DependencyOrder(t *testing.T) {
	db := &testutil.FakeDB{}
	m := newTestMigrator(t, db)

	_, err := m.EnsureSeedData(context.Background())
	require.NoError(t, err)

	status := db.IndexOf(`INSERT INTO "order_status"`)
	products := db.IndexOf(`INSERT INTO "products"`)
	customers := db.IndexOf(`INSERT INTO "customers"`)
	orders := db.IndexOf(`INSERT INTO "orders"`)
	assert.True(t, status < products && products < customers && customers < orders)

	assert.Equal(t, products-1, db.IndexOf(`DELETE FROM "products"`))
	assert.Equal(t, orders-1, db.IndexOf(`DELETE FROM "orders"`))
	assert.Equal(t, -1, db.IndexOf(`DELETE FROM "order_status"`))
}

func TestEnsureSeedData_SkipsPopulatedTables(t *testing.T) {
	db := &testutil.FakeDB{
		RowCounts: map[string]int64{"order_status": 6, "products": 3},
	}
	m := newTestMigrator(t, db)

	report, err := m.EnsureSeedData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"order_status", "products"}, report.Skipped)
	assert.Equal(t, []string{"customers", "orders"}, report.Seeded)

	_, ok := insertFor(db, "products")
	assert.False(t, ok)
	assert.Equal(t, -1, db.IndexOf(`DELETE FROM "products"`))
}

func TestEnsureSeedData_SecondRunIsNoop(t *testing.T) {
	db := &testutil.FakeDB{}
	m := newTestMigrator(t, db)

	_, err := m.EnsureSeedData(context.Background())
	require.NoError(t, err)

	db.Calls = nil
	db.RowCounts = map[string]int64{"order_status": 6, "products": 10, "customers": 10, "orders": 10}

	report, err := m.EnsureSeedData(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Seeded)
	assert.Len(t, report.Skipped, 4)
	assert.Empty(t, db.Execs())
}

func TestEnsureSeedData_BestEffort(t *testing.T) {
	db := &testutil.FakeDB{
		ExecErr:     failOn(`INSERT INTO "customers"`, pgErr(pgerrcode.UniqueViolation)),
		RowCountErr: map[string]error{"products": errors.New("permission denied")},
	}
	m := newTestMigrator(t, db)

	report, err := m.EnsureSeedData(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed customers")
	assert.Contains(t, err.Error(), "seed products")
	assert.True(t, IsDuplicate(err))

	assert.Equal(t, []string{"order_status", "orders"}, report.Seeded)
	assert.Len(t, report.Failed, 2)
	assert.Contains(t, report.Failed, "products")
	assert.Contains(t, report.Failed, "customers")
}

func TestEnsureSeedData_ClearFailureIsTolerated(t *testing.T) {
	db := &testutil.FakeDB{
		ExecErr: failOn("DELETE FROM", pgErr(pgerrcode.ForeignKeyViolation)),
	}
	m := newTestMigrator(t, db)

	report, err := m.EnsureSeedData(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Seeded, 4)
}

func TestEnsureSeedData_WithoutClear(t *testing.T) {
	db := &testutil.FakeDB{}
	m := newTestMigrator(t, db, WithClearBeforeSeed(false))

	_, err := m.EnsureSeedData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -1, db.IndexOf("DELETE FROM"))
}

func TestEnsureSeedData_CustomSeed(t *testing.T) {
	seed := &loader.SeedSet{
		OrderStatuses: []string{"Open"},
		Products: []loader.ProductSeed{
			{Name: "Pen", Price: decimal.RequireFromString("1.5"), Quantity: 3, Category: "Office"},
		},
	}
	db := &testutil.FakeDB{}
	m := newTestMigrator(t, db, WithSeed(seed))

	report, err := m.EnsureSeedData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"order_status", "products"}, report.Seeded)
	assert.Equal(t, []string{"customers", "orders"}, report.Skipped)

	products, ok := insertFor(db, "products")
	require.True(t, ok)
	assert.Equal(t, []any{"Pen", "", "1.50", 3, "Office"}, products.Args)
}
