package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed_BatchSizes(t *testing.T) {
	set, err := DefaultSeed()
	require.NoError(t, err)

	assert.Equal(t, []string{"New", "Confirmed", "Processing", "Shipped", "Delivered", "Cancelled"}, set.OrderStatuses)
	assert.Len(t, set.Products, 10)
	assert.Len(t, set.Customers, 10)
	assert.Len(t, set.Orders, 10)
}

func TestDefaultSeed_RespectsStorageConstraints(t *testing.T) {
	set, err := DefaultSeed()
	require.NoError(t, err)

	emails := map[string]bool{}
	for _, c := range set.Customers {
		assert.False(t, emails[c.Email], "duplicate email %s", c.Email)
		emails[c.Email] = true
	}
	for _, p := range set.Products {
		assert.False(t, p.Price.IsNegative(), p.Name)
		assert.GreaterOrEqual(t, p.Quantity, 0, p.Name)
		assert.Equal(t, int32(-2), p.Price.Exponent(), "price %s should have two decimal places", p.Price)
	}
	for i, o := range set.Orders {
		assert.Positive(t, o.Quantity, "orders[%d]", i)
		assert.LessOrEqual(t, o.ProductID, int64(len(set.Products)))
		assert.LessOrEqual(t, o.CustomerID, int64(len(set.Customers)))
		assert.LessOrEqual(t, o.StatusID, int64(len(set.OrderStatuses)))
	}
}

func TestLoadSeed_Values(t *testing.T) {
	set, err := LoadSeed([]byte(`
order_status: [Open]
products:
  - {name: Widget, description: A widget, price: "9.99", quantity: 3, category: Tools}
customers:
  - {first_name: Ada, last_name: Lovelace, phone: "+1", email: ada@example.com}
orders:
  - {product_id: 1, customer_id: 1, status_id: 1, quantity: 2, total_amount: "19.98"}
`))
	require.NoError(t, err)

	require.Len(t, set.Products, 1)
	assert.True(t, set.Products[0].Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, CustomerSeed{FirstName: "Ada", LastName: "Lovelace", Phone: "+1", Email: "ada@example.com"}, set.Customers[0])
	assert.True(t, set.Orders[0].TotalAmount.Equal(decimal.RequireFromString("19.98")))
}

func TestLoadSeed_InvalidPrice(t *testing.T) {
	_, err := LoadSeed([]byte(`products: [{name: Widget, price: "cheap"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid price "cheap"`)
}

func TestLoadSeed_InvalidYAML(t *testing.T) {
	_, err := LoadSeed([]byte("orders: {"))
	require.Error(t, err)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("order_status: [A, B]\n"), 0o600))

	set, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, set.OrderStatuses)
	assert.Empty(t, set.Products)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
