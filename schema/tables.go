package schema

const (
	OrderStatusTable = "order_status"
	ProductsTable    = "products"
	CustomersTable   = "customers"
	OrdersTable      = "orders"
)

func strPtr(s string) *string { return &s }

var currentTimestamp = strPtr("CURRENT_TIMESTAMP")

// Tables returns the order-management tables in dependency order: reference
// data first, then independent entities, then orders.
func Tables() []Model {
	return []Model{
		{
			TableName: OrderStatusTable,
			Columns: []Column{
				{Name: "id", Type: "SERIAL", Primary: true},
				{Name: "name", Type: "VARCHAR(50)", NotNull: true, Unique: true},
			},
		},
		{
			TableName: ProductsTable,
			Columns: []Column{
				{Name: "id", Type: "SERIAL", Primary: true},
				{Name: "name", Type: "VARCHAR(100)", NotNull: true},
				{Name: "description", Type: "TEXT"},
				{Name: "price", Type: "DECIMAL(10,2)", NotNull: true},
				{Name: "quantity", Type: "INTEGER", NotNull: true},
				{Name: "category", Type: "VARCHAR(100)"},
				{Name: "created_at", Type: "TIMESTAMP", Default: currentTimestamp},
			},
			Checks: []Check{
				{Name: "products_price_check", Expr: "price >= 0"},
				{Name: "products_quantity_check", Expr: "quantity >= 0"},
			},
			Indexes: []Index{
				{Name: "idx_products_category", Table: ProductsTable, Columns: []string{"category"}},
			},
		},
		{
			TableName: CustomersTable,
			Columns: []Column{
				{Name: "id", Type: "SERIAL", Primary: true},
				{Name: "first_name", Type: "VARCHAR(50)", NotNull: true},
				{Name: "last_name", Type: "VARCHAR(50)", NotNull: true},
				{Name: "phone", Type: "VARCHAR(20)"},
				{Name: "email", Type: "VARCHAR(100)", Unique: true},
				{Name: "created_at", Type: "TIMESTAMP", Default: currentTimestamp},
			},
			Indexes: []Index{
				{Name: "idx_customers_email", Table: CustomersTable, Columns: []string{"email"}},
			},
		},
		{
			TableName: OrdersTable,
			Columns: []Column{
				{Name: "id", Type: "SERIAL", Primary: true},
				{Name: "product_id", Type: "INTEGER", NotNull: true},
				{Name: "customer_id", Type: "INTEGER", NotNull: true},
				{Name: "status_id", Type: "INTEGER", NotNull: true},
				{Name: "quantity", Type: "INTEGER", NotNull: true},
				{Name: "total_amount", Type: "DECIMAL(10,2)", NotNull: true},
				{Name: "order_date", Type: "TIMESTAMP", Default: currentTimestamp},
			},
			Checks: []Check{
				{Name: "orders_quantity_check", Expr: "quantity > 0"},
				{Name: "orders_total_amount_check", Expr: "total_amount >= 0"},
			},
			ForeignKeys: []ForeignKey{
				{Name: "fk_order_product", Column: "product_id", ReferencesTable: ProductsTable, ReferencesColumn: "id"},
				{Name: "fk_order_customer", Column: "customer_id", ReferencesTable: CustomersTable, ReferencesColumn: "id"},
				{Name: "fk_order_status", Column: "status_id", ReferencesTable: OrderStatusTable, ReferencesColumn: "id"},
			},
			Indexes: []Index{
				{Name: "idx_orders_product_id", Table: OrdersTable, Columns: []string{"product_id"}},
				{Name: "idx_orders_customer_id", Table: OrdersTable, Columns: []string{"customer_id"}},
				{Name: "idx_orders_status_id", Table: OrdersTable, Columns: []string{"status_id"}},
				{Name: "idx_orders_date", Table: OrdersTable, Columns: []string{"order_date"}},
			},
		},
	}
}

// RequiredTableNames lists the tables whose presence means the store is ready.
func RequiredTableNames(models []Model) []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.TableName)
	}
	return names
}

// Reversed returns models in teardown order.
func Reversed(models []Model) []Model {
	out := make([]Model, len(models))
	for i, m := range models {
		out[len(models)-1-i] = m
	}
	return out
}
