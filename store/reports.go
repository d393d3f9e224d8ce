package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OrderSummary is an order joined with the names it references.
type OrderSummary struct {
	ID           int64
	ProductName  string
	CustomerName string
	Status       string
	Quantity     int
	TotalAmount  decimal.Decimal
	OrderDate    *time.Time
}

type PopularProduct struct {
	Name      string
	Category  string
	UnitsSold int64
	Revenue   decimal.Decimal
}

type OrderStats struct {
	TotalOrders       int64
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
	FirstOrder        *time.Time
	LastOrder         *time.Time
}

type CustomerStats struct {
	TotalCustomers     int64
	UniqueEmails       int64
	CustomersWithPhone int64
}

// RecentOrders returns up to limit orders, newest first.
func (s *Store) RecentOrders(ctx context.Context, limit int) ([]OrderSummary, error) {
	const query = `
	SELECT o.id, p.name, c.first_name || ' ' || c.last_name, os.name,
		o.quantity, o.total_amount, o.order_date
	FROM orders o
	JOIN products p ON o.product_id = p.id
	JOIN customers c ON o.customer_id = c.id
	JOIN order_status os ON o.status_id = os.id
	ORDER BY o.order_date DESC, o.id DESC
	LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, mapError("recent orders", err)
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (OrderSummary, error) {
		var o OrderSummary
		err := row.Scan(&o.ID, &o.ProductName, &o.CustomerName, &o.Status, &o.Quantity, &o.TotalAmount, &o.OrderDate)
		return o, err
	})
	if err != nil {
		return nil, mapError("recent orders", err)
	}
	return orders, nil
}

// PopularProducts ranks products by units ordered.
func (s *Store) PopularProducts(ctx context.Context, limit int) ([]PopularProduct, error) {
	const query = `
	SELECT p.name, COALESCE(p.category, ''), SUM(o.quantity), SUM(o.total_amount)
	FROM products p
	JOIN orders o ON p.id = o.product_id
	GROUP BY p.id, p.name, p.category
	ORDER BY SUM(o.quantity) DESC, p.id
	LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, mapError("popular products", err)
	}
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (PopularProduct, error) {
		var p PopularProduct
		err := row.Scan(&p.Name, &p.Category, &p.UnitsSold, &p.Revenue)
		return p, err
	})
	if err != nil {
		return nil, mapError("popular products", err)
	}
	return products, nil
}

func (s *Store) OrderStatistics(ctx context.Context) (OrderStats, error) {
	const query = `
	SELECT COUNT(*),
		COALESCE(SUM(total_amount), 0),
		COALESCE(ROUND(AVG(total_amount), 2), 0),
		MIN(order_date),
		MAX(order_date)
	FROM orders
	`

	var st OrderStats
	err := s.db.QueryRow(ctx, query).Scan(&st.TotalOrders, &st.TotalRevenue, &st.AverageOrderValue, &st.FirstOrder, &st.LastOrder)
	if err != nil {
		return OrderStats{}, mapError("order statistics", err)
	}
	return st, nil
}

func (s *Store) CustomerStatistics(ctx context.Context) (CustomerStats, error) {
	const query = `
	SELECT COUNT(*), COUNT(DISTINCT email), COUNT(phone)
	FROM customers
	`

	var st CustomerStats
	if err := s.db.QueryRow(ctx, query).Scan(&st.TotalCustomers, &st.UniqueEmails, &st.CustomersWithPhone); err != nil {
		return CustomerStats{}, mapError("customer statistics", err)
	}
	return st, nil
}
