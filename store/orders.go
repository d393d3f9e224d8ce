package store

import (
	"context"
)

// CreateOrder inserts o and returns the generated id. Unknown product,
// customer or status ids yield ErrUnknownReference.
func (s *Store) CreateOrder(ctx context.Context, o Order) (int64, error) {
	const query = `
	INSERT INTO orders (product_id, customer_id, status_id, quantity, total_amount)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`

	var id int64
	err := s.db.QueryRow(ctx, query, o.ProductID, o.CustomerID, o.StatusID, o.Quantity, o.TotalAmount.StringFixed(2)).Scan(&id)
	if err != nil {
		return 0, mapError("create order", err)
	}
	return id, nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (Order, error) {
	const query = `
	SELECT id, product_id, customer_id, status_id, quantity, total_amount, order_date
	FROM orders
	WHERE id = $1
	`

	var o Order
	err := s.db.QueryRow(ctx, query, id).Scan(&o.ID, &o.ProductID, &o.CustomerID, &o.StatusID, &o.Quantity, &o.TotalAmount, &o.OrderDate)
	if err != nil {
		return Order{}, mapError("get order", err)
	}
	return o, nil
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	return requireAffected("delete order", tag, err)
}
