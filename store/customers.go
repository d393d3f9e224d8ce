package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, first_name, last_name, COALESCE(phone, ''), COALESCE(email, ''), created_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.CreatedAt)
	return c, err
}

// CreateCustomer inserts c and returns the generated id. A taken email
// yields ErrDuplicateEmail.
func (s *Store) CreateCustomer(ctx context.Context, c Customer) (int64, error) {
	const query = `
	INSERT INTO customers (first_name, last_name, phone, email)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
	RETURNING id
	`

	var id int64
	if err := s.db.QueryRow(ctx, query, c.FirstName, c.LastName, c.Phone, c.Email).Scan(&id); err != nil {
		return 0, mapError("create customer", err)
	}
	return id, nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	c, err := scanCustomer(s.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		return Customer{}, mapError("get customer", err)
	}
	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := s.db.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, mapError("list customers", err)
	}
	customers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Customer, error) {
		return scanCustomer(row)
	})
	if err != nil {
		return nil, mapError("list customers", err)
	}
	return customers, nil
}
