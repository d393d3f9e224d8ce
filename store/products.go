package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const productColumns = `id, name, COALESCE(description, ''), price, quantity, COALESCE(category, ''), created_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Category, &p.CreatedAt)
	return p, err
}

// CreateProduct inserts p and returns the generated id.
func (s *Store) CreateProduct(ctx context.Context, p Product) (int64, error) {
	const query = `
	INSERT INTO products (name, description, price, quantity, category)
	VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''))
	RETURNING id
	`

	var id int64
	err := s.db.QueryRow(ctx, query, p.Name, p.Description, p.Price.StringFixed(2), p.Quantity, p.Category).Scan(&id)
	if err != nil {
		return 0, mapError("create product", err)
	}
	return id, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(s.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return Product{}, mapError("get product", err)
	}
	return p, nil
}

// ListProducts returns every product ordered by id.
func (s *Store) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, mapError("list products", err)
	}
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, mapError("list products", err)
	}
	return products, nil
}

func (s *Store) UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	tag, err := s.db.Exec(ctx, `UPDATE products SET price = $1 WHERE id = $2`, price.StringFixed(2), id)
	return requireAffected("update product price", tag, err)
}

func (s *Store) UpdateProductQuantity(ctx context.Context, id int64, quantity int) error {
	tag, err := s.db.Exec(ctx, `UPDATE products SET quantity = $1 WHERE id = $2`, quantity, id)
	return requireAffected("update product quantity", tag, err)
}
