// Package store holds the parameterized queries the application runs once
// the migrator has certified the database ready.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ridoystarlord/ordermigrate/database"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateEmail     = errors.New("customer email already registered")
	ErrUnknownReference   = errors.New("referenced record does not exist")
	ErrConstraintViolated = errors.New("value violates a table constraint")
)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Category    string
	CreatedAt   *time.Time
}

type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Phone     string
	Email     string
	CreatedAt *time.Time
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Order struct {
	ID          int64
	ProductID   int64
	CustomerID  int64
	StatusID    int64
	Quantity    int
	TotalAmount decimal.Decimal
	OrderDate   *time.Time
}

// Store runs queries on a caller-owned connection.
type Store struct {
	db database.Querier
}

func New(db database.Querier) *Store {
	return &Store{db: db}
}

// mapError turns server errors the caller can act on into sentinels. The
// original error stays in the chain.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if pgErr.TableName == "customers" || pgErr.ConstraintName == "customers_email_key" {
				return fmt.Errorf("%s: %w: %w", op, ErrDuplicateEmail, err)
			}
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%s: %w: %w", op, ErrUnknownReference, err)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return fmt.Errorf("%s: %w: %w", op, ErrConstraintViolated, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireAffected(op string, tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
