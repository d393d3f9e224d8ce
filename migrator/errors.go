package migrator

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotReady is returned by Run when the required tables are not all present
// after the schema step.
var ErrNotReady = errors.New("database is not ready: required tables are missing")

// ErrNoSequence is returned by ResetAndReseed when a table's id column is not
// backed by a sequence.
var ErrNoSequence = errors.New("id column has no owned sequence")

// ErrorKind groups store errors by how the migrator reacts to them.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindAlreadyExists
	KindDuplicate
	KindConnection
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAlreadyExists:
		return "already_exists"
	case KindDuplicate:
		return "duplicate"
	case KindConnection:
		return "connection"
	default:
		return "other"
	}
}

// Classify maps err to a kind using the SQLSTATE reported by the server.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.DuplicateTable, pgerrcode.DuplicateObject, pgerrcode.DuplicateSchema:
			return KindAlreadyExists
		case pgerrcode.UniqueViolation:
			return KindDuplicate
		}
		if pgerrcode.IsConnectionException(pgErr.Code) {
			return KindConnection
		}
		return KindOther
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return KindConnection
	}
	return KindOther
}

// IsAlreadyExists reports whether err means the object being created exists.
func IsAlreadyExists(err error) bool {
	return Classify(err) == KindAlreadyExists
}

// IsDuplicate reports whether err is a unique violation.
func IsDuplicate(err error) bool {
	return Classify(err) == KindDuplicate
}

// A concurrent CREATE TABLE IF NOT EXISTS can surface as a unique violation
// on the catalog rather than duplicate_table.
func isIdempotentDDLError(err error) bool {
	switch Classify(err) {
	case KindAlreadyExists, KindDuplicate:
		return true
	}
	return false
}
