package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ridoystarlord/ordermigrate/database"
)

type ExistingTable struct {
	TableName   string
	ForeignKeys []ExistingForeignKey
	Indexes     []ExistingIndex
}

type ExistingForeignKey struct {
	ConstraintName   string
	ColumnName       string
	ReferencesTable  string
	ReferencesColumn string
}

type ExistingIndex struct {
	IndexName string
	TableName string
	Columns   []string
	IsUnique  bool
}

// Snapshot is the catalog view of one schema.
type Snapshot struct {
	Schema string
	Tables map[string]ExistingTable
}

// HasTable reports whether name exists in the snapshot.
func (s Snapshot) HasTable(name string) bool {
	_, ok := s.Tables[name]
	return ok
}

// TableCount is a per-table row count. Err is set when counting failed.
type TableCount struct {
	Table string
	Rows  int64
	Err   error
}

// CountTables returns how many of names exist as tables in schemaName.
func CountTables(ctx context.Context, db database.DB, schemaName string, names []string) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM information_schema.tables
	WHERE table_schema = $1 AND table_name = ANY($2)
	`

	var count int64
	if err := db.QueryRow(ctx, query, schemaName, names).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting tables: %w", err)
	}
	return int(count), nil
}

// CountRows returns the number of rows in table.
func CountRows(ctx context.Context, db database.DB, table string) (int64, error) {
	query := "SELECT COUNT(*) FROM " + pgx.Identifier{table}.Sanitize()

	var count int64
	if err := db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting rows in %s: %w", table, err)
	}
	return count, nil
}

// CountAllRows counts every table independently; one failure does not stop the rest.
func CountAllRows(ctx context.Context, db database.DB, tables []string) []TableCount {
	counts := make([]TableCount, 0, len(tables))
	for _, t := range tables {
		n, err := CountRows(ctx, db, t)
		counts = append(counts, TableCount{Table: t, Rows: n, Err: err})
	}
	return counts
}

// TakeSnapshot reads tables, foreign keys and indexes of schemaName.
func TakeSnapshot(ctx context.Context, db database.Querier, schemaName string) (Snapshot, error) {
	const tablesQuery = `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = $1 AND table_type = 'BASE TABLE'
	ORDER BY table_name
	`

	rows, err := db.Query(ctx, tablesQuery, schemaName)
	if err != nil {
		return Snapshot{}, fmt.Errorf("querying tables: %w", err)
	}
	tableNames, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return Snapshot{}, fmt.Errorf("scanning table names: %w", err)
	}

	snap := Snapshot{Schema: schemaName, Tables: make(map[string]ExistingTable, len(tableNames))}
	for _, tableName := range tableNames {
		foreignKeys, err := getForeignKeys(ctx, db, schemaName, tableName)
		if err != nil {
			return Snapshot{}, fmt.Errorf("getting foreign keys for table %s: %w", tableName, err)
		}

		indexes, err := getIndexes(ctx, db, schemaName, tableName)
		if err != nil {
			return Snapshot{}, fmt.Errorf("getting indexes for table %s: %w", tableName, err)
		}

		snap.Tables[tableName] = ExistingTable{
			TableName:   tableName,
			ForeignKeys: foreignKeys,
			Indexes:     indexes,
		}
	}

	return snap, nil
}

func getForeignKeys(ctx context.Context, db database.Querier, schemaName, tableName string) ([]ExistingForeignKey, error) {
	const foreignKeysQuery = `
	SELECT
		tc.constraint_name,
		kcu.column_name,
		ccu.table_name AS foreign_table_name,
		ccu.column_name AS foreign_column_name
	FROM information_schema.table_constraints AS tc
	JOIN information_schema.key_column_usage AS kcu
		ON tc.constraint_name = kcu.constraint_name
		AND tc.table_schema = kcu.table_schema
	JOIN information_schema.constraint_column_usage AS ccu
		ON ccu.constraint_name = tc.constraint_name
		AND ccu.table_schema = tc.table_schema
	WHERE tc.constraint_type = 'FOREIGN KEY'
		AND tc.table_schema = $1
		AND tc.table_name = $2
	ORDER BY tc.constraint_name
	`

	rows, err := db.Query(ctx, foreignKeysQuery, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying foreign keys: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ExistingForeignKey, error) {
		var fk ExistingForeignKey
		err := row.Scan(&fk.ConstraintName, &fk.ColumnName, &fk.ReferencesTable, &fk.ReferencesColumn)
		return fk, err
	})
}

func getIndexes(ctx context.Context, db database.Querier, schemaName, tableName string) ([]ExistingIndex, error) {
	const indexesQuery = `
	SELECT
		ic.relname AS index_name,
		array_to_string(array_agg(a.attname ORDER BY a.attnum), ',') AS column_names,
		idx.indisunique
	FROM pg_index idx
	JOIN pg_class ic ON ic.oid = idx.indexrelid
	JOIN pg_class tc ON tc.oid = idx.indrelid
	JOIN pg_namespace n ON n.oid = tc.relnamespace
	JOIN pg_attribute a ON a.attrelid = idx.indrelid AND a.attnum = ANY(idx.indkey)
	WHERE n.nspname = $1 AND tc.relname = $2
	GROUP BY ic.relname, idx.indisunique
	ORDER BY ic.relname
	`

	rows, err := db.Query(ctx, indexesQuery, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying indexes: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ExistingIndex, error) {
		idx := ExistingIndex{TableName: tableName}
		var columnNames string
		if err := row.Scan(&idx.IndexName, &columnNames, &idx.IsUnique); err != nil {
			return idx, err
		}
		idx.Columns = splitColumns(columnNames)
		return idx, nil
	})
}

func splitColumns(indexDef string) []string {
	columns := strings.Split(indexDef, ",")
	for i, col := range columns {
		columns[i] = strings.TrimSpace(col)
	}
	return columns
}
