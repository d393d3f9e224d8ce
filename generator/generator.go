package generator

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ridoystarlord/ordermigrate/diff"
	"github.com/ridoystarlord/ordermigrate/schema"
)

// GenerateSQL converts a list of Operations into idempotent DDL statements.
func GenerateSQL(ops []diff.Operation) ([]string, error) {
	sqlStatements := make([]string, 0, len(ops))
	for _, op := range ops {
		stmt, err := Statement(op)
		if err != nil {
			return nil, err
		}
		sqlStatements = append(sqlStatements, stmt)
	}
	return sqlStatements, nil
}

// Statement renders a single operation.
func Statement(op diff.Operation) (string, error) {
	switch op.Type {
	case diff.CreateTable:
		if op.Model == nil {
			return "", fmt.Errorf("generate CREATE TABLE %s: model is nil", op.TableName)
		}
		return CreateTable(*op.Model), nil

	case diff.AddForeignKey:
		if op.ForeignKey == nil {
			return "", fmt.Errorf("generate ADD FOREIGN KEY on %s: foreign key is nil", op.TableName)
		}
		return AddForeignKey(op.TableName, *op.ForeignKey), nil

	case diff.CreateIndex:
		if op.Index == nil {
			return "", fmt.Errorf("generate CREATE INDEX on %s: index is nil", op.TableName)
		}
		return CreateIndex(*op.Index), nil

	default:
		return "", fmt.Errorf("unsupported operation: %s", op.Type)
	}
}

// CreateTable renders CREATE TABLE IF NOT EXISTS with column and CHECK
// constraints. Foreign keys are left out on purpose; see AddForeignKey.
func CreateTable(m schema.Model) string {
	var defs []string
	for _, col := range m.Columns {
		def := quote(col.Name) + " " + col.Type
		if col.Primary {
			def += " PRIMARY KEY"
		}
		if col.Unique {
			def += " UNIQUE"
		}
		if col.NotNull {
			def += " NOT NULL"
		}
		if col.Default != nil {
			def += " DEFAULT " + *col.Default
		}
		defs = append(defs, def)
	}
	for _, chk := range m.Checks {
		defs = append(defs, fmt.Sprintf("CONSTRAINT %s CHECK (%s)", quote(chk.Name), chk.Expr))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n)", quote(m.TableName), strings.Join(defs, ",\n  "))
}

// AddForeignKey renders ALTER TABLE ... ADD CONSTRAINT ... FOREIGN KEY.
// Postgres has no IF NOT EXISTS form for this; callers tolerate duplicate_object.
func AddForeignKey(table string, fk schema.ForeignKey) string {
	stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		quote(table),
		quote(fk.Name),
		quote(fk.Column),
		quote(fk.ReferencesTable),
		quote(fk.ReferencesColumn),
	)
	if fk.OnDelete != "" {
		stmt += " ON DELETE " + fk.OnDelete
	}
	if fk.OnUpdate != "" {
		stmt += " ON UPDATE " + fk.OnUpdate
	}
	return stmt
}

// CreateIndex renders CREATE INDEX IF NOT EXISTS.
func CreateIndex(idx schema.Index) string {
	stmt := "CREATE"
	if idx.Unique {
		stmt += " UNIQUE"
	}
	stmt += " INDEX IF NOT EXISTS " + quote(idx.Name) + " ON " + quote(idx.Table)

	if idx.Type != "" && idx.Type != "btree" {
		stmt += " USING " + idx.Type
	}

	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		cols[i] = quote(c)
	}
	return stmt + " (" + strings.Join(cols, ", ") + ")"
}

// Script renders the whole plan as one SQL script, for dry runs.
func Script(models []schema.Model) (string, error) {
	stmts, err := GenerateSQL(diff.Plan(models))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(s)
		b.WriteString(";\n")
	}
	return b.String(), nil
}

func quote(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}
