package diff

import (
	"github.com/ridoystarlord/ordermigrate/introspect"
	"github.com/ridoystarlord/ordermigrate/schema"
)

type OperationType string

const (
	CreateTable   OperationType = "CREATE_TABLE"
	AddForeignKey OperationType = "ADD_FOREIGN_KEY"
	CreateIndex   OperationType = "CREATE_INDEX"
)

type Operation struct {
	Type       OperationType
	TableName  string
	Model      *schema.Model      // for CREATE_TABLE
	ForeignKey *schema.ForeignKey // for ADD_FOREIGN_KEY
	Index      *schema.Index      // for CREATE_INDEX
}

// Name is the schema object the operation creates.
func (op Operation) Name() string {
	switch op.Type {
	case AddForeignKey:
		return op.ForeignKey.Name
	case CreateIndex:
		return op.Index.Name
	default:
		return op.TableName
	}
}

// Plan returns every operation needed to build models from nothing: all
// tables in declaration order, then all foreign keys, then all indexes.
func Plan(models []schema.Model) []Operation {
	var tables, fks, indexes []Operation
	for i := range models {
		m := &models[i]
		tables = append(tables, Operation{Type: CreateTable, TableName: m.TableName, Model: m})
		for j := range m.ForeignKeys {
			fks = append(fks, Operation{Type: AddForeignKey, TableName: m.TableName, ForeignKey: &m.ForeignKeys[j]})
		}
		for j := range m.Indexes {
			indexes = append(indexes, Operation{Type: CreateIndex, TableName: m.TableName, Index: &m.Indexes[j]})
		}
	}

	ops := make([]Operation, 0, len(tables)+len(fks)+len(indexes))
	ops = append(ops, tables...)
	ops = append(ops, fks...)
	ops = append(ops, indexes...)
	return ops
}

// Missing returns the subset of Plan(models) not present in the snapshot.
// Objects are matched by name; definitions are not compared.
func Missing(models []schema.Model, snap introspect.Snapshot) []Operation {
	var missing []Operation
	for _, op := range Plan(models) {
		table, exists := snap.Tables[op.TableName]

		switch op.Type {
		case CreateTable:
			if !exists {
				missing = append(missing, op)
			}
		case AddForeignKey:
			if !exists || !hasForeignKey(table, op.ForeignKey.Name) {
				missing = append(missing, op)
			}
		case CreateIndex:
			if !exists || !hasIndex(table, op.Index.Name) {
				missing = append(missing, op)
			}
		}
	}
	return missing
}

func hasForeignKey(t introspect.ExistingTable, name string) bool {
	for _, fk := range t.ForeignKeys {
		if fk.ConstraintName == name {
			return true
		}
	}
	return false
}

func hasIndex(t introspect.ExistingTable, name string) bool {
	for _, idx := range t.Indexes {
		if idx.IndexName == name {
			return true
		}
	}
	return false
}
