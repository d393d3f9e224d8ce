package schema

// Model declares one table. Foreign keys are kept apart from the column list
// because they are added only once every table exists.
type Model struct {
	TableName   string
	Columns     []Column
	Checks      []Check
	ForeignKeys []ForeignKey
	Indexes     []Index
}

type Column struct {
	Name    string
	Type    string
	Primary bool
	Unique  bool
	NotNull bool
	Default *string
}

// Check is a table-level CHECK constraint. Expr is trusted DDL text.
type Check struct {
	Name string
	Expr string
}

type ForeignKey struct {
	Name             string
	Column           string
	ReferencesTable  string
	ReferencesColumn string
	OnDelete         string // CASCADE, SET NULL, RESTRICT, etc.
	OnUpdate         string
}

type Index struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
	Type    string // btree, hash, gin, etc.
}

// Column returns the named column and whether it exists.
func (m Model) Column(name string) (Column, bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
