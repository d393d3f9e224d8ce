package validator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/ordermigrate/schema"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Column   string `json:"column,omitempty"`
	Object   string `json:"object,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning"
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

// Err returns the first error, or nil if the declarations are valid.
func (r *ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	if len(r.Errors) == 1 {
		return r.Errors[0]
	}
	return fmt.Errorf("%w (and %d more)", r.Errors[0], len(r.Errors)-1)
}

func (r *ValidationResult) addError(typ, table, column, msg string) {
	r.Errors = append(r.Errors, ValidationError{Type: typ, Table: table, Column: column, Message: msg, Severity: "error"})
}

func (r *ValidationResult) addWarning(typ, table, msg string) {
	r.Warnings = append(r.Warnings, ValidationError{Type: typ, Table: table, Message: msg, Severity: "warning"})
}

// ValidateModels checks table declarations before any DDL is sent.
func ValidateModels(models []schema.Model) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	declared := make(map[string]schema.Model, len(models))
	for _, m := range models {
		if _, dup := declared[m.TableName]; dup {
			result.addError("duplicate_table", m.TableName, "", fmt.Sprintf("Table '%s' is declared more than once", m.TableName))
		}
		declared[m.TableName] = m
	}

	objectNames := map[string]string{}
	claim := func(table, name string) {
		if owner, taken := objectNames[name]; taken {
			result.addError("duplicate_object", table, "", fmt.Sprintf("Object name '%s' is used by both '%s' and '%s'", name, owner, table))
			return
		}
		objectNames[name] = table
	}

	for _, m := range models {
		validateModel(m, declared, result)
		for _, chk := range m.Checks {
			claim(m.TableName, chk.Name)
		}
		for _, fk := range m.ForeignKeys {
			claim(m.TableName, fk.Name)
		}
		for _, idx := range m.Indexes {
			claim(m.TableName, idx.Name)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateModel(m schema.Model, declared map[string]schema.Model, result *ValidationResult) {
	if err := validateIdentifier("table", m.TableName); err != nil {
		result.addError("table_name", m.TableName, "", err.Error())
	}

	if len(m.Columns) == 0 {
		result.addError("no_columns", m.TableName, "", fmt.Sprintf("Table '%s' must have at least one column", m.TableName))
		return
	}

	columnNames := make(map[string]bool)
	hasPrimaryKey := false
	for _, col := range m.Columns {
		if columnNames[col.Name] {
			result.addError("duplicate_column", m.TableName, col.Name, fmt.Sprintf("Duplicate column name '%s' in table '%s'", col.Name, m.TableName))
			continue
		}
		columnNames[col.Name] = true

		if err := validateIdentifier("column", col.Name); err != nil {
			result.addError("column_name", m.TableName, col.Name, err.Error())
		}
		if err := validateDataType(col.Type); err != nil {
			result.addError("data_type", m.TableName, col.Name, err.Error())
		}
		if col.Primary {
			hasPrimaryKey = true
		}
	}

	if !hasPrimaryKey {
		result.addWarning("no_primary_key", m.TableName, fmt.Sprintf("Table '%s' has no primary key defined", m.TableName))
	}

	for _, chk := range m.Checks {
		if strings.TrimSpace(chk.Expr) == "" {
			result.addError("check", m.TableName, "", fmt.Sprintf("Check '%s' on '%s' has an empty expression", chk.Name, m.TableName))
		}
	}

	for _, fk := range m.ForeignKeys {
		if !columnNames[fk.Column] {
			result.addError("foreign_key", m.TableName, fk.Column, fmt.Sprintf("Foreign key '%s' uses unknown column '%s.%s'", fk.Name, m.TableName, fk.Column))
		}
		ref, ok := declared[fk.ReferencesTable]
		if !ok {
			result.addError("foreign_key", m.TableName, fk.Column, fmt.Sprintf("Foreign key '%s' references undeclared table '%s'", fk.Name, fk.ReferencesTable))
			continue
		}
		if _, ok := ref.Column(fk.ReferencesColumn); !ok {
			result.addError("foreign_key", m.TableName, fk.Column, fmt.Sprintf("Foreign key '%s' references unknown column '%s.%s'", fk.Name, fk.ReferencesTable, fk.ReferencesColumn))
		}
	}

	for _, idx := range m.Indexes {
		if idx.Table != m.TableName {
			result.addError("index", m.TableName, "", fmt.Sprintf("Index '%s' is declared on '%s' but targets '%s'", idx.Name, m.TableName, idx.Table))
		}
		if len(idx.Columns) == 0 {
			result.addError("index", m.TableName, "", fmt.Sprintf("Index '%s' has no columns", idx.Name))
		}
		for _, c := range idx.Columns {
			if !columnNames[c] {
				result.addError("index", m.TableName, c, fmt.Sprintf("Index '%s' uses unknown column '%s'", idx.Name, c))
			}
		}
	}
}

// validateIdentifier applies PostgreSQL identifier rules.
func validateIdentifier(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}

	if len(name) > 63 {
		return fmt.Errorf("%s name '%s' is too long (max 63 characters)", kind, name)
	}

	for _, char := range name {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '_') {
			return fmt.Errorf("%s name '%s' contains invalid character '%c'", kind, name, char)
		}
	}

	if kind == "table" {
		reservedKeywords := []string{"user", "order", "group", "table", "index", "view", "schema"}
		for _, keyword := range reservedKeywords {
			if strings.EqualFold(name, keyword) {
				return fmt.Errorf("table name '%s' is a reserved keyword", name)
			}
		}
	}

	return nil
}

// validateDataType accepts the PostgreSQL types the declarations use; a
// precision suffix such as (10,2) is ignored.
func validateDataType(dataType string) error {
	validTypes := map[string]bool{
		"smallint": true, "integer": true, "int": true, "bigint": true,
		"decimal": true, "numeric": true, "real": true, "double precision": true,
		"serial": true, "bigserial": true, "smallserial": true,
		"character varying": true, "varchar": true, "character": true, "char": true,
		"text": true,
		"timestamp": true, "timestamptz": true, "date": true,
		"boolean": true, "bool": true,
		"json": true, "jsonb": true, "uuid": true,
	}

	base := strings.ToLower(strings.TrimSpace(dataType))
	if i := strings.Index(base, "("); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	if !validTypes[base] {
		return fmt.Errorf("unsupported data type '%s'", dataType)
	}
	return nil
}
