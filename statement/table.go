package statement

import (
	"strings"

	"github.com/samber/lo"
)

type IdentityInsert string

const (
	IdentityInsertOn  IdentityInsert = "ON"
	IdentityInsertOff IdentityInsert = "OFF"
)

// SetIdentityInsertStatement allows or forbids explicit values in a table's
// identity column.
type SetIdentityInsertStatement struct {
	catalogName string
	schemaName  string
	tableName   string
	value       IdentityInsert
}

func NewSetIdentityInsertStatement(catalogName, schemaName, tableName string, value IdentityInsert) SetIdentityInsertStatement {
	return SetIdentityInsertStatement{
		catalogName: catalogName,
		schemaName:  schemaName,
		tableName:   tableName,
		value:       value,
	}
}

func (s SetIdentityInsertStatement) Kind() Kind            { return KindSetIdentityInsert }
func (s SetIdentityInsertStatement) CatalogName() string   { return s.catalogName }
func (s SetIdentityInsertStatement) SchemaName() string    { return s.schemaName }
func (s SetIdentityInsertStatement) TableName() string     { return s.tableName }
func (s SetIdentityInsertStatement) Value() IdentityInsert { return s.value }

// ColumnValue is one column of a row. A nil Value is written as NULL.
type ColumnValue struct {
	Name  string
	Value any
}

// InsertOrUpdateStatement writes a row, updating it when a row with the same
// primary key already exists.
type InsertOrUpdateStatement struct {
	catalogName string
	schemaName  string
	tableName   string
	primaryKey  string
	columns     []ColumnValue
	onlyUpdate  bool
}

// NewInsertOrUpdateStatement takes primaryKey as a comma separated column list.
func NewInsertOrUpdateStatement(catalogName, schemaName, tableName, primaryKey string, columns []ColumnValue, onlyUpdate bool) InsertOrUpdateStatement {
	return InsertOrUpdateStatement{
		catalogName: catalogName,
		schemaName:  schemaName,
		tableName:   tableName,
		primaryKey:  primaryKey,
		columns:     append([]ColumnValue(nil), columns...),
		onlyUpdate:  onlyUpdate,
	}
}

func (s InsertOrUpdateStatement) Kind() Kind          { return KindInsertOrUpdate }
func (s InsertOrUpdateStatement) CatalogName() string { return s.catalogName }
func (s InsertOrUpdateStatement) SchemaName() string  { return s.schemaName }
func (s InsertOrUpdateStatement) TableName() string   { return s.tableName }
func (s InsertOrUpdateStatement) PrimaryKey() string  { return s.primaryKey }
func (s InsertOrUpdateStatement) OnlyUpdate() bool    { return s.onlyUpdate }

func (s InsertOrUpdateStatement) Columns() []ColumnValue {
	return append([]ColumnValue(nil), s.columns...)
}

// PrimaryKeyColumns splits the primary key list, dropping blanks.
func (s InsertOrUpdateStatement) PrimaryKeyColumns() []string {
	parts := lo.Map(strings.Split(s.primaryKey, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(parts)
}

// IsPrimaryKeyColumn reports whether name is part of the primary key, ignoring case.
func (s InsertOrUpdateStatement) IsPrimaryKeyColumn(name string) bool {
	return lo.ContainsBy(s.PrimaryKeyColumns(), func(pk string) bool {
		return strings.EqualFold(pk, name)
	})
}
