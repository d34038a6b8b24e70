package sqlgen

import (
	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
)

// BaseCreateSchemaGenerator renders the ANSI form for any dialect. Dialects
// with known rules are served by CreateSchemaGenerator instead.
type BaseCreateSchemaGenerator struct{}

func (BaseCreateSchemaGenerator) Priority() int { return PriorityDefault }

func (BaseCreateSchemaGenerator) Supports(stmt statement.Statement, target *database.Target) bool {
	return target != nil
}

func (BaseCreateSchemaGenerator) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	s := stmt.(statement.CreateSchemaStatement)
	var v ValidationErrors
	v.CheckRequiredField("schemaName", s.SchemaName())
	return v
}

func (BaseCreateSchemaGenerator) GenerateSQL(stmt statement.Statement, target *database.Target) []SQL {
	s := stmt.(statement.CreateSchemaStatement)
	schema := target.EscapeObjectName(s.SchemaName(), database.Schema)
	return single("CREATE SCHEMA "+schema, schema)
}

type CreateSchemaGenerator struct{}

func (CreateSchemaGenerator) Priority() int { return PriorityDatabase }

func (CreateSchemaGenerator) Supports(stmt statement.Statement, target *database.Target) bool {
	return supportsKind(target, supportedKinds...)
}

// Validate rejects a catalog: none of the supported products can create a
// schema in another catalog with this statement.
func (CreateSchemaGenerator) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	s := stmt.(statement.CreateSchemaStatement)
	var v ValidationErrors
	v.CheckDisallowedField("catalogName", s.CatalogName(), target, supportedKinds...)
	v.CheckRequiredField("schemaName", s.SchemaName())
	return v
}

func (CreateSchemaGenerator) GenerateSQL(stmt statement.Statement, target *database.Target) []SQL {
	s := stmt.(statement.CreateSchemaStatement)
	schema := target.EscapeObjectName(s.SchemaName(), database.Schema)
	return single("CREATE SCHEMA "+schema, schema)
}

type BaseDropSchemaGenerator struct{}

func (BaseDropSchemaGenerator) Priority() int { return PriorityDefault }

func (BaseDropSchemaGenerator) Supports(stmt statement.Statement, target *database.Target) bool {
	return target != nil
}

func (BaseDropSchemaGenerator) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	s := stmt.(statement.DropSchemaStatement)
	var v ValidationErrors
	v.CheckRequiredField("schemaName", s.SchemaName())
	return v
}

func (BaseDropSchemaGenerator) GenerateSQL(stmt statement.Statement, target *database.Target) []SQL {
	s := stmt.(statement.DropSchemaStatement)
	schema := target.EscapeObjectName(s.SchemaName(), database.Schema)
	return single("DROP SCHEMA "+schema, schema)
}

// DropSchemaGenerator drops a schema. On MSSQL the schema may live in another
// catalog, which is reached by running the drop as dynamic SQL after USE.
type DropSchemaGenerator struct{}

func (DropSchemaGenerator) Priority() int { return PriorityDatabase }

func (DropSchemaGenerator) Supports(stmt statement.Statement, target *database.Target) bool {
	return supportsKind(target, supportedKinds...)
}

func (DropSchemaGenerator) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	s := stmt.(statement.DropSchemaStatement)
	var v ValidationErrors
	v.CheckDisallowedField("catalogName", s.CatalogName(), target, database.H2, database.HSQLDB, database.Postgres)
	v.CheckRequiredField("schemaName", s.SchemaName())
	return v
}

func (DropSchemaGenerator) GenerateSQL(stmt statement.Statement, target *database.Target) []SQL {
	s := stmt.(statement.DropSchemaStatement)
	schema := target.EscapeObjectName(s.SchemaName(), database.Schema)
	drop := "DROP SCHEMA " + schema
	if target.Kind() != database.MSSQL || s.CatalogName() == "" {
		return single(drop, schema)
	}

	// DROP SCHEMA only takes a one-part name, so the catalog is switched first
	// inside its own batch. Identifiers are escaped above; the batch is then
	// escaped as a whole for the string literal.
	catalog := target.EscapeObjectName(s.CatalogName(), database.Catalog)
	batch := "USE " + catalog + "; " + drop
	return single("EXEC sp_executesql "+target.StringLiteral(batch), schema)
}
