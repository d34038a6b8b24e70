package sqlgen

import (
	"fmt"
	"strings"

	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
)

// CatalogExistsGenerator selects one boolean column that is true when the
// catalog exists.
type CatalogExistsGenerator struct{}

func (CatalogExistsGenerator) Priority() int { return PriorityDatabase }

func (CatalogExistsGenerator) Supports(stmt statement.Statement, target *database.Target) bool {
	return supportsKind(target, database.MSSQL, database.Postgres)
}

func (CatalogExistsGenerator) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	s := stmt.(statement.CatalogExistsStatement)
	var v ValidationErrors
	v.CheckRequiredField("catalogName", s.CatalogName())
	return v
}

func (CatalogExistsGenerator) GenerateSQL(stmt statement.Statement, target *database.Target) []SQL {
	s := stmt.(statement.CatalogExistsStatement)
	switch target.Kind() {
	case database.MSSQL:
		return single(fmt.Sprintf(
			"SELECT CAST(CASE WHEN DB_ID(%s) IS NOT NULL THEN 1 ELSE 0 END AS bit)",
			target.StringLiteral(s.CatalogName()),
		))
	case database.Postgres:
		// pg_database stores unquoted names folded to lower case.
		return single(fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM pg_catalog.pg_database WHERE datname = %s)",
			target.StringLiteral(strings.ToLower(s.CatalogName())),
		))
	default:
		panic(fmt.Sprintf("sqlgen: %s is not supported on %s", stmt.Kind(), target.Kind()))
	}
}

// SchemaExistsGenerator selects one boolean column that is true when the schema
// exists. The schema name is compared in the case the database stores it.
type SchemaExistsGenerator struct{}

func (SchemaExistsGenerator) Priority() int { return PriorityDatabase }

func (SchemaExistsGenerator) Supports(stmt statement.Statement, target *database.Target) bool {
	return supportsKind(target, supportedKinds...)
}

func (SchemaExistsGenerator) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	s := stmt.(statement.SchemaExistsStatement)
	var v ValidationErrors
	v.CheckDisallowedField("catalogName", s.CatalogName(), target, database.H2, database.HSQLDB, database.Postgres)
	v.CheckRequiredField("schemaName", s.SchemaName())
	return v
}

func (SchemaExistsGenerator) GenerateSQL(stmt statement.Statement, target *database.Target) []SQL {
	s := stmt.(statement.SchemaExistsStatement)
	schema := target.StringLiteral(target.CorrectObjectName(s.SchemaName(), database.Schema))
	switch target.Kind() {
	case database.H2:
		return single(fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = %s)", schema,
		))
	case database.HSQLDB:
		// HSQLDB needs a FROM clause; SYSTEM_USERS always has at least one row.
		return single(fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = %s) FROM INFORMATION_SCHEMA.SYSTEM_USERS", schema,
		))
	case database.Postgres:
		return single(fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM pg_catalog.pg_namespace WHERE nspname = %s)", schema,
		))
	case database.MSSQL:
		view := target.EscapeQualifiedName(s.CatalogName(), "sys", "schemas", database.View)
		return single(fmt.Sprintf(
			"SELECT CAST(CASE WHEN EXISTS (SELECT 1 FROM %s WHERE name = %s) THEN 1 ELSE 0 END AS bit)", view, schema,
		))
	default:
		panic(fmt.Sprintf("sqlgen: %s is not supported on %s", stmt.Kind(), target.Kind()))
	}
}
