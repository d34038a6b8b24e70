package sqlgen

import (
	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
)

// CreateDatabaseGenerator and DropDatabaseGenerator handle the products where a
// catalog is a database that SQL can create and drop.
type CreateDatabaseGenerator struct{}

func (CreateDatabaseGenerator) Priority() int { return PriorityDatabase }

func (CreateDatabaseGenerator) Supports(stmt statement.Statement, target *database.Target) bool {
	return supportsKind(target, database.MSSQL, database.Postgres)
}

func (CreateDatabaseGenerator) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	s := stmt.(statement.CreateDatabaseStatement)
	var v ValidationErrors
	v.CheckRequiredField("databaseName", s.DatabaseName())
	return v
}

func (CreateDatabaseGenerator) GenerateSQL(stmt statement.Statement, target *database.Target) []SQL {
	s := stmt.(statement.CreateDatabaseStatement)
	name := target.EscapeObjectName(s.DatabaseName(), database.Catalog)
	return single("CREATE DATABASE "+name, name)
}

type DropDatabaseGenerator struct{}

func (DropDatabaseGenerator) Priority() int { return PriorityDatabase }

func (DropDatabaseGenerator) Supports(stmt statement.Statement, target *database.Target) bool {
	return supportsKind(target, database.MSSQL, database.Postgres)
}

func (DropDatabaseGenerator) Validate(stmt statement.Statement, target *database.Target) ValidationErrors {
	s := stmt.(statement.DropDatabaseStatement)
	var v ValidationErrors
	v.CheckRequiredField("databaseName", s.DatabaseName())
	if s.DatabaseName() != "" && target.IsDefaultCatalog(s.DatabaseName()) {
		v.AddWarning("dropping %s, the database this connection uses", s.DatabaseName())
	}
	return v
}

func (DropDatabaseGenerator) GenerateSQL(stmt statement.Statement, target *database.Target) []SQL {
	s := stmt.(statement.DropDatabaseStatement)
	name := target.EscapeObjectName(s.DatabaseName(), database.Catalog)
	return single("DROP DATABASE "+name, name)
}
