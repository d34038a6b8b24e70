// Package change holds changelog-level changes. A change lowers to exactly one
// statement and knows the change that undoes it.
package change

import (
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
)

type Change interface {
	Name() string
	GenerateStatements() []statement.Statement
	// Inverse returns the change that undoes this one, or nil when there is none.
	Inverse() Change
}

type DropDatabaseChange struct {
	DatabaseName string
}

func (c DropDatabaseChange) Name() string {
	return "dropDatabase"
}

func (c DropDatabaseChange) GenerateStatements() []statement.Statement {
	return []statement.Statement{statement.NewDropDatabaseStatement(c.DatabaseName)}
}

func (c DropDatabaseChange) Inverse() Change {
	return CreateDatabaseChange{DatabaseName: c.DatabaseName}
}

type CreateDatabaseChange struct {
	DatabaseName string
}

func (c CreateDatabaseChange) Name() string {
	return "createDatabase"
}

func (c CreateDatabaseChange) GenerateStatements() []statement.Statement {
	return []statement.Statement{statement.NewCreateDatabaseStatement(c.DatabaseName)}
}

func (c CreateDatabaseChange) Inverse() Change {
	return DropDatabaseChange{DatabaseName: c.DatabaseName}
}

type DropSchemaChange struct {
	CatalogName string
	SchemaName  string
}

func (c DropSchemaChange) Name() string {
	return "dropSchema"
}

func (c DropSchemaChange) GenerateStatements() []statement.Statement {
	return []statement.Statement{statement.NewDropSchemaStatement(c.CatalogName, c.SchemaName)}
}

func (c DropSchemaChange) Inverse() Change {
	return CreateSchemaChange{CatalogName: c.CatalogName, SchemaName: c.SchemaName}
}

type CreateSchemaChange struct {
	CatalogName string
	SchemaName  string
}

func (c CreateSchemaChange) Name() string {
	return "createSchema"
}

func (c CreateSchemaChange) GenerateStatements() []statement.Statement {
	return []statement.Statement{statement.NewCreateSchemaStatement(c.CatalogName, c.SchemaName)}
}

func (c CreateSchemaChange) Inverse() Change {
	return DropSchemaChange{CatalogName: c.CatalogName, SchemaName: c.SchemaName}
}

// Inverses returns the inverses of changes in reverse order. It reports false
// when one of them cannot be undone.
func Inverses(changes []Change) ([]Change, bool) {
	inverses := make([]Change, 0, len(changes))
	for i := len(changes) - 1; i >= 0; i-- {
		inverse := changes[i].Inverse()
		if inverse == nil {
			return nil, false
		}
		inverses = append(inverses, inverse)
	}
	return inverses, true
}
