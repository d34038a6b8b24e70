package change

import (
	"testing"

	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropDatabaseChange(t *testing.T) {
	c := DropDatabaseChange{DatabaseName: "Cat2"}

	stmts := c.GenerateStatements()
	require.Len(t, stmts, 1)
	assert.Equal(t, statement.NewDropDatabaseStatement("Cat2"), stmts[0])
	assert.Equal(t, CreateDatabaseChange{DatabaseName: "Cat2"}, c.Inverse())
	assert.Equal(t, c, c.Inverse().Inverse())
}

func TestDropSchemaChange(t *testing.T) {
	c := DropSchemaChange{CatalogName: "Cat2", SchemaName: "Sch1"}

	stmts := c.GenerateStatements()
	require.Len(t, stmts, 1)
	assert.Equal(t, statement.NewDropSchemaStatement("Cat2", "Sch1"), stmts[0])
	assert.Equal(t, CreateSchemaChange{CatalogName: "Cat2", SchemaName: "Sch1"}, c.Inverse())

	create := c.Inverse().GenerateStatements()
	require.Len(t, create, 1)
	assert.Equal(t, statement.KindCreateSchema, create[0].Kind())
}

type irreversible struct{ DropSchemaChange }

func (irreversible) Inverse() Change { return nil }

func TestInverses(t *testing.T) {
	changes := []Change{
		CreateDatabaseChange{DatabaseName: "Cat2"},
		CreateSchemaChange{SchemaName: "Sch1"},
	}

	inverses, ok := Inverses(changes)
	require.True(t, ok)
	assert.Equal(t, []Change{
		DropSchemaChange{SchemaName: "Sch1"},
		DropDatabaseChange{DatabaseName: "Cat2"},
	}, inverses)

	_, ok = Inverses(append(changes, irreversible{}))
	assert.False(t, ok)
}
