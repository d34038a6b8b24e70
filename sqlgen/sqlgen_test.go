package sqlgen_test

import (
	"math"
	"testing"

	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/sqlgen"
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
	"github.com/markitect-dev/markitect-liquibase-sub001/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests, err := testutil.ReadTests("testdata/*.yml")
	require.NoError(t, err)
	require.NotEmpty(t, tests)

	registry := sqlgen.NewDefaultRegistry()
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.RunTest(t, registry, test)
		})
	}
}

func TestCreateSchemaSupports(t *testing.T) {
	stmt := statement.NewCreateSchemaStatement("", "Sch1")
	tests := map[database.Kind]bool{
		database.H2:       true,
		database.HSQLDB:   true,
		database.MSSQL:    true,
		database.Postgres: true,
		database.Generic:  false,
	}
	for kind, expected := range tests {
		t.Run(kind.String(), func(t *testing.T) {
			target := database.NewTarget(kind, database.ConnectionDefaults{})
			assert.Equal(t, expected, sqlgen.CreateSchemaGenerator{}.Supports(stmt, target))
			assert.True(t, sqlgen.BaseCreateSchemaGenerator{}.Supports(stmt, target))
		})
	}
}

func TestRegistrySelectsHighestPriority(t *testing.T) {
	registry := sqlgen.NewRegistry()
	registry.Register(statement.KindCreateSchema, sqlgen.CreateSchemaGenerator{})
	registry.Register(statement.KindCreateSchema, sqlgen.BaseCreateSchemaGenerator{})
	stmt := statement.NewCreateSchemaStatement("", "Sch1")

	g, ok := registry.Select(stmt, database.NewTarget(database.Postgres, database.ConnectionDefaults{}))
	require.True(t, ok)
	assert.IsType(t, sqlgen.CreateSchemaGenerator{}, g)

	g, ok = registry.Select(stmt, database.NewTarget(database.Generic, database.ConnectionDefaults{}))
	require.True(t, ok)
	assert.IsType(t, sqlgen.BaseCreateSchemaGenerator{}, g)

	empty := sqlgen.NewRegistry()
	target := database.NewTarget(database.H2, database.ConnectionDefaults{})
	assert.False(t, empty.Supports(stmt, target))
	assert.Equal(t, []string{"createSchema is not supported on h2"}, empty.Validate(stmt, target).Errors())
	_, err := empty.Generate(stmt, target)
	assert.EqualError(t, err, "no generator for createSchema on h2")
}

func TestGeneratedSQLIsStable(t *testing.T) {
	registry := sqlgen.NewDefaultRegistry()
	target := database.NewTarget(database.MSSQL, database.ConnectionDefaults{DefaultCatalogName: "Cat1"})
	stmt := statement.NewSchemaExistsStatement("Cat2", "Sch1")

	first, err := registry.Generate(stmt, target)
	require.NoError(t, err)
	second, err := registry.Generate(stmt, target)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidationErrors(t *testing.T) {
	target := database.NewTarget(database.H2, database.ConnectionDefaults{})

	var v sqlgen.ValidationErrors
	assert.False(t, v.HasErrors())
	v.CheckRequiredField("schemaName", "")
	v.CheckRequiredField("tableName", "Tbl1")
	v.CheckDisallowedField("catalogName", "Cat2", target, database.MSSQL)
	v.CheckDisallowedField("catalogName", "Cat2", target)
	v.AddWarning("%s is deprecated", "legacy")

	var merged sqlgen.ValidationErrors
	merged.Merge(v)
	assert.True(t, merged.HasErrors())
	assert.Equal(t, []string{"schemaName is required", "catalogName is not allowed on h2"}, merged.Errors())
	assert.Equal(t, []string{"legacy is deprecated"}, merged.Warnings())
	assert.EqualError(t, merged, "validation failed: schemaName is required; catalogName is not allowed on h2")
}

func TestAffectedObjects(t *testing.T) {
	registry := sqlgen.NewDefaultRegistry()
	target := database.NewTarget(database.MSSQL, database.ConnectionDefaults{DefaultCatalogName: "Cat1", DefaultSchemaName: "dbo"})

	sqls, err := registry.Generate(statement.NewDropSchemaStatement("Cat2", "Sch 1"), target)
	require.NoError(t, err)
	require.Len(t, sqls, 1)
	assert.Equal(t, []string{"[Sch 1]"}, sqls[0].AffectedObjects)
	assert.Equal(t, "EXEC sp_executesql N'USE Cat2; DROP SCHEMA [Sch 1]'", sqls[0].String())

	sqls, err = registry.Generate(statement.NewSchemaExistsStatement("", "Sch1"), target)
	require.NoError(t, err)
	assert.Empty(t, sqls[0].AffectedObjects)
}

func TestInsertOrUpdateRejectsNonFiniteNumbers(t *testing.T) {
	registry := sqlgen.NewDefaultRegistry()
	target := database.NewTarget(database.Postgres, database.ConnectionDefaults{})
	columns := []statement.ColumnValue{
		{Name: "id", Value: 1},
		{Name: "ratio", Value: math.NaN()},
		{Name: "ceiling", Value: float32(math.Inf(1))},
		{Name: "floor", Value: math.Inf(-1)},
		{Name: "price", Value: 9.5},
	}

	sqls, err := registry.Generate(statement.NewInsertOrUpdateStatement("", "", "Tbl1", "id", columns, false), target)
	assert.Nil(t, sqls)
	var v sqlgen.ValidationErrors
	require.ErrorAs(t, err, &v)
	assert.Equal(t, []string{
		"column ratio is not a finite number",
		"column ceiling is not a finite number",
		"column floor is not a finite number",
	}, v.Errors())
}
