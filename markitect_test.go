package markitect

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/markitect-dev/markitect-liquibase-sub001/change"
	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/database/offline"
	"github.com/markitect-dev/markitect-liquibase-sub001/database/postgres"
	"github.com/markitect-dev/markitect-liquibase-sub001/precondition"
	"github.com/markitect-dev/markitect-liquibase-sub001/result"
	"github.com/markitect-dev/markitect-liquibase-sub001/sqlgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogExistsQuery = "SELECT EXISTS(SELECT 1 FROM pg_catalog.pg_database WHERE datname = 'cat1')"

func newPostgres(t *testing.T) (database.Database, sqlmock.Sqlmock, *database.Target) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	target := database.NewTarget(database.Postgres, database.ConnectionDefaults{DefaultCatalogName: "cat1", DefaultSchemaName: "public"})
	return postgres.NewDatabaseFromDB(db), mock, target
}

func createSchemas() ChangeSet {
	return ChangeSet{
		ID:            "create-schemas",
		Preconditions: []precondition.Precondition{precondition.CatalogExists{CatalogName: "Cat1"}},
		Changes: []change.Change{
			change.CreateSchemaChange{SchemaName: "Sch1"},
			change.CreateSchemaChange{SchemaName: "Order"},
		},
	}
}

func TestRunApplies(t *testing.T) {
	db, mock, target := newPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta(catalogExistsQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE SCHEMA Sch1")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE SCHEMA "order"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	var out bytes.Buffer
	r := Run(context.Background(), db, target, sqlgen.NewDefaultRegistry(), createSchemas(), &Options{Logger: database.WriterLogger{W: &out}})
	require.True(t, r.OK(), "%v", r.Err())
	assert.Equal(t, []string{"CREATE SCHEMA Sch1", `CREATE SCHEMA "order"`}, r.Value)
	assert.Equal(t, "-- Apply --\nCREATE SCHEMA Sch1;\nCREATE SCHEMA \"order\";\n", out.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunDryRun(t *testing.T) {
	db, mock, target := newPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta(catalogExistsQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	var out bytes.Buffer
	r := Run(context.Background(), db, target, sqlgen.NewDefaultRegistry(), createSchemas(), &Options{DryRun: true, Logger: database.WriterLogger{W: &out}})
	require.True(t, r.OK(), "%v", r.Err())
	assert.Equal(t, "-- dry run --\nCREATE SCHEMA Sch1;\nCREATE SCHEMA \"order\";\n", out.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunPreconditionFailed(t *testing.T) {
	db, mock, target := newPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta(catalogExistsQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	r := Run(context.Background(), db, target, sqlgen.NewDefaultRegistry(), createSchemas(), &Options{})
	assert.Equal(t, result.StatusPreconditionFailed, r.Status)
	assert.Equal(t, "catalog Cat1 does not exist", r.Reason)
	assert.ErrorIs(t, r.Err(), result.ErrPreconditionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunValidationFailed(t *testing.T) {
	db, mock, target := newPostgres(t)
	cs := ChangeSet{
		ID: "drop-schema",
		Changes: []change.Change{
			change.DropSchemaChange{CatalogName: "Cat2", SchemaName: "Sch1"},
			change.CreateSchemaChange{},
		},
	}

	r := Run(context.Background(), db, target, sqlgen.NewDefaultRegistry(), cs, &Options{})
	assert.Equal(t, result.StatusValidationFailed, r.Status)
	assert.Equal(t, []string{"catalogName is not allowed on postgresql", "schemaName is required"}, r.Errors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunPreconditionValidationFailed(t *testing.T) {
	db, mock, target := newPostgres(t)
	cs := ChangeSet{
		ID:            "create-schema",
		Preconditions: []precondition.Precondition{precondition.SchemaExists{CatalogName: "Cat2", SchemaName: "Sch1"}},
		Changes:       []change.Change{change.CreateSchemaChange{SchemaName: "Sch1"}},
	}

	r := Run(context.Background(), db, target, sqlgen.NewDefaultRegistry(), cs, &Options{})
	assert.Equal(t, result.StatusValidationFailed, r.Status)
	assert.Equal(t, []string{"catalogName is not allowed on postgresql"}, r.Errors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunDropDatabaseOutsideTransaction(t *testing.T) {
	db, mock, target := newPostgres(t)
	mock.ExpectExec(regexp.QuoteMeta("DROP DATABASE db2")).WillReturnResult(sqlmock.NewResult(0, 0))

	cs := ChangeSet{ID: "drop-database", Changes: []change.Change{change.DropDatabaseChange{DatabaseName: "db2"}}}
	r := Run(context.Background(), db, target, sqlgen.NewDefaultRegistry(), cs, &Options{})
	require.True(t, r.OK(), "%v", r.Err())
	assert.Equal(t, []string{"DROP DATABASE db2"}, r.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunExecutionFails(t *testing.T) {
	db, mock, target := newPostgres(t)
	failure := errors.New(`schema "sch1" already exists`)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE SCHEMA Sch1")).WillReturnError(failure)
	mock.ExpectRollback()

	cs := ChangeSet{ID: "create-schema", Changes: []change.Change{change.CreateSchemaChange{SchemaName: "Sch1"}}}
	r := Run(context.Background(), db, target, sqlgen.NewDefaultRegistry(), cs, &Options{})
	assert.Equal(t, result.StatusErrored, r.Status)
	assert.ErrorIs(t, r.Err(), failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunOffline(t *testing.T) {
	db := offline.NewDatabase(database.MSSQL, database.ConnectionDefaults{DefaultCatalogName: "Cat1", DefaultSchemaName: "dbo"})
	target := database.NewTarget(database.MSSQL, database.ConnectionDefaults{DefaultCatalogName: "Cat1", DefaultSchemaName: "dbo"})
	cs := ChangeSet{
		ID:            "drop-schema",
		Preconditions: []precondition.Precondition{precondition.SchemaExists{CatalogName: "Cat2", SchemaName: "Sch1"}},
		Changes:       []change.Change{change.DropSchemaChange{CatalogName: "Cat2", SchemaName: "Sch1"}},
	}

	var out bytes.Buffer
	r := Run(context.Background(), db, target, sqlgen.NewDefaultRegistry(), cs, &Options{Logger: database.WriterLogger{W: &out}})
	require.True(t, r.OK(), "%v", r.Err())
	assert.Equal(t, "-- dry run --\nEXEC sp_executesql N'USE Cat2; DROP SCHEMA Sch1';\n", out.String())
}

func TestRunWithoutOptions(t *testing.T) {
	db := offline.NewDatabase(database.H2, database.ConnectionDefaults{})
	target := database.NewTarget(database.H2, database.ConnectionDefaults{})
	cs := ChangeSet{ID: "create-schema", Changes: []change.Change{change.CreateSchemaChange{SchemaName: "Sch1"}}}

	r := Run(context.Background(), db, target, sqlgen.NewDefaultRegistry(), cs, nil)
	require.True(t, r.OK(), "%v", r.Err())
	assert.Len(t, r.Value, 1)
}

func TestRollback(t *testing.T) {
	rollback, ok := createSchemas().Rollback()
	require.True(t, ok)
	assert.Empty(t, rollback.Preconditions)
	assert.Equal(t, []change.Change{
		change.DropSchemaChange{SchemaName: "Order"},
		change.DropSchemaChange{SchemaName: "Sch1"},
	}, rollback.Changes)

	db := offline.NewDatabase(database.H2, database.ConnectionDefaults{})
	target := database.NewTarget(database.H2, database.ConnectionDefaults{})
	r := Run(context.Background(), db, target, sqlgen.NewDefaultRegistry(), rollback, &Options{})
	require.True(t, r.OK(), "%v", r.Err())
	assert.Equal(t, []string{`DROP SCHEMA "ORDER"`, "DROP SCHEMA Sch1"}, r.Value)
}
