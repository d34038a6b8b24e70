// Package testutil runs the YAML-described generator cases under testdata/.
package testutil

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	"github.com/markitect-dev/markitect-liquibase-sub001/sqlgen"
	"github.com/markitect-dev/markitect-liquibase-sub001/statement"
	"github.com/markitect-dev/markitect-liquibase-sub001/util"
	pg_query "github.com/pganalyze/pg_query_go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestCase struct {
	Dialect     string
	Config      database.TargetConfig // quoting strategy and connection defaults
	Statement   TestStatement
	Output      *string  // expected SQL, one statement per line group separated by ";\n"
	Error       *string  // default: nil
	Warnings    []string // validation warnings
	Unsupported bool     // no generator may support the statement
}

type TestStatement struct {
	Kind       string
	Catalog    string
	Schema     string
	Table      string
	Database   string
	PrimaryKey string `yaml:"primary_key"`
	Value      string // ON or OFF for identity insert
	OnlyUpdate bool   `yaml:"only_update"`
	Columns    []struct {
		Name  string
		Value any
	}
}

func init() {
	// Keep INFO logs out of test output unless LOG_LEVEL asks for them.
	util.InitSlog(false)
	if os.Getenv("LOG_LEVEL") == "" {
		opts := &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}
		handler := slog.NewTextHandler(os.Stderr, opts)
		slog.SetDefault(slog.New(handler))
	}
}

// Build turns the YAML form into a statement.
func (s TestStatement) Build() (statement.Statement, error) {
	switch statement.Kind(s.Kind) {
	case statement.KindCreateSchema:
		return statement.NewCreateSchemaStatement(s.Catalog, s.Schema), nil
	case statement.KindDropSchema:
		return statement.NewDropSchemaStatement(s.Catalog, s.Schema), nil
	case statement.KindCatalogExists:
		return statement.NewCatalogExistsStatement(s.Catalog), nil
	case statement.KindSchemaExists:
		return statement.NewSchemaExistsStatement(s.Catalog, s.Schema), nil
	case statement.KindCreateDatabase:
		return statement.NewCreateDatabaseStatement(s.Database), nil
	case statement.KindDropDatabase:
		return statement.NewDropDatabaseStatement(s.Database), nil
	case statement.KindSetIdentityInsert:
		return statement.NewSetIdentityInsertStatement(s.Catalog, s.Schema, s.Table, statement.IdentityInsert(s.Value)), nil
	case statement.KindInsertOrUpdate:
		columns := make([]statement.ColumnValue, len(s.Columns))
		for i, c := range s.Columns {
			columns[i] = statement.ColumnValue{Name: c.Name, Value: c.Value}
		}
		return statement.NewInsertOrUpdateStatement(s.Catalog, s.Schema, s.Table, s.PrimaryKey, columns, s.OnlyUpdate), nil
	default:
		return nil, fmt.Errorf("unknown statement kind %q", s.Kind)
	}
}

func ReadTests(pattern string) (map[string]TestCase, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	ret := map[string]TestCase{}
	// Track which file each test case came from for better error messages
	testFileMap := map[string]string{}

	for _, file := range files {
		var tests map[string]*TestCase

		buf, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		dec := yaml.NewDecoder(bytes.NewReader(buf), yaml.DisallowUnknownField())
		err = dec.Decode(&tests)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}

		for name, test := range tests {
			if test.Output != nil && test.Error != nil {
				return nil, fmt.Errorf("%s: test case '%s': 'output' and 'error' are exclusive", file, name)
			}
			if existingFile, ok := testFileMap[name]; ok {
				return nil, fmt.Errorf("duplicate test case name '%s': defined in both '%s' and '%s'", name, existingFile, file)
			}
			testFileMap[name] = file
			ret[name] = *test
		}
	}

	return ret, nil
}

func RunTest(t *testing.T, registry *sqlgen.Registry, test TestCase) {
	t.Helper()

	kind, err := database.ParseKind(test.Dialect)
	require.NoError(t, err)
	target, err := test.Config.Apply(kind, database.ConnectionDefaults{})
	require.NoError(t, err)
	stmt, err := test.Statement.Build()
	require.NoError(t, err)

	if test.Unsupported {
		assert.False(t, registry.Supports(stmt, target), "%s should not be supported on %s", stmt.Kind(), kind)
		return
	}
	require.True(t, registry.Supports(stmt, target), "%s should be supported on %s", stmt.Kind(), kind)

	assert.ElementsMatch(t, test.Warnings, registry.Validate(stmt, target).Warnings())

	sqls, err := registry.Generate(stmt, target)
	if test.Error != nil {
		assert.EqualError(t, err, *test.Error)
		return
	}
	require.NoError(t, err)

	if test.Output != nil {
		assert.Equal(t, strings.TrimSpace(*test.Output), joinSQLs(sqlgen.Texts(sqls)))
	}

	// Generated PostgreSQL must be accepted by the server's own parser.
	if kind == database.Postgres {
		for _, sql := range sqlgen.Texts(sqls) {
			_, err := pg_query.Parse(sql)
			assert.NoError(t, err, "invalid PostgreSQL: %s", sql)
		}
	}
}

func joinSQLs(sqls []string) string {
	return strings.Join(sqls, ";\n")
}
