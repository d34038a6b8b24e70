package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/markitect-dev/markitect-liquibase-sub001/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "create schema on postgres",
			args:     []string{"--dialect", "postgres", "--offline", "create-schema", "Sch1", "order"},
			expected: "-- dry run --\nCREATE SCHEMA Sch1;\nCREATE SCHEMA \"order\";\n",
		},
		{
			name:     "quote all on h2",
			args:     []string{"-d", "h2", "--quote-all", "create-schema", "Sch1"},
			expected: "-- dry run --\nCREATE SCHEMA \"Sch1\";\n",
		},
		{
			name:     "drop schema in another catalog on mssql",
			args:     []string{"-d", "mssql", "--offline", "--default-catalog", "Cat1", "-c", "Cat2", "drop-schema", "Sch1"},
			expected: "-- dry run --\nEXEC sp_executesql N'USE Cat2; DROP SCHEMA Sch1';\n",
		},
		{
			name:     "rollback of drop database",
			args:     []string{"-d", "postgres", "--offline", "--rollback", "drop-database", "Cat2"},
			expected: "-- dry run --\nCREATE DATABASE Cat2;\n",
		},
		{
			name:     "schema exists on h2",
			args:     []string{"-d", "h2", "schema-exists", "Sch1"},
			expected: "-- schemaExists Sch1\nSELECT EXISTS(SELECT 1 FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = 'SCH1');\n",
		},
		{
			name:     "catalog exists on mssql",
			args:     []string{"-d", "mssql", "--offline", "catalog-exists", "Cat2"},
			expected: "-- catalogExists Cat2\nSELECT CAST(CASE WHEN DB_ID(N'Cat2') IS NOT NULL THEN 1 ELSE 0 END AS bit);\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(context.Background(), test.args, &out))
			assert.Equal(t, test.expected, out.String())
		})
	}
}

func TestConfigFile(t *testing.T) {
	config := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(config, []byte("quoting_strategy: QUOTE_ALL_OBJECTS\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-d", "hsqldb", "--config", config, "create-schema", "Sch1"}, &out))
	assert.Equal(t, "-- dry run --\nCREATE SCHEMA \"Sch1\";\n", out.String())
}

func TestRejectedCommands(t *testing.T) {
	var out bytes.Buffer

	err := run(context.Background(), []string{"-d", "postgres", "--offline", "-c", "Cat2", "drop-schema", "Sch1"}, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, result.ErrValidationFailed))

	err = run(context.Background(), []string{"-d", "postgres", "--offline", "rename-schema", "Sch1"}, &out)
	assert.EqualError(t, err, `unknown command "rename-schema"`)

	err = run(context.Background(), []string{"-d", "postgres", "create-schema"}, &out)
	assert.Error(t, err)

	err = run(context.Background(), []string{"-d", "oracle", "create-schema", "Sch1"}, &out)
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--help"}, &out))
	assert.Contains(t, out.String(), "--dialect")
}
