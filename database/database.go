// This package has the dialect rules and the database layer. Never deal with
// statement semantics here.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	DbName   string
	User     string
	Password string
	Host     string
	Port     int
	Socket   string
}

// Abstraction layer for multiple kinds of databases
type Database interface {
	// Defaults asks the connection which catalog and schema it lands in.
	Defaults(ctx context.Context) (ConnectionDefaults, error)
	Kind() Kind
	DB() *sql.DB
	Close() error
}

// Querier is the part of *sql.DB and *sql.Tx that existence checks need.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RunStatements executes sqls in order, echoing each to logger. Consecutive
// statements share one transaction; a statement that cannot run in a
// transaction commits the open one and runs on its own.
func RunStatements(ctx context.Context, d Database, sqls []string, logger Logger) error {
	var transaction *sql.Tx
	commit := func() error {
		if transaction == nil {
			return nil
		}
		err := transaction.Commit()
		transaction = nil
		return err
	}

	for _, s := range sqls {
		logger.Printf("%s;\n", s)
		if !TransactionSupported(s) {
			if err := commit(); err != nil {
				return err
			}
			if _, err := d.DB().ExecContext(ctx, s); err != nil {
				return fmt.Errorf("executing %q: %w", s, err)
			}
			continue
		}

		if transaction == nil {
			var err error
			if transaction, err = d.DB().BeginTx(ctx, nil); err != nil {
				return err
			}
		}
		if _, err := transaction.ExecContext(ctx, s); err != nil {
			transaction.Rollback()
			return fmt.Errorf("executing %q: %w", s, err)
		}
	}
	return commit()
}

// TransactionSupported reports whether s may run inside a transaction block.
// PostgreSQL and SQL Server refuse to create or drop a database in one.
func TransactionSupported(s string) bool {
	upper := strings.ToUpper(strings.TrimSpace(s))
	return !strings.HasPrefix(upper, "CREATE DATABASE") &&
		!strings.HasPrefix(upper, "DROP DATABASE") &&
		!strings.Contains(upper, "CONCURRENTLY")
}

// TargetConfig is the YAML form of the per-connection settings.
type TargetConfig struct {
	QuotingStrategy      string `yaml:"quoting_strategy"`
	PreserveSchemaCase   bool   `yaml:"preserve_schema_case"`
	DefaultCatalogName   string `yaml:"default_catalog"`
	DefaultSchemaName    string `yaml:"default_schema"`
	OutputDefaultCatalog bool   `yaml:"output_default_catalog"`
	OutputDefaultSchema  bool   `yaml:"output_default_schema"`
}

func ParseTargetConfig(configFile string) (TargetConfig, error) {
	if configFile == "" {
		return TargetConfig{}, nil
	}

	buf, err := os.ReadFile(configFile)
	if err != nil {
		return TargetConfig{}, err
	}

	var config TargetConfig
	if err := yaml.UnmarshalStrict(buf, &config); err != nil {
		return TargetConfig{}, fmt.Errorf("parsing %s: %w", configFile, err)
	}
	config.DefaultCatalogName = strings.TrimSpace(config.DefaultCatalogName)
	config.DefaultSchemaName = strings.TrimSpace(config.DefaultSchemaName)
	return config, nil
}

// Apply builds a Target for kind. Defaults discovered from a live connection
// are used for names the config leaves empty.
func (c TargetConfig) Apply(kind Kind, discovered ConnectionDefaults) (*Target, error) {
	strategy, err := ParseQuotingStrategy(c.QuotingStrategy)
	if err != nil {
		return nil, err
	}
	defaults := ConnectionDefaults{
		DefaultCatalogName:   discovered.DefaultCatalogName,
		DefaultSchemaName:    discovered.DefaultSchemaName,
		OutputDefaultCatalog: c.OutputDefaultCatalog,
		OutputDefaultSchema:  c.OutputDefaultSchema,
	}
	if c.DefaultCatalogName != "" {
		defaults.DefaultCatalogName = c.DefaultCatalogName
	}
	if c.DefaultSchemaName != "" {
		defaults.DefaultSchemaName = c.DefaultSchemaName
	}

	target := NewTarget(kind, defaults)
	target.QuotingStrategy = strategy
	target.PreserveSchemaCase = c.PreserveSchemaCase
	return target, nil
}
