package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/markitect-dev/markitect-liquibase-sub001/database"
	_ "github.com/microsoft/go-mssqldb"
)

type MssqlDatabase struct {
	config database.Config
	db     *sql.DB
}

func NewDatabase(config database.Config) (database.Database, error) {
	db, err := sql.Open("sqlserver", mssqlBuildDSN(config))
	if err != nil {
		return nil, err
	}

	return &MssqlDatabase{
		db:     db,
		config: config,
	}, nil
}

// NewDatabaseFromDB wraps an already opened connection.
func NewDatabaseFromDB(db *sql.DB) *MssqlDatabase {
	return &MssqlDatabase{db: db}
}

const defaultsQuery = "SELECT DB_NAME(), SCHEMA_NAME()"

func (d *MssqlDatabase) Defaults(ctx context.Context) (database.ConnectionDefaults, error) {
	var catalog, schema sql.NullString
	if err := d.db.QueryRowContext(ctx, defaultsQuery).Scan(&catalog, &schema); err != nil {
		return database.ConnectionDefaults{}, fmt.Errorf("reading default catalog and schema: %w", err)
	}
	defaults := database.ConnectionDefaults{
		DefaultCatalogName: catalog.String,
		DefaultSchemaName:  schema.String,
	}
	if defaults.DefaultSchemaName == "" {
		defaults.DefaultSchemaName = "dbo"
	}
	return defaults, nil
}

func (d *MssqlDatabase) Kind() database.Kind {
	return database.MSSQL
}

func (d *MssqlDatabase) DB() *sql.DB {
	return d.db
}

func (d *MssqlDatabase) Close() error {
	return d.db.Close()
}

func mssqlBuildDSN(config database.Config) string {
	query := url.Values{}
	query.Add("database", config.DbName)

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(config.User, config.Password),
		Host:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		RawQuery: query.Encode(),
	}
	return u.String()
}
