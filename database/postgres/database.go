package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"github.com/markitect-dev/markitect-liquibase-sub001/database"
)

type PostgresDatabase struct {
	config database.Config
	db     *sql.DB
}

func NewDatabase(config database.Config) (database.Database, error) {
	db, err := sql.Open("postgres", postgresBuildDSN(config))
	if err != nil {
		return nil, err
	}

	return &PostgresDatabase{
		db:     db,
		config: config,
	}, nil
}

// NewDatabaseFromDB wraps an already opened connection.
func NewDatabaseFromDB(db *sql.DB) *PostgresDatabase {
	return &PostgresDatabase{db: db}
}

const defaultsQuery = "SELECT current_database(), current_schema()"

func (d *PostgresDatabase) Defaults(ctx context.Context) (database.ConnectionDefaults, error) {
	var catalog, schema sql.NullString
	if err := d.db.QueryRowContext(ctx, defaultsQuery).Scan(&catalog, &schema); err != nil {
		return database.ConnectionDefaults{}, fmt.Errorf("reading default catalog and schema: %w", err)
	}
	// current_schema() is null when nothing on the search_path exists.
	defaults := database.ConnectionDefaults{
		DefaultCatalogName: catalog.String,
		DefaultSchemaName:  schema.String,
	}
	if !schema.Valid {
		defaults.DefaultSchemaName = "public"
	}
	return defaults, nil
}

func (d *PostgresDatabase) Kind() database.Kind {
	return database.Postgres
}

func (d *PostgresDatabase) DB() *sql.DB {
	return d.db
}

func (d *PostgresDatabase) Close() error {
	return d.db.Close()
}

func postgresBuildDSN(config database.Config) string {
	user := config.User
	password := config.Password
	database := config.DbName
	host := ""
	var options []string

	if config.Socket == "" {
		host = fmt.Sprintf("%s:%d", config.Host, config.Port)
	} else {
		// postgres://user:@%2Fvar%2Frun%2Fpostgresql/dbname is rejected by the URL
		// parser, so the socket goes into the host option instead.
		options = append(options, fmt.Sprintf("host=%s", config.Socket))
	}

	if sslmode, ok := os.LookupEnv("PGSSLMODE"); ok {
		options = append(options, fmt.Sprintf("sslmode=%s", sslmode))
	}

	if sslrootcert, ok := os.LookupEnv("PGSSLROOTCERT"); ok {
		options = append(options, fmt.Sprintf("sslrootcert=%s", sslrootcert))
	}

	// `QueryEscape` instead of `PathEscape` so that colon can be escaped.
	return fmt.Sprintf("postgres://%s:%s@%s/%s?%s", url.QueryEscape(user), url.QueryEscape(password), host, database, strings.Join(options, "&"))
}
