package offline

import (
	"context"
	"database/sql"

	"github.com/markitect-dev/markitect-liquibase-sub001/database"
)

// Pseudo database for generating SQL text without a connection
type OfflineDatabase struct {
	kind     database.Kind
	defaults database.ConnectionDefaults
}

func NewDatabase(kind database.Kind, defaults database.ConnectionDefaults) *OfflineDatabase {
	return &OfflineDatabase{
		kind:     kind,
		defaults: defaults,
	}
}

func (d *OfflineDatabase) Defaults(ctx context.Context) (database.ConnectionDefaults, error) {
	return d.defaults, nil
}

func (d *OfflineDatabase) Kind() database.Kind {
	return d.kind
}

func (d *OfflineDatabase) DB() *sql.DB {
	return nil
}

func (d *OfflineDatabase) Close() error {
	return nil
}
