package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
)

// DryRunDatabase accepts every statement without sending it anywhere. Queries
// return no rows. Defaults still come from the wrapped database.
type DryRunDatabase struct {
	wrapped  Database
	dryRunDB *sql.DB
}

func NewDryRunDatabase(db Database) *DryRunDatabase {
	return &DryRunDatabase{
		wrapped:  db,
		dryRunDB: sql.OpenDB(dryRunConnector{}),
	}
}

func (d *DryRunDatabase) Defaults(ctx context.Context) (ConnectionDefaults, error) {
	return d.wrapped.Defaults(ctx)
}

func (d *DryRunDatabase) Kind() Kind {
	return d.wrapped.Kind()
}

func (d *DryRunDatabase) DB() *sql.DB {
	return d.dryRunDB
}

func (d *DryRunDatabase) Close() error {
	if err := d.dryRunDB.Close(); err != nil {
		return err
	}
	return d.wrapped.Close()
}

// A connector needs no driver registration, so any number of dry-run
// databases can exist at once.
type dryRunConnector struct{}

func (c dryRunConnector) Connect(ctx context.Context) (driver.Conn, error) {
	return &dryRunConn{}, nil
}

func (c dryRunConnector) Driver() driver.Driver {
	return &dryRunDriver{}
}

type dryRunDriver struct{}

func (d *dryRunDriver) Open(name string) (driver.Conn, error) {
	return &dryRunConn{}, nil
}

type dryRunConn struct{}

func (c *dryRunConn) Prepare(query string) (driver.Stmt, error) {
	return &dryRunStmt{query: query}, nil
}

func (c *dryRunConn) Close() error {
	return nil
}

func (c *dryRunConn) Begin() (driver.Tx, error) {
	return &dryRunTx{}, nil
}

type dryRunTx struct{}

func (tx *dryRunTx) Commit() error {
	return nil
}

func (tx *dryRunTx) Rollback() error {
	return nil
}

type dryRunStmt struct {
	query string
}

func (s *dryRunStmt) Close() error {
	return nil
}

func (s *dryRunStmt) NumInput() int {
	return -1
}

func (s *dryRunStmt) Exec(args []driver.Value) (driver.Result, error) {
	return &dryRunResult{}, nil
}

func (s *dryRunStmt) Query(args []driver.Value) (driver.Rows, error) {
	return &dryRunRows{closed: false}, nil
}

type dryRunResult struct{}

func (r *dryRunResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (r *dryRunResult) RowsAffected() (int64, error) {
	return 0, nil
}

type dryRunRows struct {
	closed bool
}

func (r *dryRunRows) Columns() []string {
	return []string{}
}

func (r *dryRunRows) Close() error {
	r.closed = true
	return nil
}

func (r *dryRunRows) Next(dest []driver.Value) error {
	return io.EOF
}
