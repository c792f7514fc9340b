package oracle

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// sqliteDriver opens a local SQLite file for rehearsing a run. The service
// name is the database path; host, port and credentials are ignored.
type sqliteDriver struct{}

func init() {
	register(sqliteDriver{})
}

func (sqliteDriver) Name() string { return "sqlite" }

func (sqliteDriver) ProbeClient() (ClientVersion, error) {
	return ClientVersion{Library: "built-in"}, nil
}

func (sqliteDriver) Open(ctx context.Context, p Params) (*sql.DB, error) {
	db, err := openAndPing(ctx, "sqlite", p.Service)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
