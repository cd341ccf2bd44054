package db

import (
	"context"
	"database/sql"
	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// Open opens (or creates) the sqlite database at `path` and applies Schema to it.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = database.ExecContext(ctx, Schema)
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
