package store

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// runMigrations applies embedded goose migrations. The SQL is written to be
// valid for both SQLite and Postgres.
func runMigrations(ctx context.Context, db *sql.DB, driver string) error {
	goose.SetBaseFS(migrationsFS)

	dialect := "sqlite3"
	if driver == DriverPostgres {
		dialect = "postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}
