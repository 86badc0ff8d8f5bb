package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/placementportal/internal/client/migrations"
	"github.com/dmitrijs2005/placementportal/internal/dbx"
	"github.com/dmitrijs2005/placementportal/internal/filex"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded session schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	// progress lines would interleave with the interactive prompt
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite session database file at path, creating its
// directory when needed, and migrates it.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	dsn, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(ctx, dbx.DriverSQLite, dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
