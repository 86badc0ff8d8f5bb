// Package repomanager provides a concrete RepositoryManager for the
// supported SQL databases, wiring together repository constructors and
// database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/placementportal/internal/dbx"
	"github.com/dmitrijs2005/placementportal/internal/logging"
	"github.com/dmitrijs2005/placementportal/internal/server/migrations"
	"github.com/dmitrijs2005/placementportal/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/placementportal/internal/server/repositories/applications"
	"github.com/pressly/goose/v3"
)

// dialect ties a database/sql driver to its goose dialect and migration
// directory inside migrations.Migrations.
type dialect struct {
	goose string
	dir   string
}

var dialects = map[string]dialect{
	dbx.DriverPostgres: {goose: "postgres", dir: "postgres"},
	dbx.DriverSQLite:   {goose: "sqlite3", dir: "sqlite"},
}

// SQLRepositoryManager vends database/sql backed repository implementations
// and exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dialect
	logger  logging.Logger
}

// Option configures a SQLRepositoryManager.
type Option func(*SQLRepositoryManager)

// WithLogger sends migration progress to l. Without it goose output is
// discarded.
func WithLogger(l logging.Logger) Option {
	return func(m *SQLRepositoryManager) {
		m.logger = l
	}
}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLRepository(db)
}

// Applications returns an applications.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Applications(db dbx.DBTX) applications.Repository {
	return applications.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations for the manager's
// dialect and runs them against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(gooseLogger{ctx: ctx, logger: m.logger})
	if err := goose.SetDialect(m.dialect.goose); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, m.dialect.dir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for driver, one of
// dbx.DriverPostgres or dbx.DriverSQLite.
func NewSQLRepositoryManager(driver string, opts ...Option) (RepositoryManager, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	m := &SQLRepositoryManager{dialect: d, logger: logging.Nop{}}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}
