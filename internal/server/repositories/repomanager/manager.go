package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/placementportal/internal/dbx"
	"github.com/dmitrijs2005/placementportal/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/placementportal/internal/server/repositories/applications"
)

// RepositoryManager vends repositories bound to db, which is either the pool
// or a transaction opened by dbx.WithTx, and owns schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Applications(db dbx.DBTX) applications.Repository
}
