// Package repomanager vends the repositories of one storage backend together
// with its transaction runner, health check and schema migrations.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/users"
)

// RepositoryManager is the storage seam of the server. Repositories are bound
// to a DBTX so that callers can run them either on the shared handle (DB) or
// inside WithinTx.
type RepositoryManager interface {
	dbx.Transactor

	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error

	DB() dbx.DBTX
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
