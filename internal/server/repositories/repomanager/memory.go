package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps all data in process memory. It is meant for
// local development and tests; nothing survives a restart.
type MemoryRepositoryManager struct {
	txMu     sync.Mutex
	users    *users.MemoryRepository
	sessions *sessions.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		sessions: sessions.NewMemoryRepository(),
	}
}

// WithinTx runs fn while holding a store-wide lock, so units of work never
// interleave. There is no rollback.
func (m *MemoryRepositoryManager) WithinTx(ctx context.Context, fn dbx.TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }
func (m *MemoryRepositoryManager) Ping(ctx context.Context) error          { return nil }
func (m *MemoryRepositoryManager) Close() error                            { return nil }

// DB returns nil; memory repositories ignore the handle.
func (m *MemoryRepositoryManager) DB() dbx.DBTX { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Sessions(dbx.DBTX) sessions.Repository {
	return m.sessions
}

// UserStore exposes the concrete user store.
func (m *MemoryRepositoryManager) UserStore() *users.MemoryRepository {
	return m.users
}
