package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/users"
)

var errStoreDown = errors.New("connection refused")

func testLogger() logging.Logger {
	return logging.NewJSON(io.Discard, "debug")
}

func newMemoryService(t *testing.T) (*AccountService, *repomanager.MemoryRepositoryManager) {
	t.Helper()
	m := repomanager.NewMemoryRepositoryManager()
	return NewAccountService(m, testLogger(), metrics.New()), m
}

func strPtr(s string) *string { return &s }

// faultyManager wraps the in-memory manager and lets tests swap in failing
// repositories.
type faultyManager struct {
	*repomanager.MemoryRepositoryManager
	users    users.Repository
	sessions sessions.Repository
	pingErr  error
}

func newFaultyManager() *faultyManager {
	return &faultyManager{MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
}

func (f *faultyManager) Users(db dbx.DBTX) users.Repository {
	if f.users != nil {
		return f.users
	}
	return f.MemoryRepositoryManager.Users(db)
}

func (f *faultyManager) Sessions(db dbx.DBTX) sessions.Repository {
	if f.sessions != nil {
		return f.sessions
	}
	return f.MemoryRepositoryManager.Sessions(db)
}

func (f *faultyManager) Ping(ctx context.Context) error { return f.pingErr }

// failingUsers delegates to next unless the matching error is set.
type failingUsers struct {
	next           users.Repository
	getByEmailErr  error
	createErr      error
	updateNameErr  error
	updateCoinsErr error
	lockErr        error
}

func (f *failingUsers) Create(ctx context.Context, u *models.User) (bool, error) {
	if f.createErr != nil {
		return false, f.createErr
	}
	return f.next.Create(ctx, u)
}

func (f *failingUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	return f.next.GetByEmail(ctx, email)
}

func (f *failingUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.next.GetByID(ctx, id)
}

func (f *failingUsers) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	return f.next.GetByIDForUpdate(ctx, id)
}

func (f *failingUsers) UpdateName(ctx context.Context, id, name string, at time.Time) error {
	if f.updateNameErr != nil {
		return f.updateNameErr
	}
	return f.next.UpdateName(ctx, id, name, at)
}

func (f *failingUsers) UpdateCoins(ctx context.Context, id string, coins int64, at time.Time) error {
	if f.updateCoinsErr != nil {
		return f.updateCoinsErr
	}
	return f.next.UpdateCoins(ctx, id, coins, at)
}

// scriptedSessions returns canned results in order.
type scriptedSessions struct {
	findByUser []sessionResult
	findCalls  int
	createOK   bool
	createErr  error
	created    []*models.Session
	findByTok  *models.Session
	findTokErr error
}

type sessionResult struct {
	s   *models.Session
	err error
}

func (f *scriptedSessions) Create(ctx context.Context, s *models.Session) (bool, error) {
	f.created = append(f.created, s)
	return f.createOK, f.createErr
}

func (f *scriptedSessions) FindByUserID(ctx context.Context, userID string) (*models.Session, error) {
	r := f.findByUser[f.findCalls]
	f.findCalls++
	return r.s, r.err
}

func (f *scriptedSessions) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	return f.findByTok, f.findTokErr
}
