package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
)

// MemoryRepository keeps sessions in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	byToken map[string]models.Session
	byUser  map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byToken: make(map[string]models.Session),
		byUser:  make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, session *models.Session) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[session.UserID]; ok {
		return false, nil
	}
	if _, ok := r.byToken[session.Token]; ok {
		return false, common.ErrTokenCollision
	}

	stored := *session
	stored.CreatedAt = r.now().UTC()
	r.byToken[stored.Token] = stored
	r.byUser[stored.UserID] = stored.Token
	return true, nil
}

func (r *MemoryRepository) FindByUserID(ctx context.Context, userID string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	s := r.byToken[token]
	return &s, nil
}

func (r *MemoryRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}
