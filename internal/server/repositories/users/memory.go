package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. It hands out copies so
// callers never alias stored records.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return false, nil
	}

	now := r.now().UTC()
	stored := &models.User{
		ID:        uuid.NewString(),
		Email:     user.Email,
		Name:      user.Name,
		Coins:     user.Coins,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	return true, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.copyOf(id)
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copyOf(id)
}

// GetByIDForUpdate is GetByID: isolation comes from the manager's WithinTx.
func (r *MemoryRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) UpdateName(ctx context.Context, id string, name string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Name = name
	u.UpdatedAt = updatedAt
	return nil
}

func (r *MemoryRepository) UpdateCoins(ctx context.Context, id string, coins int64, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Coins = coins
	u.UpdatedAt = updatedAt
	return nil
}

// Delete removes a user. Nothing in the service deletes users; tests use it
// to produce orphaned sessions.
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepository) copyOf(id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}
