// Package services implements the account domain: identity resolution,
// session issuance and authentication, coin balance adjustment, and the
// façade the transports call.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/repomanager"
)

// IdentityResolver maps an email to its user record, creating it on first
// sight.
type IdentityResolver struct {
	repos   repomanager.RepositoryManager
	log     logging.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewIdentityResolver(m repomanager.RepositoryManager, log logging.Logger, mt *metrics.Metrics) *IdentityResolver {
	return &IdentityResolver{
		repos:   m,
		log:     log.With("module", "identity"),
		metrics: mt,
		now:     time.Now,
	}
}

// ResolveOrCreate returns the user owning email. An unknown email gets a new
// user named name, or the local part of the email when name is nil. For a
// known email a non-nil name that differs from the stored one replaces it.
func (r *IdentityResolver) ResolveOrCreate(ctx context.Context, email string, name *string) (*models.User, error) {
	repo := r.repos.Users(r.repos.DB())

	user, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if name == nil || *name == user.Name {
			return user, nil
		}
		if err := repo.UpdateName(ctx, user.ID, *name, r.now().UTC()); err != nil {
			return nil, storeError("update name", err)
		}
		r.log.Info(ctx, "user renamed", "user_id", user.ID)

	case errors.Is(err, common.ErrorNotFound):
		displayName := localPart(email)
		if name != nil {
			displayName = *name
		}
		created, err := repo.Create(ctx, &models.User{Email: email, Name: displayName})
		if err != nil {
			return nil, storeError("create user", err)
		}
		if created {
			r.metrics.IncrementUsersCreated()
			r.log.Info(ctx, "user created", "email", email)
		}

	default:
		return nil, storeError("find user", err)
	}

	user, err = repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, storeError("reread user", err)
	}
	return user, nil
}

// ResolveByID returns the user with id, or common.ErrorNotFound.
func (r *IdentityResolver) ResolveByID(ctx context.Context, id string) (*models.User, error) {
	user, err := r.repos.Users(r.repos.DB()).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, storeError("find user", err)
	}
	return user, nil
}

func localPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
