package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/repomanager"
)

// SessionManager issues one long-lived bearer token per user and resolves
// presented tokens back to users.
type SessionManager struct {
	repos    repomanager.RepositoryManager
	identity *IdentityResolver
	log      logging.Logger
	metrics  *metrics.Metrics
	newToken func() (string, error)
}

func NewSessionManager(m repomanager.RepositoryManager, identity *IdentityResolver, log logging.Logger, mt *metrics.Metrics) *SessionManager {
	return &SessionManager{
		repos:    m,
		identity: identity,
		log:      log.With("module", "sessions"),
		metrics:  mt,
		newToken: func() (string, error) { return common.MakeRandHexString(common.SessionTokenSize) },
	}
}

// IssueOrReuse returns the user's existing token, or creates the session on
// first login. When a concurrent login creates it first, that login's token
// is returned.
func (m *SessionManager) IssueOrReuse(ctx context.Context, user *models.User) (string, error) {
	repo := m.repos.Sessions(m.repos.DB())

	existing, err := repo.FindByUserID(ctx, user.ID)
	if err == nil {
		return existing.Token, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", storeError("find session", err)
	}

	token, err := m.newToken()
	if err != nil {
		return "", fmt.Errorf("%w: generate token: %v", common.ErrorInternal, err)
	}

	created, err := repo.Create(ctx, &models.Session{Token: token, UserID: user.ID, UserEmail: user.Email})
	if err != nil {
		if errors.Is(err, common.ErrTokenCollision) {
			m.log.Error(ctx, "session token collision", "user_id", user.ID)
			return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		return "", storeError("create session", err)
	}
	if created {
		m.metrics.IncrementSessionsIssued()
		m.log.Info(ctx, "session issued", "user_id", user.ID)
		return token, nil
	}

	winner, err := repo.FindByUserID(ctx, user.ID)
	if err != nil {
		return "", storeError("reread session", err)
	}
	return winner.Token, nil
}

// Authenticate resolves a bearer credential ("Bearer <token>" or the bare
// token) to its user. Any credential that does not lead to an existing user
// is common.ErrorUnauthorized. The returned token has the scheme stripped.
func (m *SessionManager) Authenticate(ctx context.Context, credential string) (*models.User, string, error) {
	token := ParseCredential(credential)
	if token == "" {
		return nil, "", m.reject(ctx, "missing credential")
	}

	session, err := m.repos.Sessions(m.repos.DB()).FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", m.reject(ctx, "unknown token")
		}
		return nil, "", storeError("find session", err)
	}

	user, err := m.identity.ResolveByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", m.reject(ctx, "session owner not found", "user_id", session.UserID)
		}
		return nil, "", err
	}

	return user, token, nil
}

func (m *SessionManager) reject(ctx context.Context, reason string, args ...any) error {
	m.metrics.IncrementAuthFailures()
	m.log.Warn(ctx, "authentication rejected", append([]any{"reason", reason}, args...)...)
	return common.ErrorUnauthorized
}

// ParseCredential strips surrounding whitespace and an optional
// case-insensitive Bearer scheme.
func ParseCredential(raw string) string {
	s := strings.TrimSpace(raw)
	scheme, rest, found := strings.Cut(s, " ")
	if found && strings.EqualFold(scheme, common.BearerScheme) {
		return strings.TrimSpace(rest)
	}
	if strings.EqualFold(s, common.BearerScheme) {
		return ""
	}
	return s
}
