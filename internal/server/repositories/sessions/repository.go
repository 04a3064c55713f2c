// Package sessions stores the bearer sessions issued at login. Each user owns
// at most one session and a token identifies exactly one session.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
)

// Repository persists sessions.
//
// Create inserts the session unless one already exists for session.UserID;
// the returned bool reports whether this call created it. A token already
// held by another session yields common.ErrTokenCollision.
//
// Lookups return common.ErrorNotFound when nothing matches.
type Repository interface {
	Create(ctx context.Context, session *models.Session) (bool, error)
	FindByUserID(ctx context.Context, userID string) (*models.Session, error)
	FindByToken(ctx context.Context, token string) (*models.Session, error)
}
