// Package users declares the server-side repository contract for user
// records and provides PostgreSQL and in-memory implementations.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
)

// Repository defines the document-style primitives the identity and balance
// services need: find by field equality, insert one, update one by id.
//
// Lookups return common.ErrorNotFound when nothing matches. An id that is not
// a well-formed UUID is reported as not found as well.
type Repository interface {
	// Create inserts user and reports whether a row was written. Inserting an
	// email that already exists is a no-op; callers re-read by email to obtain
	// the stored record.
	Create(ctx context.Context, user *models.User) (bool, error)

	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByIDForUpdate reads the user and locks the row until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.User, error)

	UpdateName(ctx context.Context, id string, name string, updatedAt time.Time) error
	UpdateCoins(ctx context.Context, id string, coins int64, updatedAt time.Time) error
}
