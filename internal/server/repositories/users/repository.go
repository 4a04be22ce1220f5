// Package users declares the repository contract for the user directory.
package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/brunononogaki/meubonsai-app-v2/internal/server/models"
)

// Repository defines storage operations over user rows. Lookups compare
// usernames and emails case-insensitively.
type Repository interface {
	// Create inserts a new user. It returns ErrorDuplicateUsername or
	// ErrorDuplicateEmail when a unique index rejects the row.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindOneByUsername returns the user with the given username,
	// compared case-insensitively, or ErrorNotFound.
	FindOneByUsername(ctx context.Context, username string) (*models.User, error)

	// FindOneByEmail returns the user with the given email, compared
	// case-insensitively, or ErrorNotFound.
	FindOneByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists username, email, and password of an existing user and
	// refreshes updated_at. Duplicate errors map like Create.
	Update(ctx context.Context, user *models.User) (*models.User, error)

	// SetFeatures replaces the user's capability set and refreshes
	// updated_at. Returns ErrorNotFound when the user does not exist.
	SetFeatures(ctx context.Context, userID uuid.UUID, features models.FeatureSet) error

	// UsernameTaken reports whether another user already holds the username
	// under case folding. excludeID skips the user's own row on updates;
	// pass uuid.Nil on creation.
	UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)

	// EmailTaken is the email counterpart of UsernameTaken.
	EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}
