// Package sessions declares the repository contract for login sessions.
package sessions

import (
	"context"

	"github.com/brunononogaki/meubonsai-app-v2/internal/server/models"
)

// Repository defines storage operations over session rows. Sessions are
// immutable once created; expiry makes them unusable without deletion.
type Repository interface {
	// Create inserts a new session row.
	Create(ctx context.Context, session *models.Session) (*models.Session, error)

	// FindOneValidByToken returns the unexpired session carrying the given
	// opaque token. Absent and expired both collapse to ErrorNotFound.
	FindOneValidByToken(ctx context.Context, token string) (*models.Session, error)
}
