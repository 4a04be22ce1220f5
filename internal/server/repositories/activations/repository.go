// Package activations declares the repository contract for single-use
// account activation tokens.
package activations

import (
	"context"

	"github.com/google/uuid"

	"github.com/brunononogaki/meubonsai-app-v2/internal/server/models"
)

// Repository defines storage operations over activation token rows.
type Repository interface {
	// Create inserts a freshly issued token.
	Create(ctx context.Context, token *models.ActivationToken) (*models.ActivationToken, error)

	// FindOneValidByID returns the token only while it is still redeemable:
	// unused and unexpired. Missing, used, and expired all collapse to
	// ErrorNotFound.
	FindOneValidByID(ctx context.Context, id uuid.UUID) (*models.ActivationToken, error)

	// MarkUsed sets used_at on the token if and only if it is still valid
	// at commit time, returning the updated row. Under concurrent calls
	// exactly one caller gets the row; the rest get ErrorNotFound.
	MarkUsed(ctx context.Context, id uuid.UUID) (*models.ActivationToken, error)
}
