package activations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/brunononogaki/meubonsai-app-v2/internal/common"
	"github.com/brunononogaki/meubonsai-app-v2/internal/dbx"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token *models.ActivationToken) (*models.ActivationToken, error) {
	query := `
		INSERT INTO activation_tokens (id, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, token.ID, token.UserID, token.ExpiresAt).
		Scan(&token.CreatedAt, &token.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

func (r *PostgresRepository) FindOneValidByID(ctx context.Context, id uuid.UUID) (*models.ActivationToken, error) {
	query := `
		SELECT id, user_id, used_at, expires_at, created_at, updated_at
		FROM activation_tokens
		WHERE id = $1 AND used_at IS NULL AND expires_at > now()
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) MarkUsed(ctx context.Context, id uuid.UUID) (*models.ActivationToken, error) {
	// Conditional update: the WHERE clause re-checks validity at commit
	// time, so concurrent redeemers race on the row and only one wins.
	query := `
		UPDATE activation_tokens
		SET used_at = now(), updated_at = now()
		WHERE id = $1 AND used_at IS NULL AND expires_at > now()
		RETURNING id, user_id, used_at, expires_at, created_at, updated_at
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.ActivationToken, error) {
	token := &models.ActivationToken{}
	err := row.Scan(&token.ID, &token.UserID, &token.UsedAt,
		&token.ExpiresAt, &token.CreatedAt, &token.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}
