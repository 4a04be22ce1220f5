package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, session *models.Session) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, token, user_id, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		session.ID, session.Token, session.UserID, session.ExpiresAt).
		Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

func (r *PostgresRepository) FindOneValidByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, token, user_id, expires_at, created_at, updated_at
		FROM sessions
		WHERE token = $1 AND expires_at > now()
	`
	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.ID, &session.Token, &session.UserID,
		&session.ExpiresAt, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}
