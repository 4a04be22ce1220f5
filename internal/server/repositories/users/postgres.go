package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brunononogaki/meubonsai-app-v2/internal/common"
	"github.com/brunononogaki/meubonsai-app-v2/internal/dbx"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/models"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, username, email, password, features)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.Password, user.Features).
		Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindOneByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password, features, created_at, updated_at
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`
	return r.findOne(ctx, query, username)
}

func (r *PostgresRepository) FindOneByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password, features, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	return r.findOne(ctx, query, email)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Features, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET username = $2, email = $3, password = $4, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.Password).
		Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if dup := mapUniqueViolation(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) SetFeatures(ctx context.Context, userID uuid.UUID, features models.FeatureSet) error {
	query := `
		UPDATE users
		SET features = $2, updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, userID, features)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) UsernameTaken(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE LOWER(username) = LOWER($1) AND id <> $2
		)
	`
	return r.exists(ctx, query, username, excludeID)
}

func (r *PostgresRepository) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE LOWER(email) = LOWER($1) AND id <> $2
		)
	`
	return r.exists(ctx, query, email, excludeID)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, value string, excludeID uuid.UUID) (bool, error) {
	var taken bool
	if err := r.db.QueryRowContext(ctx, query, value, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return taken, nil
}

// mapUniqueViolation translates a 23505 on one of the case-folded unique
// indexes into the matching sentinel. Any other error maps to nil.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}

	switch pgErr.ConstraintName {
	case "users_username_unique":
		return common.ErrorDuplicateUsername
	case "users_email_unique":
		return common.ErrorDuplicateEmail
	}
	return nil
}
