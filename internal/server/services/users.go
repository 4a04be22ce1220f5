// Package services contains the server-side business logic: the user
// directory, the activation token state machine, the session store, the
// authenticator, and the operational status/migration helpers.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/brunononogaki/meubonsai-app-v2/internal/common"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/apperrors"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/models"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/password"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/repomanager"
)

const (
	msgDuplicateUsername = "O username informado já está sendo utilizado."
	msgDuplicateEmail    = "O email informado já está sendo utilizado."

	actionDuplicateUsernameOnCreate = "Utilize outro username para realizar o cadastro."
	actionDuplicateEmailOnCreate    = "Utilize outro email para realizar o cadastro."
	actionDuplicateUsernameOnUpdate = "Utilize outro username para realizar esta operação."
	actionDuplicateEmailOnUpdate    = "Utilize outro email para realizar esta operação."

	msgUsernameNotFound    = "O username informado não foi encontrado no sistema."
	actionUsernameNotFound = "Verifique se o username está digitado corretamente."
)

// UserPatch carries the optional fields of a profile update. Nil means
// "leave untouched".
type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserService owns user records: registration, profile updates, and
// case-insensitive lookups. Capability upgrades are not exposed here;
// only activation redemption performs them.
type UserService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	hasher *password.Hasher
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, hasher *password.Hasher) *UserService {
	return &UserService{db: db, rm: rm, hasher: hasher}
}

// Create registers a new user with the starting capability set. Duplicate
// username/email surface as a ValidationError naming the colliding field,
// whether caught by the pre-check or by the unique index on insert.
func (s *UserService) Create(ctx context.Context, username, email, plaintext string) (*models.User, error) {
	repo := s.rm.Users(s.db)

	// Optimistic pre-check for a friendly error; the unique indexes remain
	// the authoritative enforcement under races.
	taken, err := repo.UsernameTaken(ctx, username, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewValidationError(msgDuplicateUsername, actionDuplicateUsernameOnCreate)
	}

	taken, err = repo.EmailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewValidationError(msgDuplicateEmail, actionDuplicateEmailOnCreate)
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: hash,
		Features: models.NewUserFeatures(),
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		return nil, translateDuplicate(err, true)
	}

	return created, nil
}

// Update applies a partial patch to the user identified by username.
// Unspecified fields stay untouched; changed username/email re-run the
// uniqueness check excluding the user's own row.
func (s *UserService) Update(ctx context.Context, username string, patch UserPatch) (*models.User, error) {
	repo := s.rm.Users(s.db)

	user, err := s.FindOneByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		taken, err := repo.UsernameTaken(ctx, *patch.Username, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewValidationError(msgDuplicateUsername, actionDuplicateUsernameOnUpdate)
		}
		user.Username = *patch.Username
	}

	if patch.Email != nil {
		taken, err := repo.EmailTaken(ctx, *patch.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewValidationError(msgDuplicateEmail, actionDuplicateEmailOnUpdate)
		}
		user.Email = *patch.Email
	}

	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.Password = hash
	}

	updated, err := repo.Update(ctx, user)
	if err != nil {
		return nil, translateDuplicate(err, false)
	}

	return updated, nil
}

// FindOneByUsername returns the user with the given username, compared
// case-insensitively.
func (s *UserService) FindOneByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.rm.Users(s.db).FindOneByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, apperrors.NewNotFoundError(msgUsernameNotFound, actionUsernameNotFound)
		}
		return nil, err
	}
	return user, nil
}

// FindOneByEmail returns the user with the given email, compared
// case-insensitively. The raw sentinel is returned on a miss so that the
// authenticator can fold it into its uniform unauthorized response.
func (s *UserService) FindOneByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.rm.Users(s.db).FindOneByEmail(ctx, email)
}

// translateDuplicate unifies constraint-violation failures with the
// pre-check rejections so both race outcomes look identical to callers.
func translateDuplicate(err error, onCreate bool) error {
	switch {
	case errors.Is(err, common.ErrorDuplicateUsername):
		if onCreate {
			return apperrors.NewValidationError(msgDuplicateUsername, actionDuplicateUsernameOnCreate)
		}
		return apperrors.NewValidationError(msgDuplicateUsername, actionDuplicateUsernameOnUpdate)
	case errors.Is(err, common.ErrorDuplicateEmail):
		if onCreate {
			return apperrors.NewValidationError(msgDuplicateEmail, actionDuplicateEmailOnCreate)
		}
		return apperrors.NewValidationError(msgDuplicateEmail, actionDuplicateEmailOnUpdate)
	}
	return err
}
