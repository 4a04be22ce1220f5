package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brunononogaki/meubonsai-app-v2/internal/common"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/apperrors"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/models"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/password"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/repomanager"
)

const (
	msgUnauthorized    = "Dados de autenticação não conferem."
	actionUnauthorized = "Verifique se os dados enviados estão corretos."
)

// AuthenticationService verifies email+password credentials. Unknown
// email and wrong password are indistinguishable from the outside: same
// error, same message, and comparable latency.
type AuthenticationService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	hasher *password.Hasher
}

// NewAuthenticationService constructs an AuthenticationService.
func NewAuthenticationService(db *sql.DB, rm repomanager.RepositoryManager, hasher *password.Hasher) *AuthenticationService {
	return &AuthenticationService{db: db, rm: rm, hasher: hasher}
}

// GetAuthenticatedUser returns the user matching the credentials, or an
// UnauthorizedError with a deliberately generic message.
func (s *AuthenticationService) GetAuthenticatedUser(ctx context.Context, email, plaintext string) (*models.User, error) {
	user, err := s.rm.Users(s.db).FindOneByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn a comparison anyway so this path costs roughly the same
			// as a real mismatch.
			s.hasher.CompareDummy(plaintext)
			return nil, apperrors.NewUnauthorizedError(msgUnauthorized, actionUnauthorized)
		}
		return nil, err
	}

	if !s.hasher.Compare(plaintext, user.Password) {
		return nil, apperrors.NewUnauthorizedError(msgUnauthorized, actionUnauthorized)
	}

	return user, nil
}
