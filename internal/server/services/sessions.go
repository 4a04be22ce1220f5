package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brunononogaki/meubonsai-app-v2/internal/common"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/apperrors"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/models"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/repomanager"
)

const (
	// sessionTokenBytes random bytes become 96 hex chars, enough to make
	// guessing a live token infeasible.
	sessionTokenBytes = 48

	msgSessionNotFound    = "Usuário não possui sessão ativa."
	actionSessionNotFound = "Verifique se este usuário está logado e tente novamente."
)

// SessionService mints and validates the opaque tokens that authenticate
// logged-in requests.
type SessionService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	validity time.Duration
}

// NewSessionService constructs a SessionService.
func NewSessionService(db *sql.DB, rm repomanager.RepositoryManager, validity time.Duration) *SessionService {
	return &SessionService{db: db, rm: rm, validity: validity}
}

// Validity is the fixed session lifetime, exposed so the HTTP layer can
// align the cookie MaxAge with it.
func (s *SessionService) Validity() time.Duration {
	return s.validity
}

// Create mints a session for the user. The token comes from a
// cryptographically secure source and is only ever returned here; the
// caller is responsible for delivering it as a secret.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	token, err := common.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %w", err)
	}

	session := &models.Session{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.validity),
	}

	created, err := s.rm.Sessions(s.db).Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}
	return created, nil
}

// FindOneValidByToken resolves an unexpired session by its opaque token.
// Absent and expired sessions produce the same NotFoundError.
func (s *SessionService) FindOneValidByToken(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.rm.Sessions(s.db).FindOneValidByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, apperrors.NewNotFoundError(msgSessionNotFound, actionSessionNotFound)
		}
		return nil, err
	}
	return session, nil
}
