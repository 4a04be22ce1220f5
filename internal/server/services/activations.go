package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/brunononogaki/meubonsai-app-v2/internal/common"
	"github.com/brunononogaki/meubonsai-app-v2/internal/dbx"
	"github.com/brunononogaki/meubonsai-app-v2/internal/logging"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/apperrors"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/email"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/models"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/repomanager"
)

const (
	msgActivationNotFound    = "O token de ativação utilizado não foi encontrado no sistema ou expirou."
	actionActivationNotFound = "Faça um novo cadastro."

	activationEmailSubject = "Ative seu cadastro no MeuBonsai.App"
)

var activationEmailTemplate = template.Must(template.New("activation").Parse(`Olá, {{.Username}}!

Clique no link abaixo para ativar seu cadastro no MeuBonsai.App:

{{.ActivationURL}}

O link é válido por {{printf "%.0f" .Validity.Minutes}} minutos. Caso você não tenha solicitado este cadastro, ignore este email.
`))

// ActivationService issues and redeems the single-use tokens that gate a
// fresh account's upgrade to login capability.
type ActivationService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	sender   email.Sender
	logger   logging.Logger
	from     string
	origin   string
	validity time.Duration
}

// NewActivationService constructs an ActivationService. origin is the
// public origin of the web application, used to build activation links.
func NewActivationService(db *sql.DB, rm repomanager.RepositoryManager, sender email.Sender, logger logging.Logger, from, origin string, validity time.Duration) *ActivationService {
	return &ActivationService{
		db:       db,
		rm:       rm,
		sender:   sender,
		logger:   logger,
		from:     from,
		origin:   origin,
		validity: validity,
	}
}

// Create issues a token for the user with a fixed expiration window.
func (s *ActivationService) Create(ctx context.Context, userID uuid.UUID) (*models.ActivationToken, error) {
	token := &models.ActivationToken{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.validity),
	}

	created, err := s.rm.Activations(s.db).Create(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error creating activation token: %w", err)
	}
	return created, nil
}

// CreateAndSendEmail issues a token and mails the activation link. A
// delivery failure is logged and swallowed: the account already exists
// and must not be rolled back because of the mail relay.
func (s *ActivationService) CreateAndSendEmail(ctx context.Context, user *models.User) (*models.ActivationToken, error) {
	token, err := s.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	msg := email.Message{
		From:    s.from,
		To:      user.Email,
		Subject: activationEmailSubject,
		Text:    s.renderEmailText(user.Username, token.ID),
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Error(ctx, "activation email delivery failed",
			"user_id", user.ID, "error", err)
	}

	return token, nil
}

// FindOneValidByID returns the token only while it is redeemable. An
// unknown id, a malformed id, a redeemed token, and an expired token all
// produce the same NotFoundError so token state does not leak.
func (s *ActivationService) FindOneValidByID(ctx context.Context, id string) (*models.ActivationToken, error) {
	tokenID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError(msgActivationNotFound, actionActivationNotFound)
	}

	token, err := s.rm.Activations(s.db).FindOneValidByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, apperrors.NewNotFoundError(msgActivationNotFound, actionActivationNotFound)
		}
		return nil, err
	}
	return token, nil
}

// Redeem consumes the token and upgrades the owner to login capability.
// Both writes commit as one transaction: the conditional used_at update
// picks exactly one winner under concurrency, and a crash between the two
// statements cannot leave a redeemed-but-not-upgraded user.
func (s *ActivationService) Redeem(ctx context.Context, id string) (*models.ActivationToken, error) {
	tokenID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError(msgActivationNotFound, actionActivationNotFound)
	}

	var redeemed *models.ActivationToken
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.rm.Activations(tx).MarkUsed(ctx, tokenID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return apperrors.NewNotFoundError(msgActivationNotFound, actionActivationNotFound)
			}
			return err
		}

		if err := s.rm.Users(tx).SetFeatures(ctx, token.UserID, models.ActivatedUserFeatures()); err != nil {
			return fmt.Errorf("error upgrading user features: %w", err)
		}

		redeemed = token
		return nil
	})
	if err != nil {
		return nil, err
	}

	return redeemed, nil
}

func (s *ActivationService) renderEmailText(username string, tokenID uuid.UUID) string {
	var b strings.Builder
	err := activationEmailTemplate.Execute(&b, struct {
		Username      string
		ActivationURL string
		Validity      time.Duration
	}{
		Username:      username,
		ActivationURL: fmt.Sprintf("%s/cadastro/ativar/%s", s.origin, tokenID),
		Validity:      s.validity,
	})
	if err != nil {
		// static template with string fields; execution cannot fail
		panic(err)
	}
	return b.String()
}
