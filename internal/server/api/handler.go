// Package api is the HTTP surface of the server: a versioned JSON API
// served by gin, translating between request bodies and the services.
package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/brunononogaki/meubonsai-app-v2/internal/logging"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/apperrors"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/services"
)

const (
	msgInvalidBody    = "Dados enviados no corpo da requisição são inválidos."
	actionInvalidBody = "Ajuste os dados enviados e tente novamente."
)

// Handler binds the services to gin routes.
type Handler struct {
	users         *services.UserService
	activations   *services.ActivationService
	sessions      *services.SessionService
	auth          *services.AuthenticationService
	status        *services.StatusService
	migrator      *services.MigratorService
	logger        logging.Logger
	secureCookies bool
}

// NewHandler constructs a Handler. secureCookies marks session cookies
// Secure; enable it whenever the API is served over HTTPS.
func NewHandler(
	users *services.UserService,
	activations *services.ActivationService,
	sessions *services.SessionService,
	auth *services.AuthenticationService,
	status *services.StatusService,
	migrator *services.MigratorService,
	logger logging.Logger,
	secureCookies bool,
) *Handler {
	return &Handler{
		users:         users,
		activations:   activations,
		sessions:      sessions,
		auth:          auth,
		status:        status,
		migrator:      migrator,
		logger:        logger,
		secureCookies: secureCookies,
	}
}

// renderError writes the JSON body for a failed operation. Expected
// domain failures carry their own status and body; anything else is
// logged and collapsed into a generic 500.
func (h *Handler) renderError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode, appErr)
		return
	}

	h.logger.Error(c.Request.Context(), "unexpected failure",
		"method", c.Request.Method, "path", c.FullPath(), "error", err)

	internal := apperrors.NewInternalServerError()
	c.JSON(internal.StatusCode, internal)
}
