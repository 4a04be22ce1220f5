package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunononogaki/meubonsai-app-v2/internal/server/apperrors"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

type createSessionRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateSession logs a user in: credentials are verified, a session is
// minted, and its token is delivered both in the body and as an
// HttpOnly cookie aligned with the session lifetime.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderError(c, apperrors.NewValidationError(msgInvalidBody, actionInvalidBody))
		return
	}

	user, err := h.auth.GetAuthenticatedUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.SetCookie(SessionCookieName, session.Token,
		int(h.sessions.Validity().Seconds()), "/", "", h.secureCookies, true)
	c.JSON(http.StatusCreated, session)
}
