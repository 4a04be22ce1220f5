package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunononogaki/meubonsai-app-v2/internal/server/apperrors"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/services"
)

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUser registers a new account and mails the activation link. The
// response echoes the submitted plaintext password once, as a
// confirmation of what was registered; it is never stored or returned
// again.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderError(c, apperrors.NewValidationError(msgInvalidBody, actionInvalidBody))
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	if _, err := h.activations.CreateAndSendEmail(c.Request.Context(), user); err != nil {
		h.renderError(c, err)
		return
	}

	resp := *user
	resp.Password = req.Password
	c.JSON(http.StatusCreated, &resp)
}

// GetUser returns the user's public record. The password field carries
// the bcrypt hash, never plaintext.
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.FindOneByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial profile update. Absent fields stay
// untouched.
func (h *Handler) UpdateUser(c *gin.Context) {
	var patch services.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.renderError(c, apperrors.NewValidationError(msgInvalidBody, actionInvalidBody))
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("username"), patch)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
