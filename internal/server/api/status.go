package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunononogaki/meubonsai-app-v2/internal/server/apperrors"
)

// GetStatus reports the health of the service's dependencies. A failed
// database check answers 503 with a generic body.
func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.status.Check(c.Request.Context())
	if err != nil {
		h.logger.Error(c.Request.Context(), "status check failed", "error", err)
		appErr := apperrors.NewServiceUnavailableError()
		c.JSON(appErr.StatusCode, appErr)
		return
	}
	c.JSON(http.StatusOK, status)
}
