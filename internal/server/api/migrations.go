package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPendingMigrations returns the migrations not yet applied, in order.
func (h *Handler) ListPendingMigrations(c *gin.Context) {
	pending, err := h.migrator.Pending(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

// ApplyMigrations runs the pending migrations. 201 when at least one
// was applied, 200 when the schema was already current.
func (h *Handler) ApplyMigrations(c *gin.Context) {
	applied, err := h.migrator.ApplyPending(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	status := http.StatusOK
	if len(applied) > 0 {
		status = http.StatusCreated
	}
	c.JSON(status, applied)
}
