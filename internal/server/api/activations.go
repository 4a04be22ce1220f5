package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RedeemActivation consumes an activation token and upgrades its owner
// to login capability. Unknown, expired, and already-used tokens all
// answer the same 404.
func (h *Handler) RedeemActivation(c *gin.Context) {
	token, err := h.activations.Redeem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}
