package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunononogaki/meubonsai-app-v2/internal/server/apperrors"
)

// NewRouter wires the handler into a gin engine under /api/v1.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		err := apperrors.NewMethodNotAllowedError()
		c.JSON(err.StatusCode, err)
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, &apperrors.AppError{
			Name:       "NotFoundError",
			Message:    "Não foi possível encontrar este recurso no sistema.",
			Action:     "Verifique se o caminho (PATH) está digitado corretamente.",
			StatusCode: http.StatusNotFound,
		})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/users", h.CreateUser)
		v1.GET("/users/:username", h.GetUser)
		v1.PATCH("/users/:username", h.UpdateUser)

		v1.POST("/sessions", h.CreateSession)

		v1.PATCH("/activations/:id", h.RedeemActivation)

		v1.GET("/status", h.GetStatus)

		v1.GET("/migrations", h.ListPendingMigrations)
		v1.POST("/migrations", h.ApplyMigrations)
	}

	return r
}
