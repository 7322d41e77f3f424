package customer

import (
	"jornada40/internal/auth/token"
	"jornada40/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, tokens *token.Manager, logger *zap.Logger) {
	me := r.Group("/customers/me")
	me.Use(middleware.AuthMiddleware(tokens))
	me.Use(middleware.ContextLogger(logger))
	{
		me.GET("", middleware.RateLimitByUser(10, 30), handler.GetMe)
		me.PATCH("", middleware.RateLimitByUser(2, 10), handler.PatchMe)
	}
}
