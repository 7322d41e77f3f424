package company

import (
	"jornada40/internal/auth/token"
	"jornada40/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	tokens *token.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware(tokens))
	companies.Use(middleware.ContextLogger(logger))
	{
		companies.GET("", middleware.RateLimitByUser(10, 30), handler.GetAll)
		companies.GET("/:id", middleware.RateLimitByUser(10, 30), handler.GetById)

		companies.POST("",
			middleware.RateLimitByUser(2, 10),
			middleware.Idempotency(rdb, logger),
			handler.Create,
		)
		companies.PUT("/:id", middleware.RateLimitByUser(2, 10), handler.Update)
		companies.PATCH("/:id", middleware.RateLimitByUser(2, 10), handler.Patch)
		companies.DELETE("/:id", middleware.RateLimitByUser(1, 5), handler.Delete)
	}
}
