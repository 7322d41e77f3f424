package contract

import (
	"jornada40/internal/auth/token"
	"jornada40/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the contract CRUD. extra handlers (the annex) are
// attached to the same authenticated group by the caller.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	tokens *token.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.RouterGroup {
	contracts := r.Group("/contracts")
	contracts.Use(middleware.AuthMiddleware(tokens))
	contracts.Use(middleware.ContextLogger(logger))
	{
		contracts.GET("", middleware.RateLimitByUser(10, 30), handler.GetAll)
		contracts.GET("/:id", middleware.RateLimitByUser(10, 30), handler.GetById)

		contracts.POST("",
			middleware.RateLimitByUser(2, 10),
			middleware.Idempotency(rdb, logger),
			handler.Create,
		)
		contracts.PUT("/:id", middleware.RateLimitByUser(2, 10), handler.Update)
		contracts.PATCH("/:id", middleware.RateLimitByUser(2, 10), handler.Patch)
		contracts.DELETE("/:id", middleware.RateLimitByUser(1, 5), handler.Delete)
	}
	return contracts
}
