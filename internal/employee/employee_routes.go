package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(tokens))
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("", middleware.RateLimitByUser(10, 30), handler.GetAll)
		employees.GET("/options", middleware.RateLimitByUser(10, 30), handler.GetOptions)
		employees.GET("/export", middleware.RateLimitByUser(1, 3), handler.Export)
		employees.GET("/:id", middleware.RateLimitByUser(10, 30), handler.GetById)

		employees.POST("",
			middleware.RateLimitByUser(2, 10),
			middleware.Idempotency(rdb, logger),
			handler.Create,
		)
		employees.PUT("/:id", middleware.RateLimitByUser(2, 10), handler.Update)
		employees.PATCH("/:id", middleware.RateLimitByUser(2, 10), handler.Patch)
		employees.DELETE("/:id", middleware.RateLimitByUser(1, 5), handler.Delete)
	}
}
