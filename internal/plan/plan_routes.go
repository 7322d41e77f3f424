package plan

import (
	"jornada40/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	plans := r.Group("/plans")
	{
		plans.GET("", middleware.RateLimitByIP(5, 20), handler.GetAll)
	}
}
