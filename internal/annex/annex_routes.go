package annex

import (
	"jornada40/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the annex download on the authenticated contracts
// group.
func RegisterRoutes(contracts *gin.RouterGroup, handler *Handler) {
	contracts.GET("/:id/annex", middleware.RateLimitByUser(1, 5), handler.Download)
}
