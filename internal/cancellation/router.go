package cancellation

import (
	"artistly/internal/shared/config"
	"artistly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCancellationRoutes registers cancellation routes
func SetupCancellationRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	group := rg.Group("/cancellations")
	group.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireCustomer())
	{
		group.POST("", controller.RequestCancellation)
	}
}
