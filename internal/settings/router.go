package settings

import (
	"artistly/internal/shared/config"
	"artistly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSettingsRoutes registers settings routes
func SetupSettingsRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	group := rg.Group("/settings")
	group.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		group.GET("/financial", controller.GetFinancialSettings)
		group.PUT("/financial", controller.UpdateFinancialSettings)
	}
}
