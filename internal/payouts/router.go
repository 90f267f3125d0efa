package payouts

import (
	"artistly/internal/shared/config"
	"artistly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPayoutRoutes registers payout routes
func SetupPayoutRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	group := rg.Group("/payouts")
	group.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		group.GET("", controller.CalculatePayouts)
		group.POST("/settle", controller.MarkAsPaid)
		group.GET("/history", controller.ListHistory)
	}
}
