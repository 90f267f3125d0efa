package artists

import (
	"artistly/internal/shared/config"
	"artistly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupArtistRoutes registers artist profile routes
func SetupArtistRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	group := rg.Group("/artists")
	group.Use(middleware.JWTAuthWithConfig(cfg))
	{
		group.GET("", controller.ListArtists)
		group.GET("/:id", controller.GetArtist)

		profile := group.Group("/profile")
		profile.Use(middleware.RequireArtist())
		{
			profile.GET("", controller.GetMyProfile)
			profile.POST("", controller.CreateProfile)
			profile.PUT("", controller.UpdateProfile)
		}
	}
}
