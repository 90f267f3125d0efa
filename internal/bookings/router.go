package bookings

import (
	"artistly/internal/shared/config"
	"artistly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers booking routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	group := rg.Group("/bookings")
	group.Use(middleware.JWTAuthWithConfig(cfg))
	{
		group.POST("", middleware.RequireCustomer(), controller.CreateBooking)
		group.GET("/me", controller.GetMyBookings)
		group.GET("/:id", controller.GetBooking)

		group.POST("/:id/claim", middleware.RequireArtist(), controller.ClaimJob)

		// Cancellation is shared between admins and assigned artists; the
		// service decides which path applies.
		group.POST("/:id/cancel", middleware.RequireRoles("ADMIN", "ARTIST"), controller.CancelBooking)

		admin := group.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", controller.GetAllBookings)
			admin.POST("/:id/approve", controller.ApproveBooking)
			admin.POST("/:id/confirm", controller.ManualConfirmBooking)
			admin.POST("/:id/assign", controller.AssignArtists)
			admin.POST("/:id/complete", controller.CompleteBooking)
			admin.POST("/:id/dispute", controller.DisputeBooking)
			admin.POST("/:id/resolve", controller.ResolveDispute)
			admin.DELETE("", controller.DeleteAllBookings)
		}
	}
}
