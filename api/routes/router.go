// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"artistly/internal/artists"
	"artistly/internal/auth"
	"artistly/internal/bookings"
	"artistly/internal/cancellation"
	"artistly/internal/notifications"
	"artistly/internal/payouts"
	"artistly/internal/settings"
	"artistly/internal/shared/config"
	"artistly/internal/shared/database"
	"artistly/internal/users"
	"artistly/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	// Shared services injected across route groups
	artistService  artists.Service
	bookingService bookings.Service
	settingService settings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Artist and settings services are wired first: the booking pipeline
		// and payout engine depend on both.
		r.setupArtistRoutes(api)
		r.setupSettingsRoutes(api)
		r.setupBookingRoutes(api)
		r.setupCancellationRoutes(api)
		r.setupPayoutRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "artistly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "artistly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupArtistRoutes configures artist profile routes
func (r *Router) setupArtistRoutes(rg *gin.RouterGroup) {
	artistRepo := artists.NewRepository(r.db.GetPostgreSQL())
	r.artistService = artists.NewService(artistRepo)
	artistController := artists.NewController(r.artistService)

	artists.SetupArtistRoutes(rg, artistController, r.config)
}

// setupSettingsRoutes configures financial settings routes
func (r *Router) setupSettingsRoutes(rg *gin.RouterGroup) {
	settingsRepo := settings.NewRepository(
		r.db.GetPostgreSQL(),
		cache.NewService(r.db.GetRedisClient()),
		r.config.Redis.SettingsTTL,
		r.config.Payout.DefaultFeePercent,
	)
	r.settingService = settings.NewService(settingsRepo)
	settingsController := settings.NewController(r.settingService)

	settings.SetupSettingsRoutes(rg, settingsController, r.config)
}

// setupBookingRoutes configures booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	userDirectory := users.NewDirectory(r.db.GetPostgreSQL())
	notifier := notifications.NewPublisher(r.producer)

	r.bookingService = bookings.NewService(
		bookingRepo,
		r.artistService,
		userDirectory,
		notifier,
		r.config.Payout.PurgeBatchSize,
	)
	bookingController := bookings.NewController(r.bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, r.config)
}

// setupCancellationRoutes configures customer cancellation routes
func (r *Router) setupCancellationRoutes(rg *gin.RouterGroup) {
	adapter := cancellation.NewBookingAdapter(r.bookingService)
	cancellationService := cancellation.NewService(adapter)
	cancellationController := cancellation.NewController(cancellationService)

	cancellation.SetupCancellationRoutes(rg, cancellationController, r.config)
}

// setupPayoutRoutes configures payout routes
func (r *Router) setupPayoutRoutes(rg *gin.RouterGroup) {
	payoutRepo := payouts.NewRepository(r.db.GetPostgreSQL())
	payoutService := payouts.NewService(payoutRepo, r.artistService, r.settingService)
	payoutController := payouts.NewController(payoutService)

	payouts.SetupPayoutRoutes(rg, payoutController, r.config)
}
