// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"parkpass/internal/catalog"
	"parkpass/internal/checkout"
	"parkpass/internal/notifications"
	"parkpass/internal/shared/config"
	"parkpass/internal/shared/database"
	"parkpass/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer
}

// NewRouter creates a new router instance. producer may be nil when Kafka is
// disabled or unreachable.
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

	api := engine.Group(r.config.GetAPIBasePath())
	{
		catalogService := r.setupCatalogRoutes(api)
		r.setupCheckoutRoutes(api, catalogService)
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
				"service":   "parkpass",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "parkpass",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupCatalogRoutes configures the price catalog routes and returns the
// catalog service for the checkout pricing engine
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) catalog.Service {
	var cacheService cache.Service
	if r.db.Redis != nil {
		cacheService = cache.NewService(r.db.Redis)
	}

	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(catalogRepo, cacheService)
	catalogController := catalog.NewController(catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
	return catalogService
}

// setupCheckoutRoutes configures the checkout session routes
func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup, catalogService catalog.Service) {
	snapshots := checkout.NewRedisSnapshotStore(r.db.Redis, r.config.Redis.SessionTTL)
	store := checkout.NewSessionStore(snapshots)

	bookingClient := checkout.NewHTTPBookingClient(r.config.Booking.BaseURL, r.config.Booking.Timeout)
	submitGuard := checkout.NewRedisSubmitGuard(r.db.Redis, r.config.Redis.SubmitLockTTL)
	coordinator := checkout.NewCoordinator(store, bookingClient, submitGuard, r.producer)

	tokens := checkout.NewTokenManager(r.config)
	checkoutService := checkout.NewService(store, catalogService, coordinator, tokens)
	checkoutController := checkout.NewController(checkoutService)

	checkout.SetupCheckoutRoutes(rg, checkoutController, r.config)
}
