// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"musetix/internal/auth"
	"musetix/internal/availability"
	"musetix/internal/bookings"
	"musetix/internal/chat"
	"musetix/internal/notifications"
	"musetix/internal/payments"
	"musetix/internal/pricing"
	"musetix/internal/shared/config"
	"musetix/internal/shared/database"
	"musetix/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	// Shared across feature routers
	priceTable     *pricing.Table
	calendar       *availability.Calendar
	gateway        payments.Gateway
	bookingService bookings.Service // For dependency injection into chat
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,

		priceTable: pricing.NewTable(cfg.Booking.TicketPrices),
		calendar:   availability.NewCalendar(cfg.Booking.WindowDays),
		gateway:    payments.NewMockGateway(),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Staff authentication
		r.setupAuthRoutes(api)

		// Public catalog routes
		r.setupPricingRoutes(api)
		r.setupAvailabilityRoutes(api)

		// Booking flow (must be before chat for dependency injection)
		r.setupBookingRoutes(api)

		// Guided chat flow
		r.setupChatRoutes(api)
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
				"service":   "musetix-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "musetix-backend",
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

// setupAuthRoutes configures staff authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupPricingRoutes configures the public price list route
func (r *Router) setupPricingRoutes(rg *gin.RouterGroup) {
	pricingController := pricing.NewController(r.priceTable)
	pricing.SetupPricingRoutes(rg, pricingController)
}

// setupAvailabilityRoutes configures the public available-dates route
func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup) {
	availabilityController := availability.NewController(r.calendar)
	availability.SetupAvailabilityRoutes(rg, availabilityController)
}

// setupBookingRoutes configures the booking and payment routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.gateway, r.calendar, r.priceTable, r.producer)
	bookingController := bookings.NewController(bookingService)

	// Store booking service for dependency injection
	r.bookingService = bookingService

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupChatRoutes configures the guided booking conversation route
func (r *Router) setupChatRoutes(rg *gin.RouterGroup) {
	cacheService := cache.NewService(r.db.GetRedisClient())
	sessionStore := chat.NewRedisSessionStore(cacheService, r.config.Redis.SessionTTL)
	chatService := chat.NewService(sessionStore, chat.NewKeywordParser(), r.bookingService, r.calendar, r.priceTable)
	chatController := chat.NewController(chatService)
	chatRouter := chat.NewRouter(chatController)

	chatRouter.SetupRoutes(rg)
}
