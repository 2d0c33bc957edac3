package bookings

import (
	"musetix/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public booking flow
	rg.POST("/book", controller.CreateBooking)              // POST /api/v1/book
	rg.POST("/payment/process", controller.ProcessPayment)  // POST /api/v1/payment/process

	// Staff-only operations
	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/bookings", controller.ListBookings)    // GET  /api/v1/admin/bookings
		admin.GET("/bookings/:id", controller.GetBooking)  // GET  /api/v1/admin/bookings/:id
		admin.POST("/reconcile", controller.Reconcile)     // POST /api/v1/admin/reconcile
	}
}
