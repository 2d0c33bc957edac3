package availability

import (
	"github.com/gin-gonic/gin"
)

// SetupAvailabilityRoutes configures the public available-dates route
func SetupAvailabilityRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/dates", controller.GetDates) // GET /api/v1/dates
}
