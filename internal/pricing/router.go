package pricing

import (
	"github.com/gin-gonic/gin"
)

// SetupPricingRoutes configures the public price list route
func SetupPricingRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/prices", controller.GetPrices) // GET /api/v1/prices
}
