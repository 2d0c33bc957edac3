package pricing

import (
	"net/http"

	"musetix/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	table *Table
}

func NewController(table *Table) *Controller {
	return &Controller{table: table}
}

// GetPrices handles GET /api/v1/prices
func (c *Controller) GetPrices(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket prices retrieved successfully", gin.H{
		"prices": c.table.List(),
	}, nil)
}
