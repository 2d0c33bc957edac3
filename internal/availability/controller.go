package availability

import (
	"net/http"

	"musetix/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	calendar *Calendar
}

func NewController(calendar *Calendar) *Controller {
	return &Controller{calendar: calendar}
}

// GetDates handles GET /api/v1/dates
func (c *Controller) GetDates(ctx *gin.Context) {
	dates := c.calendar.Dates()
	formatted := make([]string, 0, len(dates))
	for _, date := range dates {
		formatted = append(formatted, date.Format(DateFormat))
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Available dates retrieved successfully", gin.H{
		"dates": formatted,
	}, nil)
}
