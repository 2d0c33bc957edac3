package chat

import (
	"net/http"

	"musetix/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Controller handles chat HTTP requests
type Controller struct {
	service Service
}

// NewController creates a new chat controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// MessageRequest is one visitor message in the conversation
type MessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// HandleMessage processes a chat message and returns the assistant reply
func (ctrl *Controller) HandleMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "message is required", nil, nil)
		return
	}

	reply, err := ctrl.service.HandleMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to process message", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Message processed", reply, nil)
}
