package chat

import (
	"github.com/gin-gonic/gin"
)

// Router handles chat-related routes
type Router struct {
	controller *Controller
}

// NewRouter creates a new chat router
func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

// SetupRoutes registers all chat routes
func (chatRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", chatRouter.controller.HandleMessage)
}
