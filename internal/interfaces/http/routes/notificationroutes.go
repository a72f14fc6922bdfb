package routes

import (
	"github.com/gin-gonic/gin"

	notificationhandlers "servonix/internal/interfaces/http/handlers/notification"
	"servonix/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler *notificationhandlers.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		notifications.GET("/stream", config.NotificationHandler.Stream)
	}
}
