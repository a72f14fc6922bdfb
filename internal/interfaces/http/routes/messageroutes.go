package routes

import (
	"github.com/gin-gonic/gin"

	messagehandlers "servonix/internal/interfaces/http/handlers/message"
	"servonix/internal/interfaces/http/middleware"
	"servonix/internal/shared/authorization"
)

type MessageRouteConfig struct {
	MessageHandler *messagehandlers.MessageHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupMessageRoutes(engine *gin.Engine, config *MessageRouteConfig) {
	messages := engine.Group("/messages")
	messages.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		messages.POST("",
			authorization.RequireRole(authorization.RoleAdmin, authorization.RoleSuperAdmin),
			config.MessageHandler.SendMessage)
		messages.GET("",
			authorization.RequireRole(authorization.RoleAdmin, authorization.RoleSuperAdmin),
			config.MessageHandler.ListSent)
		messages.GET("/inbox",
			authorization.RequireRole(authorization.RoleHead),
			config.MessageHandler.ListInbox)
		messages.GET("/unread-count",
			authorization.RequireRole(authorization.RoleHead),
			config.MessageHandler.UnreadCount)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		messages.POST("/:id/open",
			authorization.RequireRole(authorization.RoleHead),
			config.MessageHandler.OpenMessage)
		messages.POST("/:id/reply",
			authorization.RequireRole(authorization.RoleHead),
			config.MessageHandler.ReplyMessage)
		messages.POST("/:id/resolve",
			authorization.RequireRole(authorization.RoleHead),
			config.MessageHandler.ResolveMessage)

		// Generic parameterized routes (must come LAST)
		messages.GET("/:id",
			config.MessageHandler.GetMessage)
		messages.DELETE("/:id",
			authorization.RequireRole(authorization.RoleSuperAdmin),
			config.MessageHandler.PurgeMessage)
	}
}
