package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"servonix/internal/application/message/usecases"
	"servonix/internal/domain/shared/events"
	"servonix/internal/infrastructure/auth"
	"servonix/internal/infrastructure/cache"
	"servonix/internal/infrastructure/config"
	"servonix/internal/infrastructure/presence"
	"servonix/internal/infrastructure/repository"
	messagehandlers "servonix/internal/interfaces/http/handlers/message"
	notificationhandlers "servonix/internal/interfaces/http/handlers/notification"
	"servonix/internal/interfaces/http/middleware"
	"servonix/internal/interfaces/http/routes"
	shareddb "servonix/internal/shared/db"
	"servonix/internal/shared/logger"
	"servonix/internal/shared/services/markdown"
	"servonix/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	engine              *gin.Engine
	messageHandler      *messagehandlers.MessageHandler
	notificationHandler *notificationhandlers.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
	allowedOrigins      []string
	log                 logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(
	db *gorm.DB,
	redisClient *redis.Client,
	dispatcher events.EventPublisher,
	registry *presence.Registry,
	cfg *config.Config,
	log logger.Interface,
) *Router {
	engine := gin.New()

	messageRepo := repository.NewMessageRepository(db)
	txMgr := shareddb.NewTransactionManager(db)
	unreadCache := cache.NewRedisUnreadCountCache(redisClient, &cfg.Messaging, log)
	renderer := markdown.NewMarkdownService()

	sendMessageUC := usecases.NewSendMessageUseCase(messageRepo, dispatcher, &cfg.Messaging, log)
	openMessageUC := usecases.NewOpenMessageUseCase(messageRepo, dispatcher, renderer, log)
	replyMessageUC := usecases.NewReplyMessageUseCase(messageRepo, dispatcher, &cfg.Messaging, log)
	resolveMessageUC := usecases.NewResolveMessageUseCase(messageRepo, dispatcher, log)
	listHeadInboxUC := usecases.NewListHeadInboxUseCase(messageRepo, log)
	listAdminSentUC := usecases.NewListAdminSentUseCase(messageRepo, log)
	getMessageUC := usecases.NewGetMessageUseCase(messageRepo, renderer, log)
	countUnreadUC := usecases.NewCountUnreadUseCase(messageRepo, unreadCache, log)
	purgeMessageUC := usecases.NewPurgeMessageUseCase(messageRepo, txMgr, log)

	messageHandler := messagehandlers.NewMessageHandler(
		sendMessageUC,
		openMessageUC,
		replyMessageUC,
		resolveMessageUC,
		listHeadInboxUC,
		listAdminSentUC,
		getMessageUC,
		countUnreadUC,
		purgeMessageUC,
	)

	notificationHandler := notificationhandlers.NewNotificationHandler(redisClient, registry, &cfg.Messaging, log)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, log)

	return &Router{
		engine:              engine,
		messageHandler:      messageHandler,
		notificationHandler: notificationHandler,
		authMiddleware:      authMiddleware,
		allowedOrigins:      cfg.Server.AllowedOrigins,
		log:                 log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "ok"})
	})

	routes.SetupMessageRoutes(r.engine, &routes.MessageRouteConfig{
		MessageHandler: r.messageHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupNotificationRoutes(r.engine, &routes.NotificationRouteConfig{
		NotificationHandler: r.notificationHandler,
		AuthMiddleware:      r.authMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
