package notification

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"servonix/internal/infrastructure/presence"
	"servonix/internal/shared/config"
	"servonix/internal/shared/logger"
	"servonix/internal/shared/utils"
)

const defaultChannelPrefix = "notify:user:"

// NotificationHandler streams per-user notifications over SSE. Each open
// stream registers a presence session so the relay knows the user is
// reachable, and tears it down when the client goes away.
type NotificationHandler struct {
	client        *redis.Client
	presence      *presence.Registry
	channelPrefix string
	logger        logger.Interface
}

func NewNotificationHandler(client *redis.Client, registry *presence.Registry, cfg *config.MessagingConfig, logger logger.Interface) *NotificationHandler {
	prefix := defaultChannelPrefix
	if cfg != nil && cfg.NotifyChannelPrefix != "" {
		prefix = cfg.NotifyChannelPrefix
	}

	return &NotificationHandler{
		client:        client,
		presence:      registry,
		channelPrefix: prefix,
		logger:        logger,
	}
}

// Stream handles GET /notifications/stream
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication")
		return
	}
	uid := userID.(uint)

	sessionID := uuid.NewString()
	h.presence.Connect(uid, sessionID)
	defer h.presence.Disconnect(uid, sessionID)

	channel := fmt.Sprintf("%s%d", h.channelPrefix, uid)
	sub := h.client.Subscribe(c.Request.Context(), channel)
	defer sub.Close()

	h.logger.Debugw("notification stream opened",
		"user_id", uid,
		"session_id", sessionID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ch := sub.Channel()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", msg.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	h.logger.Debugw("notification stream closed",
		"user_id", uid,
		"session_id", sessionID)
}
