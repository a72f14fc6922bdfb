package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"servonix/internal/domain/message"
	"servonix/internal/domain/shared/events"
	"servonix/internal/infrastructure/presence"
	"servonix/internal/shared/config"
	"servonix/internal/shared/logger"
)

const defaultChannelPrefix = "notify:user:"

// notification is the payload pushed to a user's notification channel.
type notification struct {
	Type       string    `json:"type"`
	MessageID  uint      `json:"message_id"`
	Subject    string    `json:"subject,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Relay subscribes to message lifecycle events and forwards a notification
// to the affected user's Redis channel. Delivery is best-effort: the relay
// skips offline users and a failed publish never reaches back into the
// mutation that raised the event.
type Relay struct {
	client        *redis.Client
	presence      *presence.Registry
	channelPrefix string
	logger        logger.Interface
}

// NewRelay creates a notification relay.
func NewRelay(client *redis.Client, registry *presence.Registry, cfg *config.MessagingConfig, logger logger.Interface) *Relay {
	prefix := defaultChannelPrefix
	if cfg != nil && cfg.NotifyChannelPrefix != "" {
		prefix = cfg.NotifyChannelPrefix
	}

	return &Relay{
		client:        client,
		presence:      registry,
		channelPrefix: prefix,
		logger:        logger,
	}
}

// CanHandle reports interest in the message lifecycle events.
func (r *Relay) CanHandle(eventType string) bool {
	switch eventType {
	case message.EventTypeMessageSent,
		message.EventTypeMessageRead,
		message.EventTypeMessageReplied,
		message.EventTypeMessageResolved:
		return true
	}
	return false
}

// Handle routes the event to the user on the other side of the conversation:
// a new message notifies the head, everything else notifies the sending admin.
func (r *Relay) Handle(event events.DomainEvent) error {
	var targetUserID uint
	payload := notification{
		Type:       event.GetEventType(),
		OccurredAt: event.GetOccurredAt(),
	}

	switch e := event.(type) {
	case message.MessageSentEvent:
		targetUserID = e.HeadID
		payload.MessageID = e.MessageID
		payload.Subject = e.Subject
	case message.MessageReadEvent:
		targetUserID = e.AdminID
		payload.MessageID = e.MessageID
	case message.MessageRepliedEvent:
		targetUserID = e.AdminID
		payload.MessageID = e.MessageID
		payload.Subject = e.Subject
	case message.MessageResolvedEvent:
		targetUserID = e.AdminID
		payload.MessageID = e.MessageID
		payload.Subject = e.Subject
	default:
		return nil
	}

	if !r.presence.IsOnline(targetUserID) {
		r.logger.Debugw("skipping notification for offline user",
			"user_id", targetUserID,
			"event_type", payload.Type)
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	channel := fmt.Sprintf("%s%d", r.channelPrefix, targetUserID)
	if err := r.client.Publish(context.Background(), channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to %s: %w", channel, err)
	}

	r.logger.Debugw("notification relayed",
		"channel", channel,
		"event_type", payload.Type,
		"message_id", payload.MessageID)

	return nil
}
