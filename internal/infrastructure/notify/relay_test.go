package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"servonix/internal/domain/message"
	"servonix/internal/domain/shared/events"
	"servonix/internal/infrastructure/presence"
	"servonix/internal/shared/logger"
)

func newTestRelay() (*Relay, *presence.Registry) {
	registry := presence.NewRegistry()
	// nil redis client is safe here: the relay never publishes unless the
	// target user is online.
	return NewRelay(nil, registry, nil, logger.NewLogger()), registry
}

func TestRelay_CanHandle(t *testing.T) {
	relay, _ := newTestRelay()

	assert.True(t, relay.CanHandle(message.EventTypeMessageSent))
	assert.True(t, relay.CanHandle(message.EventTypeMessageRead))
	assert.True(t, relay.CanHandle(message.EventTypeMessageReplied))
	assert.True(t, relay.CanHandle(message.EventTypeMessageResolved))
	assert.False(t, relay.CanHandle(message.EventTypeComplaintDeleted))
	assert.False(t, relay.CanHandle("user.created"))
}

func TestRelay_Handle_SkipsOfflineUser(t *testing.T) {
	relay, _ := newTestRelay()

	event := message.NewMessageSentEvent(1, 10, 20, "Staffing escalation", nil, time.Now().UTC())

	err := relay.Handle(event)
	assert.NoError(t, err, "offline recipient is not an error")
}

func TestRelay_Handle_IgnoresForeignEvents(t *testing.T) {
	relay, registry := newTestRelay()
	registry.Connect(7, "session-a")

	err := relay.Handle(events.BaseEvent{
		AggregateID: "7",
		EventType:   "complaint.deleted",
		OccurredAt:  time.Now().UTC(),
	})
	assert.NoError(t, err)
}
