package events

import (
	"time"
)

// DomainEvent is the contract every domain event satisfies.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetOccurredAt() time.Time
}

// BaseEvent carries the fields shared by all domain events; concrete
// events embed it.
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e BaseEvent) GetAggregateID() string { return e.AggregateID }

func (e BaseEvent) GetEventType() string { return e.EventType }

func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }

// EventHandler consumes domain events. CanHandle lets the dispatcher
// filter before invoking Handle.
type EventHandler interface {
	Handle(event DomainEvent) error
	CanHandle(eventType string) bool
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishAll(events []DomainEvent) error
}

// EventSubscriber registers and removes handlers per event type.
type EventSubscriber interface {
	Subscribe(eventType string, handler EventHandler) error
	Unsubscribe(eventType string, handler EventHandler) error
}

// EventDispatcher combines publishing and subscription with lifecycle
// control.
type EventDispatcher interface {
	EventPublisher
	EventSubscriber
	Start() error
	Stop() error
}
