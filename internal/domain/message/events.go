package message

import (
	"strconv"
	"time"

	"servonix/internal/domain/shared/events"
)

const (
	EventTypeMessageSent     = "message.sent"
	EventTypeMessageRead     = "message.read"
	EventTypeMessageReplied  = "message.replied"
	EventTypeMessageResolved = "message.resolved"

	// EventTypeComplaintDeleted is published by the complaint subsystem and
	// consumed here to detach soft references.
	EventTypeComplaintDeleted = "complaint.deleted"
)

type MessageSentEvent struct {
	events.BaseEvent
	MessageID   uint
	AdminID     uint
	HeadID      uint
	Subject     string
	ComplaintID *uint
}

func NewMessageSentEvent(messageID, adminID, headID uint, subject string, complaintID *uint, timestamp time.Time) MessageSentEvent {
	return MessageSentEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(messageID), 10),
			EventType:   EventTypeMessageSent,
			OccurredAt:  timestamp,
		},
		MessageID:   messageID,
		AdminID:     adminID,
		HeadID:      headID,
		Subject:     subject,
		ComplaintID: complaintID,
	}
}

type MessageReadEvent struct {
	events.BaseEvent
	MessageID uint
	AdminID   uint
	HeadID    uint
}

func NewMessageReadEvent(messageID, adminID, headID uint, timestamp time.Time) MessageReadEvent {
	return MessageReadEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(messageID), 10),
			EventType:   EventTypeMessageRead,
			OccurredAt:  timestamp,
		},
		MessageID: messageID,
		AdminID:   adminID,
		HeadID:    headID,
	}
}

type MessageRepliedEvent struct {
	events.BaseEvent
	MessageID uint
	AdminID   uint
	HeadID    uint
	Subject   string
}

func NewMessageRepliedEvent(messageID, adminID, headID uint, subject string, timestamp time.Time) MessageRepliedEvent {
	return MessageRepliedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(messageID), 10),
			EventType:   EventTypeMessageReplied,
			OccurredAt:  timestamp,
		},
		MessageID: messageID,
		AdminID:   adminID,
		HeadID:    headID,
		Subject:   subject,
	}
}

type MessageResolvedEvent struct {
	events.BaseEvent
	MessageID uint
	AdminID   uint
	HeadID    uint
	Subject   string
}

func NewMessageResolvedEvent(messageID, adminID, headID uint, subject string, timestamp time.Time) MessageResolvedEvent {
	return MessageResolvedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(messageID), 10),
			EventType:   EventTypeMessageResolved,
			OccurredAt:  timestamp,
		},
		MessageID: messageID,
		AdminID:   adminID,
		HeadID:    headID,
		Subject:   subject,
	}
}

// ComplaintDeletedEvent is the consumed contract from the complaint subsystem.
type ComplaintDeletedEvent struct {
	events.BaseEvent
	ComplaintID uint
}

func NewComplaintDeletedEvent(complaintID uint, timestamp time.Time) ComplaintDeletedEvent {
	return ComplaintDeletedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(complaintID), 10),
			EventType:   EventTypeComplaintDeleted,
			OccurredAt:  timestamp,
		},
		ComplaintID: complaintID,
	}
}
