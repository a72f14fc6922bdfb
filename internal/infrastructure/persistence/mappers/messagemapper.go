package mappers

import (
	"fmt"
	"time"

	"servonix/internal/domain/message"
	vo "servonix/internal/domain/message/valueobjects"
	"servonix/internal/infrastructure/persistence/models"
)

// MessageMapper handles the conversion between Message domain entities and persistence models.
type MessageMapper interface {
	// ToModel converts a message domain entity to a persistence model.
	ToModel(msg *message.Message) *models.MessageModel

	// ToDomain converts a message persistence model to a domain entity.
	ToDomain(model *models.MessageModel) (*message.Message, error)
}

// MessageMapperImpl is the concrete implementation of MessageMapper.
type MessageMapperImpl struct{}

// NewMessageMapper creates a new MessageMapper.
func NewMessageMapper() MessageMapper {
	return &MessageMapperImpl{}
}

// ToModel converts a message domain entity to a persistence model.
func (m *MessageMapperImpl) ToModel(msg *message.Message) *models.MessageModel {
	model := &models.MessageModel{
		ID:             msg.ID(),
		AdminID:        msg.AdminID(),
		HeadID:         msg.HeadID(),
		Subject:        msg.Subject(),
		MessageContent: msg.Content(),
		ComplaintID:    msg.ComplaintID(),
		Status:         msg.Status().String(),
		ReplyContent:   msg.ReplyContent(),
		CreatedAt:      msg.CreatedAt().UnixMilli(),
	}

	if msg.RepliedAt() != nil {
		replied := msg.RepliedAt().UnixMilli()
		model.RepliedAt = &replied
	}

	if msg.ReadAt() != nil {
		read := msg.ReadAt().UnixMilli()
		model.ReadAt = &read
	}

	if msg.ResolvedAt() != nil {
		resolved := msg.ResolvedAt().UnixMilli()
		model.ResolvedAt = &resolved
	}

	return model
}

// ToDomain converts a message persistence model to a domain entity.
func (m *MessageMapperImpl) ToDomain(model *models.MessageModel) (*message.Message, error) {
	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid message status (id=%d): %w", model.ID, err)
	}

	createdAt := messageConvertMillisToTime(model.CreatedAt)

	var repliedAt, readAt, resolvedAt *time.Time
	if model.RepliedAt != nil {
		t := messageConvertMillisToTime(*model.RepliedAt)
		repliedAt = &t
	}
	if model.ReadAt != nil {
		t := messageConvertMillisToTime(*model.ReadAt)
		readAt = &t
	}
	if model.ResolvedAt != nil {
		t := messageConvertMillisToTime(*model.ResolvedAt)
		resolvedAt = &t
	}

	return message.ReconstructMessage(
		model.ID,
		model.AdminID,
		model.HeadID,
		model.Subject,
		model.MessageContent,
		model.ComplaintID,
		status,
		model.ReplyContent,
		repliedAt,
		createdAt,
		readAt,
		resolvedAt,
	)
}

// messageConvertMillisToTime converts Unix millisecond timestamps to time.Time in UTC.
func messageConvertMillisToTime(millis int64) time.Time {
	return time.UnixMilli(millis).UTC()
}
