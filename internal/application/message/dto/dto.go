// Package dto carries the application-layer views of escalation messages.
package dto

import (
	"time"

	"servonix/internal/domain/message"
)

// MessageDTO is the transport-neutral view of a message. ContentHTML and
// ReplyHTML are only populated on detail reads where rendering was requested.
type MessageDTO struct {
	ID          uint       `json:"id"`
	AdminID     uint       `json:"admin_id"`
	HeadID      uint       `json:"head_id"`
	Subject     string     `json:"subject"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"content_html,omitempty"`
	ComplaintID *uint      `json:"complaint_id,omitempty"`
	Status      string     `json:"status"`
	AdminStatus string     `json:"admin_status"`
	ReplyContent *string   `json:"reply_content,omitempty"`
	ReplyHTML   string     `json:"reply_html,omitempty"`
	RepliedAt   *time.Time `json:"replied_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// StatusCountsDTO is the per-status breakdown returned with a head's inbox.
type StatusCountsDTO struct {
	Total    int64 `json:"total"`
	Unread   int64 `json:"unread"`
	Read     int64 `json:"read"`
	Resolved int64 `json:"resolved"`
}

// FromMessage maps a message aggregate to its DTO.
func FromMessage(msg *message.Message) *MessageDTO {
	return &MessageDTO{
		ID:           msg.ID(),
		AdminID:      msg.AdminID(),
		HeadID:       msg.HeadID(),
		Subject:      msg.Subject(),
		Content:      msg.Content(),
		ComplaintID:  msg.ComplaintID(),
		Status:       msg.Status().String(),
		AdminStatus:  msg.AdminStatus().String(),
		ReplyContent: msg.ReplyContent(),
		RepliedAt:    msg.RepliedAt(),
		CreatedAt:    msg.CreatedAt(),
		ReadAt:       msg.ReadAt(),
		ResolvedAt:   msg.ResolvedAt(),
	}
}

// FromMessages maps a slice of aggregates to DTOs.
func FromMessages(msgs []*message.Message) []*MessageDTO {
	dtos := make([]*MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		dtos = append(dtos, FromMessage(m))
	}
	return dtos
}
