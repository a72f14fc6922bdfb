package message

import (
	"context"
	"time"

	vo "servonix/internal/domain/message/valueobjects"
)

// Repository is the persistence contract for escalation messages. The Mark*,
// SetReply and UnlinkComplaint methods are conditional single-row updates so
// concurrent transitions cannot produce double writes; each reports whether
// the row actually changed.
type Repository interface {
	Save(ctx context.Context, msg *Message) error
	GetByID(ctx context.Context, id uint) (*Message, error)
	ListForHead(ctx context.Context, headID uint, filter ListFilter) ([]*Message, int64, error)
	ListForAdmin(ctx context.Context, adminID uint, filter ListFilter) ([]*Message, int64, error)
	CountUnread(ctx context.Context, headID uint) (int64, error)
	StatusCounts(ctx context.Context, headID uint) (StatusCounts, error)

	// MarkRead transitions unread to read, setting read_at once.
	MarkRead(ctx context.Context, id uint, readAt time.Time) (bool, error)
	// SetReply attaches the write-once reply, implicitly opening an unread
	// message. It fails (false) when a reply exists or the message is resolved.
	SetReply(ctx context.Context, id uint, content string, repliedAt time.Time) (bool, error)
	// MarkResolved transitions any non-resolved message to resolved.
	MarkResolved(ctx context.Context, id uint, resolvedAt time.Time) (bool, error)

	// UnlinkComplaint nulls the complaint reference on every affected message
	// and returns the number of rows touched.
	UnlinkComplaint(ctx context.Context, complaintID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// ListFilter narrows and pages the inbox and sent listings.
type ListFilter struct {
	Status   *vo.Status
	Page     int
	PageSize int
}

// StatusCounts is the per-status breakdown shown next to a head's inbox.
type StatusCounts struct {
	Total    int64
	Unread   int64
	Read     int64
	Resolved int64
}
