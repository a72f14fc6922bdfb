// Package message holds the escalation message aggregate. A message is a
// single admin-to-head communication carrying at most one write-once reply.
package message

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "servonix/internal/domain/message/valueobjects"
)

const (
	SubjectMaxLength = 200
	BodyMaxLength    = 5000
)

var (
	// ErrAlreadyReplied is returned when a reply already exists on the message.
	ErrAlreadyReplied = errors.New("message already has a reply")
	// ErrResolved is returned when a mutation is attempted on a resolved message.
	ErrResolved = errors.New("message is resolved")
)

type Message struct {
	id           uint
	adminID      uint
	headID       uint
	subject      string
	content      string
	complaintID  *uint
	status       vo.Status
	replyContent *string
	repliedAt    *time.Time
	createdAt    time.Time
	readAt       *time.Time
	resolvedAt   *time.Time
}

func NewMessage(
	adminID uint,
	headID uint,
	subject string,
	content string,
	complaintID *uint,
	now time.Time,
) (*Message, error) {
	if adminID == 0 {
		return nil, fmt.Errorf("admin ID is required")
	}
	if headID == 0 {
		return nil, fmt.Errorf("head ID is required")
	}
	subject = strings.TrimSpace(subject)
	if len(subject) == 0 {
		return nil, fmt.Errorf("subject is required")
	}
	if len(subject) > SubjectMaxLength {
		return nil, fmt.Errorf("subject exceeds maximum length of %d characters", SubjectMaxLength)
	}
	if len(strings.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("message content is required")
	}
	if len(content) > BodyMaxLength {
		return nil, fmt.Errorf("message content exceeds maximum length of %d characters", BodyMaxLength)
	}
	if complaintID != nil && *complaintID == 0 {
		return nil, fmt.Errorf("complaint ID cannot be zero")
	}

	return &Message{
		adminID:     adminID,
		headID:      headID,
		subject:     subject,
		content:     content,
		complaintID: complaintID,
		status:      vo.StatusUnread,
		createdAt:   now,
	}, nil
}

func ReconstructMessage(
	id uint,
	adminID uint,
	headID uint,
	subject string,
	content string,
	complaintID *uint,
	status vo.Status,
	replyContent *string,
	repliedAt *time.Time,
	createdAt time.Time,
	readAt *time.Time,
	resolvedAt *time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if adminID == 0 {
		return nil, fmt.Errorf("admin ID is required")
	}
	if headID == 0 {
		return nil, fmt.Errorf("head ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if (replyContent == nil) != (repliedAt == nil) {
		return nil, fmt.Errorf("reply content and replied time must be set together")
	}
	if status.IsResolved() && resolvedAt == nil {
		return nil, fmt.Errorf("resolved message must carry a resolved time")
	}

	return &Message{
		id:           id,
		adminID:      adminID,
		headID:       headID,
		subject:      subject,
		content:      content,
		complaintID:  complaintID,
		status:       status,
		replyContent: replyContent,
		repliedAt:    repliedAt,
		createdAt:    createdAt,
		readAt:       readAt,
		resolvedAt:   resolvedAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) AdminID() uint {
	return m.adminID
}

func (m *Message) HeadID() uint {
	return m.headID
}

func (m *Message) Subject() string {
	return m.subject
}

func (m *Message) Content() string {
	return m.content
}

func (m *Message) ComplaintID() *uint {
	return m.complaintID
}

func (m *Message) Status() vo.Status {
	return m.status
}

func (m *Message) ReplyContent() *string {
	return m.replyContent
}

func (m *Message) RepliedAt() *time.Time {
	return m.repliedAt
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) ReadAt() *time.Time {
	return m.readAt
}

func (m *Message) ResolvedAt() *time.Time {
	return m.resolvedAt
}

func (m *Message) HasReply() bool {
	return m.replyContent != nil
}

// AdminStatus derives the sender-facing status; it is never stored.
func (m *Message) AdminStatus() vo.AdminStatus {
	return vo.DeriveAdminStatus(m.status, m.HasReply())
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}

// MarkRead records the first open by the addressed head. Returns true when the
// unread-to-read transition actually happened; later calls are no-ops.
func (m *Message) MarkRead(now time.Time) bool {
	if !m.status.IsUnread() {
		return false
	}
	m.status = vo.StatusRead
	m.readAt = &now
	return true
}

// Reply attaches the single write-once reply. An unread message is implicitly
// opened first so read_at never trails replied_at.
func (m *Message) Reply(content string, now time.Time) error {
	if m.status.IsResolved() {
		return ErrResolved
	}
	if m.replyContent != nil {
		return ErrAlreadyReplied
	}
	if len(strings.TrimSpace(content)) == 0 {
		return fmt.Errorf("reply content is required")
	}
	if len(content) > BodyMaxLength {
		return fmt.Errorf("reply content exceeds maximum length of %d characters", BodyMaxLength)
	}

	m.MarkRead(now)
	m.replyContent = &content
	m.repliedAt = &now
	return nil
}

// Resolve moves the message to its terminal state. Returns true when the
// transition happened; resolving an already-resolved message is a no-op.
func (m *Message) Resolve(now time.Time) bool {
	if m.status.IsResolved() {
		return false
	}
	m.status = vo.StatusResolved
	m.resolvedAt = &now
	if m.readAt == nil {
		m.readAt = &now
	}
	return true
}

// UnlinkComplaint detaches the soft complaint reference after the complaint is
// deleted. The message itself always survives.
func (m *Message) UnlinkComplaint() bool {
	if m.complaintID == nil {
		return false
	}
	m.complaintID = nil
	return true
}

// CanBeViewedBy reports whether the given principal may read this message:
// the sending admin or the addressed head.
func (m *Message) CanBeViewedBy(userID uint, role string) bool {
	switch role {
	case "admin":
		return m.adminID == userID
	case "head":
		return m.headID == userID
	default:
		return false
	}
}
