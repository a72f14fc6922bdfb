package usecases

import (
	"context"
	"time"

	"servonix/internal/domain/message"
	"servonix/internal/domain/shared/events"
	"servonix/internal/shared/logger"
)

type mockMessageRepository struct {
	SaveFunc            func(ctx context.Context, msg *message.Message) error
	GetByIDFunc         func(ctx context.Context, id uint) (*message.Message, error)
	ListForHeadFunc     func(ctx context.Context, headID uint, filter message.ListFilter) ([]*message.Message, int64, error)
	ListForAdminFunc    func(ctx context.Context, adminID uint, filter message.ListFilter) ([]*message.Message, int64, error)
	CountUnreadFunc     func(ctx context.Context, headID uint) (int64, error)
	StatusCountsFunc    func(ctx context.Context, headID uint) (message.StatusCounts, error)
	MarkReadFunc        func(ctx context.Context, id uint, readAt time.Time) (bool, error)
	SetReplyFunc        func(ctx context.Context, id uint, content string, repliedAt time.Time) (bool, error)
	MarkResolvedFunc    func(ctx context.Context, id uint, resolvedAt time.Time) (bool, error)
	UnlinkComplaintFunc func(ctx context.Context, complaintID uint) (int64, error)
	DeleteFunc          func(ctx context.Context, id uint) error
}

func (m *mockMessageRepository) Save(ctx context.Context, msg *message.Message) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) GetByID(ctx context.Context, id uint) (*message.Message, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockMessageRepository) ListForHead(ctx context.Context, headID uint, filter message.ListFilter) ([]*message.Message, int64, error) {
	if m.ListForHeadFunc != nil {
		return m.ListForHeadFunc(ctx, headID, filter)
	}
	return nil, 0, nil
}

func (m *mockMessageRepository) ListForAdmin(ctx context.Context, adminID uint, filter message.ListFilter) ([]*message.Message, int64, error) {
	if m.ListForAdminFunc != nil {
		return m.ListForAdminFunc(ctx, adminID, filter)
	}
	return nil, 0, nil
}

func (m *mockMessageRepository) CountUnread(ctx context.Context, headID uint) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, headID)
	}
	return 0, nil
}

func (m *mockMessageRepository) StatusCounts(ctx context.Context, headID uint) (message.StatusCounts, error) {
	if m.StatusCountsFunc != nil {
		return m.StatusCountsFunc(ctx, headID)
	}
	return message.StatusCounts{}, nil
}

func (m *mockMessageRepository) MarkRead(ctx context.Context, id uint, readAt time.Time) (bool, error) {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id, readAt)
	}
	return false, nil
}

func (m *mockMessageRepository) SetReply(ctx context.Context, id uint, content string, repliedAt time.Time) (bool, error) {
	if m.SetReplyFunc != nil {
		return m.SetReplyFunc(ctx, id, content, repliedAt)
	}
	return false, nil
}

func (m *mockMessageRepository) MarkResolved(ctx context.Context, id uint, resolvedAt time.Time) (bool, error) {
	if m.MarkResolvedFunc != nil {
		return m.MarkResolvedFunc(ctx, id, resolvedAt)
	}
	return false, nil
}

func (m *mockMessageRepository) UnlinkComplaint(ctx context.Context, complaintID uint) (int64, error) {
	if m.UnlinkComplaintFunc != nil {
		return m.UnlinkComplaintFunc(ctx, complaintID)
	}
	return 0, nil
}

func (m *mockMessageRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockEventDispatcher struct {
	PublishFunc    func(event events.DomainEvent) error
	PublishAllFunc func(evts []events.DomainEvent) error
}

func (m *mockEventDispatcher) Publish(event events.DomainEvent) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *mockEventDispatcher) PublishAll(evts []events.DomainEvent) error {
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(evts)
	}
	return nil
}

type mockUnreadCountCache struct {
	GetUnreadCountFunc        func(ctx context.Context, headID uint) (int64, bool, error)
	SetUnreadCountFunc        func(ctx context.Context, headID uint, count int64) error
	InvalidateUnreadCountFunc func(ctx context.Context, headID uint) error
}

func (m *mockUnreadCountCache) GetUnreadCount(ctx context.Context, headID uint) (int64, bool, error) {
	if m.GetUnreadCountFunc != nil {
		return m.GetUnreadCountFunc(ctx, headID)
	}
	return 0, false, nil
}

func (m *mockUnreadCountCache) SetUnreadCount(ctx context.Context, headID uint, count int64) error {
	if m.SetUnreadCountFunc != nil {
		return m.SetUnreadCountFunc(ctx, headID, count)
	}
	return nil
}

func (m *mockUnreadCountCache) InvalidateUnreadCount(ctx context.Context, headID uint) error {
	if m.InvalidateUnreadCountFunc != nil {
		return m.InvalidateUnreadCountFunc(ctx, headID)
	}
	return nil
}

type mockMarkdownService struct {
	ToHTMLFunc          func(markdown string) (string, error)
	SanitizeFunc        func(htmlContent string) string
	ToHTMLSanitizedFunc func(markdown string) (string, error)
}

func (m *mockMarkdownService) ToHTML(markdown string) (string, error) {
	if m.ToHTMLFunc != nil {
		return m.ToHTMLFunc(markdown)
	}
	return markdown, nil
}

func (m *mockMarkdownService) Sanitize(htmlContent string) string {
	if m.SanitizeFunc != nil {
		return m.SanitizeFunc(htmlContent)
	}
	return htmlContent
}

func (m *mockMarkdownService) ToHTMLSanitized(markdown string) (string, error) {
	if m.ToHTMLSanitizedFunc != nil {
		return m.ToHTMLSanitizedFunc(markdown)
	}
	return "<p>" + markdown + "</p>", nil
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	InfowFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	DebugwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface {
	return m
}

func (m *mockLogger) Named(name string) logger.Interface {
	return m
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}
