package usecases

import (
	"context"

	"servonix/internal/application/message/dto"
)

type SendMessageExecutor interface {
	Execute(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error)
}

type OpenMessageExecutor interface {
	Execute(ctx context.Context, cmd OpenMessageCommand) (*dto.MessageDTO, error)
}

type ReplyMessageExecutor interface {
	Execute(ctx context.Context, cmd ReplyMessageCommand) (*ReplyMessageResult, error)
}

type ResolveMessageExecutor interface {
	Execute(ctx context.Context, cmd ResolveMessageCommand) (*ResolveMessageResult, error)
}

type ListHeadInboxExecutor interface {
	Execute(ctx context.Context, query ListHeadInboxQuery) (*ListHeadInboxResult, error)
}

type ListAdminSentExecutor interface {
	Execute(ctx context.Context, query ListAdminSentQuery) (*ListAdminSentResult, error)
}

type GetMessageExecutor interface {
	Execute(ctx context.Context, query GetMessageQuery) (*dto.MessageDTO, error)
}

type CountUnreadExecutor interface {
	Execute(ctx context.Context, query CountUnreadQuery) (*CountUnreadResult, error)
}

type UnlinkComplaintExecutor interface {
	Execute(ctx context.Context, cmd UnlinkComplaintCommand) (*UnlinkComplaintResult, error)
}

type PurgeMessageExecutor interface {
	Execute(ctx context.Context, cmd PurgeMessageCommand) (*PurgeMessageResult, error)
}

// UnreadCountCache is the short-TTL cache in front of the unread-count poll
// path. A miss returns found=false with no error.
type UnreadCountCache interface {
	GetUnreadCount(ctx context.Context, headID uint) (count int64, found bool, err error)
	SetUnreadCount(ctx context.Context, headID uint, count int64) error
	InvalidateUnreadCount(ctx context.Context, headID uint) error
}
