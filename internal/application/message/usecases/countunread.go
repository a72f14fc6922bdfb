package usecases

import (
	"context"

	"servonix/internal/domain/message"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
)

type CountUnreadQuery struct {
	HeadID uint
}

type CountUnreadResult struct {
	Count int64
}

// CountUnreadUseCase serves the badge-refresh poll. A short-TTL cache keeps
// the hot path off the database; slightly stale counts are acceptable at the
// polling cadence.
type CountUnreadUseCase struct {
	messageRepo message.Repository
	cache       UnreadCountCache
	logger      logger.Interface
}

func NewCountUnreadUseCase(
	messageRepo message.Repository,
	cache UnreadCountCache,
	logger logger.Interface,
) *CountUnreadUseCase {
	return &CountUnreadUseCase{
		messageRepo: messageRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (uc *CountUnreadUseCase) Execute(ctx context.Context, query CountUnreadQuery) (*CountUnreadResult, error) {
	if query.HeadID == 0 {
		return nil, errors.NewValidationError("head ID is required")
	}

	if uc.cache != nil {
		if count, found, err := uc.cache.GetUnreadCount(ctx, query.HeadID); err != nil {
			uc.logger.Warnw("unread count cache read failed", "head_id", query.HeadID, "error", err)
		} else if found {
			return &CountUnreadResult{Count: count}, nil
		}
	}

	count, err := uc.messageRepo.CountUnread(ctx, query.HeadID)
	if err != nil {
		uc.logger.Errorw("failed to count unread messages", "head_id", query.HeadID, "error", err)
		return nil, errors.NewInternalError("failed to count unread messages")
	}

	if uc.cache != nil {
		if err := uc.cache.SetUnreadCount(ctx, query.HeadID, count); err != nil {
			uc.logger.Warnw("unread count cache write failed", "head_id", query.HeadID, "error", err)
		}
	}

	return &CountUnreadResult{Count: count}, nil
}
