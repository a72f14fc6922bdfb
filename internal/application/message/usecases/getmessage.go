package usecases

import (
	"context"
	"fmt"

	"servonix/internal/application/message/dto"
	"servonix/internal/domain/message"
	"servonix/internal/shared/authorization"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
	"servonix/internal/shared/services/markdown"
)

type GetMessageQuery struct {
	MessageID uint
	UserID    uint
	Role      authorization.UserRole
}

// GetMessageUseCase is the read-only detail fetch for the sending admin or the
// addressed head. It never touches the read state.
type GetMessageUseCase struct {
	messageRepo message.Repository
	renderer    markdown.MarkdownService
	logger      logger.Interface
}

func NewGetMessageUseCase(
	messageRepo message.Repository,
	renderer markdown.MarkdownService,
	logger logger.Interface,
) *GetMessageUseCase {
	return &GetMessageUseCase{
		messageRepo: messageRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *GetMessageUseCase) Execute(ctx context.Context, query GetMessageQuery) (*dto.MessageDTO, error) {
	if query.MessageID == 0 {
		return nil, errors.NewValidationError("message ID is required")
	}
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	msg, err := uc.messageRepo.GetByID(ctx, query.MessageID)
	if err != nil {
		uc.logger.Errorw("failed to get message", "message_id", query.MessageID, "error", err)
		return nil, err
	}
	if msg == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("message %d not found", query.MessageID))
	}

	if !msg.CanBeViewedBy(query.UserID, query.Role.String()) {
		uc.logger.Warnw("denied message detail access", "message_id", query.MessageID, "user_id", query.UserID, "role", query.Role)
		return nil, errors.NewForbiddenError("access denied")
	}

	result := dto.FromMessage(msg)

	if uc.renderer != nil {
		if html, err := uc.renderer.ToHTMLSanitized(result.Content); err == nil {
			result.ContentHTML = html
		}
		if result.ReplyContent != nil {
			if html, err := uc.renderer.ToHTMLSanitized(*result.ReplyContent); err == nil {
				result.ReplyHTML = html
			}
		}
	}

	return result, nil
}
