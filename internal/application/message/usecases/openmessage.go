package usecases

import (
	"context"
	"fmt"

	"servonix/internal/application/message/dto"
	"servonix/internal/domain/message"
	"servonix/internal/domain/shared/events"
	"servonix/internal/shared/biztime"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
	"servonix/internal/shared/services/markdown"
)

type OpenMessageCommand struct {
	MessageID uint
	HeadID    uint
}

// OpenMessageUseCase returns a message to its addressed head, recording the
// first open as the unread-to-read transition. Later opens are plain reads.
type OpenMessageUseCase struct {
	messageRepo message.Repository
	dispatcher  events.EventPublisher
	renderer    markdown.MarkdownService
	logger      logger.Interface
}

func NewOpenMessageUseCase(
	messageRepo message.Repository,
	dispatcher events.EventPublisher,
	renderer markdown.MarkdownService,
	logger logger.Interface,
) *OpenMessageUseCase {
	return &OpenMessageUseCase{
		messageRepo: messageRepo,
		dispatcher:  dispatcher,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *OpenMessageUseCase) Execute(ctx context.Context, cmd OpenMessageCommand) (*dto.MessageDTO, error) {
	uc.logger.Infow("executing open message use case", "message_id", cmd.MessageID, "head_id", cmd.HeadID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid open message command", "error", err)
		return nil, err
	}

	msg, err := uc.messageRepo.GetByID(ctx, cmd.MessageID)
	if err != nil {
		uc.logger.Errorw("failed to get message", "message_id", cmd.MessageID, "error", err)
		return nil, err
	}
	if msg == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("message %d not found", cmd.MessageID))
	}

	if msg.HeadID() != cmd.HeadID {
		uc.logger.Warnw("head attempted to open foreign message", "message_id", cmd.MessageID, "head_id", cmd.HeadID)
		return nil, errors.NewForbiddenError("access denied")
	}

	now := biztime.NowUTC()

	// Conditional update: only the first open flips the row.
	opened, err := uc.messageRepo.MarkRead(ctx, cmd.MessageID, now)
	if err != nil {
		uc.logger.Errorw("failed to mark message read", "message_id", cmd.MessageID, "error", err)
		return nil, errors.NewInternalError("failed to mark message read")
	}

	if opened {
		msg.MarkRead(now)
		event := message.NewMessageReadEvent(msg.ID(), msg.AdminID(), msg.HeadID(), now)
		if err := uc.dispatcher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish message read event", "message_id", msg.ID(), "error", err)
		}
	}

	result := dto.FromMessage(msg)
	uc.renderContent(result)

	return result, nil
}

func (uc *OpenMessageUseCase) renderContent(d *dto.MessageDTO) {
	if uc.renderer == nil {
		return
	}
	if html, err := uc.renderer.ToHTMLSanitized(d.Content); err == nil {
		d.ContentHTML = html
	} else {
		uc.logger.Warnw("failed to render message content", "message_id", d.ID, "error", err)
	}
	if d.ReplyContent != nil {
		if html, err := uc.renderer.ToHTMLSanitized(*d.ReplyContent); err == nil {
			d.ReplyHTML = html
		}
	}
}

func (uc *OpenMessageUseCase) validateCommand(cmd OpenMessageCommand) error {
	if cmd.MessageID == 0 {
		return errors.NewValidationError("message ID is required")
	}

	if cmd.HeadID == 0 {
		return errors.NewValidationError("head ID is required")
	}

	return nil
}
