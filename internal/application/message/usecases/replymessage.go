package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"servonix/internal/domain/message"
	"servonix/internal/domain/shared/events"
	"servonix/internal/shared/biztime"
	"servonix/internal/shared/config"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
)

type ReplyMessageCommand struct {
	MessageID uint
	HeadID    uint
	Content   string
}

type ReplyMessageResult struct {
	MessageID uint
	Status    string
	RepliedAt time.Time
}

// ReplyMessageUseCase attaches the single write-once reply. The storage layer
// enforces write-once with a conditional update, so two racing replies cannot
// both land.
type ReplyMessageUseCase struct {
	messageRepo message.Repository
	dispatcher  events.EventPublisher
	cfg         *config.MessagingConfig
	logger      logger.Interface
}

func NewReplyMessageUseCase(
	messageRepo message.Repository,
	dispatcher events.EventPublisher,
	cfg *config.MessagingConfig,
	logger logger.Interface,
) *ReplyMessageUseCase {
	return &ReplyMessageUseCase{
		messageRepo: messageRepo,
		dispatcher:  dispatcher,
		cfg:         cfg,
		logger:      logger,
	}
}

func (uc *ReplyMessageUseCase) Execute(ctx context.Context, cmd ReplyMessageCommand) (*ReplyMessageResult, error) {
	uc.logger.Infow("executing reply message use case", "message_id", cmd.MessageID, "head_id", cmd.HeadID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid reply message command", "error", err)
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
		uc.logger.Warnw("head attempted to reply to foreign message", "message_id", cmd.MessageID, "head_id", cmd.HeadID)
		return nil, errors.NewForbiddenError("access denied")
	}

	now := biztime.NowUTC()

	if err := msg.Reply(cmd.Content, now); err != nil {
		switch {
		case stderrors.Is(err, message.ErrAlreadyReplied):
			return nil, errors.NewConflictError("message already has a reply")
		case stderrors.Is(err, message.ErrResolved):
			return nil, errors.NewConflictError("message is already resolved")
		default:
			return nil, errors.NewValidationError(err.Error())
		}
	}

	replied, err := uc.messageRepo.SetReply(ctx, cmd.MessageID, cmd.Content, now)
	if err != nil {
		uc.logger.Errorw("failed to persist reply", "message_id", cmd.MessageID, "error", err)
		return nil, errors.NewInternalError("failed to persist reply")
	}
	if !replied {
		// Lost the race against a concurrent reply or resolve.
		return nil, errors.NewConflictError("message already has a reply")
	}

	event := message.NewMessageRepliedEvent(msg.ID(), msg.AdminID(), msg.HeadID(), msg.Subject(), now)
	if err := uc.dispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish message replied event", "message_id", msg.ID(), "error", err)
	}

	uc.logger.Infow("message replied successfully", "message_id", msg.ID(), "admin_id", msg.AdminID())

	return &ReplyMessageResult{
		MessageID: msg.ID(),
		Status:    msg.Status().String(),
		RepliedAt: now,
	}, nil
}

func (uc *ReplyMessageUseCase) validateCommand(cmd ReplyMessageCommand) error {
	if cmd.MessageID == 0 {
		return errors.NewValidationError("message ID is required")
	}

	if cmd.HeadID == 0 {
		return errors.NewValidationError("head ID is required")
	}

	if len(cmd.Content) == 0 {
		return errors.NewValidationError("reply content is required")
	}

	if len(cmd.Content) > uc.bodyMaxLength() {
		return errors.NewValidationError("reply content exceeds maximum length")
	}

	return nil
}

func (uc *ReplyMessageUseCase) bodyMaxLength() int {
	if uc.cfg != nil && uc.cfg.BodyMaxLength > 0 {
		return uc.cfg.BodyMaxLength
	}
	return message.BodyMaxLength
}
