package usecases

import (
	"context"
	"fmt"
	"time"

	"servonix/internal/domain/message"
	"servonix/internal/domain/shared/events"
	"servonix/internal/shared/biztime"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
)

type ResolveMessageCommand struct {
	MessageID uint
	HeadID    uint
}

type ResolveMessageResult struct {
	MessageID       uint
	Status          string
	ResolvedAt      *time.Time
	AlreadyResolved bool
}

// ResolveMessageUseCase moves a message into its terminal state. Resolving an
// already-resolved message succeeds without changing anything.
type ResolveMessageUseCase struct {
	messageRepo message.Repository
	dispatcher  events.EventPublisher
	logger      logger.Interface
}

func NewResolveMessageUseCase(
	messageRepo message.Repository,
	dispatcher events.EventPublisher,
	logger logger.Interface,
) *ResolveMessageUseCase {
	return &ResolveMessageUseCase{
		messageRepo: messageRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

func (uc *ResolveMessageUseCase) Execute(ctx context.Context, cmd ResolveMessageCommand) (*ResolveMessageResult, error) {
	uc.logger.Infow("executing resolve message use case", "message_id", cmd.MessageID, "head_id", cmd.HeadID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid resolve message command", "error", err)
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
		uc.logger.Warnw("head attempted to resolve foreign message", "message_id", cmd.MessageID, "head_id", cmd.HeadID)
		return nil, errors.NewForbiddenError("access denied")
	}

	if msg.Status().IsResolved() {
		return &ResolveMessageResult{
			MessageID:       msg.ID(),
			Status:          msg.Status().String(),
			ResolvedAt:      msg.ResolvedAt(),
			AlreadyResolved: true,
		}, nil
	}

	now := biztime.NowUTC()

	resolved, err := uc.messageRepo.MarkResolved(ctx, cmd.MessageID, now)
	if err != nil {
		uc.logger.Errorw("failed to mark message resolved", "message_id", cmd.MessageID, "error", err)
		return nil, errors.NewInternalError("failed to mark message resolved")
	}
	if !resolved {
		// A concurrent resolve won; report idempotent success with its outcome.
		current, err := uc.messageRepo.GetByID(ctx, cmd.MessageID)
		if err != nil || current == nil {
			return nil, errors.NewInternalError("failed to reload resolved message")
		}
		return &ResolveMessageResult{
			MessageID:       current.ID(),
			Status:          current.Status().String(),
			ResolvedAt:      current.ResolvedAt(),
			AlreadyResolved: true,
		}, nil
	}

	msg.Resolve(now)

	event := message.NewMessageResolvedEvent(msg.ID(), msg.AdminID(), msg.HeadID(), msg.Subject(), now)
	if err := uc.dispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish message resolved event", "message_id", msg.ID(), "error", err)
	}

	uc.logger.Infow("message resolved successfully", "message_id", msg.ID(), "admin_id", msg.AdminID())

	return &ResolveMessageResult{
		MessageID:  msg.ID(),
		Status:     msg.Status().String(),
		ResolvedAt: msg.ResolvedAt(),
	}, nil
}

func (uc *ResolveMessageUseCase) validateCommand(cmd ResolveMessageCommand) error {
	if cmd.MessageID == 0 {
		return errors.NewValidationError("message ID is required")
	}

	if cmd.HeadID == 0 {
		return errors.NewValidationError("head ID is required")
	}

	return nil
}
