package usecases

import (
	"context"
	"time"

	"servonix/internal/domain/message"
	"servonix/internal/domain/shared/events"
	"servonix/internal/shared/biztime"
	"servonix/internal/shared/config"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
)

type SendMessageCommand struct {
	AdminID     uint
	HeadID      uint
	Subject     string
	Content     string
	ComplaintID *uint
}

type SendMessageResult struct {
	MessageID uint
	Status    string
	CreatedAt time.Time
}

type SendMessageUseCase struct {
	messageRepo message.Repository
	dispatcher  events.EventPublisher
	cfg         *config.MessagingConfig
	logger      logger.Interface
}

func NewSendMessageUseCase(
	messageRepo message.Repository,
	dispatcher events.EventPublisher,
	cfg *config.MessagingConfig,
	logger logger.Interface,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		messageRepo: messageRepo,
		dispatcher:  dispatcher,
		cfg:         cfg,
		logger:      logger,
	}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error) {
	uc.logger.Infow("executing send message use case", "admin_id", cmd.AdminID, "head_id", cmd.HeadID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid send message command", "error", err)
		return nil, err
	}

	now := biztime.NowUTC()

	newMessage, err := message.NewMessage(
		cmd.AdminID,
		cmd.HeadID,
		cmd.Subject,
		cmd.Content,
		cmd.ComplaintID,
		now,
	)
	if err != nil {
		uc.logger.Errorw("failed to create message entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.messageRepo.Save(ctx, newMessage); err != nil {
		uc.logger.Errorw("failed to save message", "error", err)
		return nil, err
	}

	// Notification delivery is best-effort; the send already succeeded.
	event := message.NewMessageSentEvent(
		newMessage.ID(), newMessage.AdminID(), newMessage.HeadID(),
		newMessage.Subject(), newMessage.ComplaintID(), now,
	)
	if err := uc.dispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish message sent event", "message_id", newMessage.ID(), "error", err)
	}

	uc.logger.Infow("message sent successfully", "message_id", newMessage.ID(), "head_id", newMessage.HeadID())

	return &SendMessageResult{
		MessageID: newMessage.ID(),
		Status:    newMessage.Status().String(),
		CreatedAt: newMessage.CreatedAt(),
	}, nil
}

func (uc *SendMessageUseCase) validateCommand(cmd SendMessageCommand) error {
	if cmd.AdminID == 0 {
		return errors.NewValidationError("admin ID is required")
	}

	if cmd.HeadID == 0 {
		return errors.NewValidationError("head ID is required")
	}

	if len(cmd.Subject) == 0 {
		return errors.NewValidationError("subject is required")
	}

	if len(cmd.Subject) > uc.subjectMaxLength() {
		return errors.NewValidationError("subject exceeds maximum length")
	}

	if len(cmd.Content) == 0 {
		return errors.NewValidationError("message content is required")
	}

	if len(cmd.Content) > uc.bodyMaxLength() {
		return errors.NewValidationError("message content exceeds maximum length")
	}

	if cmd.ComplaintID != nil && *cmd.ComplaintID == 0 {
		return errors.NewValidationError("complaint ID cannot be zero")
	}

	return nil
}

func (uc *SendMessageUseCase) subjectMaxLength() int {
	if uc.cfg != nil && uc.cfg.SubjectMaxLength > 0 {
		return uc.cfg.SubjectMaxLength
	}
	return message.SubjectMaxLength
}

func (uc *SendMessageUseCase) bodyMaxLength() int {
	if uc.cfg != nil && uc.cfg.BodyMaxLength > 0 {
		return uc.cfg.BodyMaxLength
	}
	return message.BodyMaxLength
}
