package usecases

import (
	"context"
	"fmt"

	"servonix/internal/domain/message"
	"servonix/internal/shared/authorization"
	"servonix/internal/shared/db"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
)

type PurgeMessageCommand struct {
	MessageID   uint
	RequestedBy uint
	Role        authorization.UserRole
}

type PurgeMessageResult struct {
	MessageID uint
}

// PurgeMessageUseCase hard-deletes a message. This is a super-admin
// maintenance operation, not part of the normal lifecycle.
type PurgeMessageUseCase struct {
	messageRepo message.Repository
	txMgr       *db.TransactionManager
	logger      logger.Interface
}

func NewPurgeMessageUseCase(
	messageRepo message.Repository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *PurgeMessageUseCase {
	return &PurgeMessageUseCase{
		messageRepo: messageRepo,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (uc *PurgeMessageUseCase) Execute(ctx context.Context, cmd PurgeMessageCommand) (*PurgeMessageResult, error) {
	if cmd.MessageID == 0 {
		return nil, errors.NewValidationError("message ID is required")
	}
	if cmd.RequestedBy == 0 {
		return nil, errors.NewValidationError("requesting user ID is required")
	}
	if !cmd.Role.IsSuperAdmin() {
		uc.logger.Warnw("non-super-admin attempted message purge", "message_id", cmd.MessageID, "user_id", cmd.RequestedBy, "role", cmd.Role)
		return nil, errors.NewForbiddenError("access denied")
	}

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		msg, err := uc.messageRepo.GetByID(txCtx, cmd.MessageID)
		if err != nil {
			uc.logger.Errorw("failed to get message", "message_id", cmd.MessageID, "error", err)
			return err
		}
		if msg == nil {
			return errors.NewNotFoundError(fmt.Sprintf("message %d not found", cmd.MessageID))
		}

		if err := uc.messageRepo.Delete(txCtx, cmd.MessageID); err != nil {
			uc.logger.Errorw("failed to delete message", "message_id", cmd.MessageID, "error", err)
			return errors.NewInternalError("failed to delete message")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("message purged", "message_id", cmd.MessageID, "requested_by", cmd.RequestedBy)

	return &PurgeMessageResult{MessageID: cmd.MessageID}, nil
}
