package usecases

import (
	"context"

	"servonix/internal/domain/message"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
)

type UnlinkComplaintCommand struct {
	ComplaintID uint
}

type UnlinkComplaintResult struct {
	MessagesUpdated int64
}

// UnlinkComplaintUseCase detaches the soft complaint reference from every
// message that carried it. Messages themselves always survive complaint
// deletion; it runs as a consumer of the complaint-deleted event.
type UnlinkComplaintUseCase struct {
	messageRepo message.Repository
	logger      logger.Interface
}

func NewUnlinkComplaintUseCase(
	messageRepo message.Repository,
	logger logger.Interface,
) *UnlinkComplaintUseCase {
	return &UnlinkComplaintUseCase{
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (uc *UnlinkComplaintUseCase) Execute(ctx context.Context, cmd UnlinkComplaintCommand) (*UnlinkComplaintResult, error) {
	if cmd.ComplaintID == 0 {
		return nil, errors.NewValidationError("complaint ID is required")
	}

	updated, err := uc.messageRepo.UnlinkComplaint(ctx, cmd.ComplaintID)
	if err != nil {
		uc.logger.Errorw("failed to unlink complaint from messages", "complaint_id", cmd.ComplaintID, "error", err)
		return nil, errors.NewInternalError("failed to unlink complaint")
	}

	if updated > 0 {
		uc.logger.Infow("complaint unlinked from messages", "complaint_id", cmd.ComplaintID, "messages_updated", updated)
	}

	return &UnlinkComplaintResult{MessagesUpdated: updated}, nil
}
