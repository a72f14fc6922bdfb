package usecases

import (
	"context"

	"servonix/internal/application/message/dto"
	"servonix/internal/domain/message"
	vo "servonix/internal/domain/message/valueobjects"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
	"servonix/internal/shared/utils"
)

type ListHeadInboxQuery struct {
	HeadID   uint
	Status   string // "", "all", or a concrete status
	Page     int
	PageSize int
}

type ListHeadInboxResult struct {
	Messages []*dto.MessageDTO
	Total    int64
	Counts   dto.StatusCountsDTO
	Page     int
	PageSize int
}

// ListHeadInboxUseCase pages a head's inbox newest-first with an optional
// status filter, and returns the per-status breakdown alongside.
type ListHeadInboxUseCase struct {
	messageRepo message.Repository
	logger      logger.Interface
}

func NewListHeadInboxUseCase(
	messageRepo message.Repository,
	logger logger.Interface,
) *ListHeadInboxUseCase {
	return &ListHeadInboxUseCase{
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (uc *ListHeadInboxUseCase) Execute(ctx context.Context, query ListHeadInboxQuery) (*ListHeadInboxResult, error) {
	if query.HeadID == 0 {
		return nil, errors.NewValidationError("head ID is required")
	}

	var statusFilter *vo.Status
	if query.Status != "" && query.Status != "all" {
		status, err := vo.NewStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status filter", query.Status)
		}
		statusFilter = &status
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	filter := message.ListFilter{
		Status:   statusFilter,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	messages, total, err := uc.messageRepo.ListForHead(ctx, query.HeadID, filter)
	if err != nil {
		uc.logger.Errorw("failed to list head inbox", "head_id", query.HeadID, "error", err)
		return nil, errors.NewInternalError("failed to list messages")
	}

	counts, err := uc.messageRepo.StatusCounts(ctx, query.HeadID)
	if err != nil {
		uc.logger.Errorw("failed to count inbox statuses", "head_id", query.HeadID, "error", err)
		return nil, errors.NewInternalError("failed to count messages")
	}

	return &ListHeadInboxResult{
		Messages: dto.FromMessages(messages),
		Total:    total,
		Counts: dto.StatusCountsDTO{
			Total:    counts.Total,
			Unread:   counts.Unread,
			Read:     counts.Read,
			Resolved: counts.Resolved,
		},
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
