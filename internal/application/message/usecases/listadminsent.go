package usecases

import (
	"context"

	"servonix/internal/application/message/dto"
	"servonix/internal/domain/message"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
	"servonix/internal/shared/utils"
)

type ListAdminSentQuery struct {
	AdminID  uint
	Page     int
	PageSize int
}

type ListAdminSentResult struct {
	Messages []*dto.MessageDTO
	Total    int64
	Page     int
	PageSize int
}

// ListAdminSentUseCase pages an admin's sent messages newest-first. Each entry
// carries the derived sender-facing status.
type ListAdminSentUseCase struct {
	messageRepo message.Repository
	logger      logger.Interface
}

func NewListAdminSentUseCase(
	messageRepo message.Repository,
	logger logger.Interface,
) *ListAdminSentUseCase {
	return &ListAdminSentUseCase{
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (uc *ListAdminSentUseCase) Execute(ctx context.Context, query ListAdminSentQuery) (*ListAdminSentResult, error) {
	if query.AdminID == 0 {
		return nil, errors.NewValidationError("admin ID is required")
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	filter := message.ListFilter{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	messages, total, err := uc.messageRepo.ListForAdmin(ctx, query.AdminID, filter)
	if err != nil {
		uc.logger.Errorw("failed to list admin sent messages", "admin_id", query.AdminID, "error", err)
		return nil, errors.NewInternalError("failed to list messages")
	}

	return &ListAdminSentResult{
		Messages: dto.FromMessages(messages),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}
