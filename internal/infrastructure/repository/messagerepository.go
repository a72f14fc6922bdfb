package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"servonix/internal/domain/message"
	vo "servonix/internal/domain/message/valueobjects"
	"servonix/internal/infrastructure/persistence/mappers"
	"servonix/internal/infrastructure/persistence/models"
	"servonix/internal/shared/db"
	apperrors "servonix/internal/shared/errors"
)

// MessageRepository implements message.Repository using GORM.
type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.MessageMapper
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(database *gorm.DB) message.Repository {
	return &MessageRepository{
		db:     database,
		mapper: mappers.NewMessageMapper(),
	}
}

func (r *MessageRepository) Save(ctx context.Context, msg *message.Message) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := r.mapper.ToModel(msg)
	if err := tx.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	msg.SetID(model.ID)
	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id uint) (*message.Message, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.MessageModel
	if err := tx.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("message %d not found", id))
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *MessageRepository) ListForHead(ctx context.Context, headID uint, filter message.ListFilter) ([]*message.Message, int64, error) {
	return r.list(ctx, "head_id = ?", headID, filter)
}

func (r *MessageRepository) ListForAdmin(ctx context.Context, adminID uint, filter message.ListFilter) ([]*message.Message, int64, error) {
	return r.list(ctx, "admin_id = ?", adminID, filter)
}

func (r *MessageRepository) list(ctx context.Context, ownerCond string, ownerID uint, filter message.ListFilter) ([]*message.Message, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.WithContext(ctx).Model(&models.MessageModel{}).Where(ownerCond, ownerID)
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	var modelList []models.MessageModel
	if err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*message.Message, 0, len(modelList))
	for i := range modelList {
		msg, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map message (id=%d): %w", modelList[i].ID, err)
		}
		messages = append(messages, msg)
	}

	return messages, total, nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, headID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("head_id = ? AND status = ?", headID, vo.StatusUnread.String()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}

func (r *MessageRepository) StatusCounts(ctx context.Context, headID uint) (message.StatusCounts, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		Status string
		Count  int64
	}
	err := tx.WithContext(ctx).
		Model(&models.MessageModel{}).
		Select("status, COUNT(*) AS count").
		Where("head_id = ?", headID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return message.StatusCounts{}, fmt.Errorf("failed to count messages by status: %w", err)
	}

	var counts message.StatusCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case vo.StatusUnread.String():
			counts.Unread = row.Count
		case vo.StatusRead.String():
			counts.Read = row.Count
		case vo.StatusResolved.String():
			counts.Resolved = row.Count
		}
	}

	return counts, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id uint, readAt time.Time) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("id = ? AND status = ?", id, vo.StatusUnread.String()).
		Updates(map[string]interface{}{
			"status":  vo.StatusRead.String(),
			"read_at": readAt.UnixMilli(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark message read: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *MessageRepository) SetReply(ctx context.Context, id uint, content string, repliedAt time.Time) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	millis := repliedAt.UnixMilli()
	result := tx.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("id = ? AND reply_content IS NULL AND status <> ?", id, vo.StatusResolved.String()).
		Updates(map[string]interface{}{
			"reply_content": content,
			"replied_at":    millis,
			"status":        gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END", vo.StatusUnread.String(), vo.StatusRead.String()),
			"read_at":       gorm.Expr("COALESCE(read_at, ?)", millis),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to set message reply: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *MessageRepository) MarkResolved(ctx context.Context, id uint, resolvedAt time.Time) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	millis := resolvedAt.UnixMilli()
	result := tx.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("id = ? AND status <> ?", id, vo.StatusResolved.String()).
		Updates(map[string]interface{}{
			"status":      vo.StatusResolved.String(),
			"resolved_at": millis,
			"read_at":     gorm.Expr("COALESCE(read_at, ?)", millis),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark message resolved: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *MessageRepository) UnlinkComplaint(ctx context.Context, complaintID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.WithContext(ctx).
		Model(&models.MessageModel{}).
		Where("complaint_id = ?", complaintID).
		Update("complaint_id", nil)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to unlink complaint %d: %w", complaintID, result.Error)
	}

	return result.RowsAffected, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.WithContext(ctx).Delete(&models.MessageModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("message %d not found", id))
	}

	return nil
}
