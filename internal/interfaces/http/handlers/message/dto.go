package message

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"servonix/internal/application/message/usecases"
	"servonix/internal/shared/errors"
)

type SendMessageRequest struct {
	HeadID      uint   `json:"head_id" binding:"required"`
	Subject     string `json:"subject" binding:"required,max=200"`
	Content     string `json:"content" binding:"required,max=5000"`
	ComplaintID *uint  `json:"complaint_id,omitempty"`
}

func (r *SendMessageRequest) ToCommand(adminID uint) usecases.SendMessageCommand {
	return usecases.SendMessageCommand{
		AdminID:     adminID,
		HeadID:      r.HeadID,
		Subject:     r.Subject,
		Content:     r.Content,
		ComplaintID: r.ComplaintID,
	}
}

type ReplyMessageRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

type ListMessagesRequest struct {
	Page     int
	PageSize int
	Status   string
}

func parseListMessagesRequest(c *gin.Context) *ListMessagesRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return &ListMessagesRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	}
}

func parseMessageID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid message ID")
	}
	return uint(id), nil
}
