package message

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servonix/internal/application/message/usecases"
	"servonix/internal/shared/authorization"
	"servonix/internal/shared/errors"
	"servonix/internal/shared/logger"
	"servonix/internal/shared/utils"
)

type MessageHandler struct {
	sendMessageUC    usecases.SendMessageExecutor
	openMessageUC    usecases.OpenMessageExecutor
	replyMessageUC   usecases.ReplyMessageExecutor
	resolveMessageUC usecases.ResolveMessageExecutor
	listHeadInboxUC  usecases.ListHeadInboxExecutor
	listAdminSentUC  usecases.ListAdminSentExecutor
	getMessageUC     usecases.GetMessageExecutor
	countUnreadUC    usecases.CountUnreadExecutor
	purgeMessageUC   usecases.PurgeMessageExecutor
	logger           logger.Interface
}

func NewMessageHandler(
	sendMessageUC usecases.SendMessageExecutor,
	openMessageUC usecases.OpenMessageExecutor,
	replyMessageUC usecases.ReplyMessageExecutor,
	resolveMessageUC usecases.ResolveMessageExecutor,
	listHeadInboxUC usecases.ListHeadInboxExecutor,
	listAdminSentUC usecases.ListAdminSentExecutor,
	getMessageUC usecases.GetMessageExecutor,
	countUnreadUC usecases.CountUnreadExecutor,
	purgeMessageUC usecases.PurgeMessageExecutor,
) *MessageHandler {
	return &MessageHandler{
		sendMessageUC:    sendMessageUC,
		openMessageUC:    openMessageUC,
		replyMessageUC:   replyMessageUC,
		resolveMessageUC: resolveMessageUC,
		listHeadInboxUC:  listHeadInboxUC,
		listAdminSentUC:  listAdminSentUC,
		getMessageUC:     getMessageUC,
		countUnreadUC:    countUnreadUC,
		purgeMessageUC:   purgeMessageUC,
		logger:           logger.NewLogger(),
	}
}

// SendMessage handles POST /messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for send message", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, _ := c.Get("user_id")
	cmd := req.ToCommand(userID.(uint))

	result, err := h.sendMessageUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message sent successfully")
}

// ListSent handles GET /messages
func (h *MessageHandler) ListSent(c *gin.Context) {
	req := parseListMessagesRequest(c)

	userID, _ := c.Get("user_id")
	query := usecases.ListAdminSentQuery{
		AdminID:  userID.(uint),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	result, err := h.listAdminSentUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Messages, result.Total, req.Page, req.PageSize)
}

// ListInbox handles GET /messages/inbox
func (h *MessageHandler) ListInbox(c *gin.Context) {
	req := parseListMessagesRequest(c)

	userID, _ := c.Get("user_id")
	query := usecases.ListHeadInboxQuery{
		HeadID:   userID.(uint),
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	result, err := h.listHeadInboxUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"items": result.Messages,
		"pagination": gin.H{
			"page":      result.Page,
			"page_size": result.PageSize,
			"total":     result.Total,
		},
		"counts": result.Counts,
	})
}

// UnreadCount handles GET /messages/unread-count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, _ := c.Get("user_id")

	result, err := h.countUnreadUC.Execute(c.Request.Context(), usecases.CountUnreadQuery{
		HeadID: userID.(uint),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"unread": result.Count})
}

// GetMessage handles GET /messages/:id
func (h *MessageHandler) GetMessage(c *gin.Context) {
	messageID, err := parseMessageID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := c.Get("user_id")
	role, _ := authorization.ParseUserRole(c.GetString("user_role"))
	query := usecases.GetMessageQuery{
		MessageID: messageID,
		UserID:    userID.(uint),
		Role:      role,
	}

	result, err := h.getMessageUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// OpenMessage handles POST /messages/:id/open
func (h *MessageHandler) OpenMessage(c *gin.Context) {
	messageID, err := parseMessageID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := c.Get("user_id")
	cmd := usecases.OpenMessageCommand{
		MessageID: messageID,
		HeadID:    userID.(uint),
	}

	result, err := h.openMessageUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ReplyMessage handles POST /messages/:id/reply
func (h *MessageHandler) ReplyMessage(c *gin.Context) {
	messageID, err := parseMessageID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReplyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, _ := c.Get("user_id")
	cmd := usecases.ReplyMessageCommand{
		MessageID: messageID,
		HeadID:    userID.(uint),
		Content:   req.Content,
	}

	result, err := h.replyMessageUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reply recorded successfully", result)
}

// ResolveMessage handles POST /messages/:id/resolve
func (h *MessageHandler) ResolveMessage(c *gin.Context) {
	messageID, err := parseMessageID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := c.Get("user_id")
	cmd := usecases.ResolveMessageCommand{
		MessageID: messageID,
		HeadID:    userID.(uint),
	}

	result, err := h.resolveMessageUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message resolved", result)
}

// PurgeMessage handles DELETE /messages/:id
func (h *MessageHandler) PurgeMessage(c *gin.Context) {
	messageID, err := parseMessageID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := c.Get("user_id")
	role, _ := authorization.ParseUserRole(c.GetString("user_role"))
	cmd := usecases.PurgeMessageCommand{
		MessageID:   messageID,
		RequestedBy: userID.(uint),
		Role:        role,
	}

	if _, err := h.purgeMessageUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
