package message

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messagedto "servonix/internal/application/message/dto"
	"servonix/internal/application/message/usecases"
	"servonix/internal/interfaces/http/handlers/testutil"
	"servonix/internal/shared/authorization"
	"servonix/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockSendMessageUC struct {
	result *usecases.SendMessageResult
	err    error
	gotCmd usecases.SendMessageCommand
}

func (m *mockSendMessageUC) Execute(_ context.Context, cmd usecases.SendMessageCommand) (*usecases.SendMessageResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockOpenMessageUC struct {
	result *messagedto.MessageDTO
	err    error
	gotCmd usecases.OpenMessageCommand
}

func (m *mockOpenMessageUC) Execute(_ context.Context, cmd usecases.OpenMessageCommand) (*messagedto.MessageDTO, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockReplyMessageUC struct {
	result *usecases.ReplyMessageResult
	err    error
	gotCmd usecases.ReplyMessageCommand
}

func (m *mockReplyMessageUC) Execute(_ context.Context, cmd usecases.ReplyMessageCommand) (*usecases.ReplyMessageResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockResolveMessageUC struct {
	result *usecases.ResolveMessageResult
	err    error
}

func (m *mockResolveMessageUC) Execute(_ context.Context, _ usecases.ResolveMessageCommand) (*usecases.ResolveMessageResult, error) {
	return m.result, m.err
}

type mockListHeadInboxUC struct {
	result   *usecases.ListHeadInboxResult
	err      error
	gotQuery usecases.ListHeadInboxQuery
}

func (m *mockListHeadInboxUC) Execute(_ context.Context, query usecases.ListHeadInboxQuery) (*usecases.ListHeadInboxResult, error) {
	m.gotQuery = query
	return m.result, m.err
}

type mockListAdminSentUC struct {
	result   *usecases.ListAdminSentResult
	err      error
	gotQuery usecases.ListAdminSentQuery
}

func (m *mockListAdminSentUC) Execute(_ context.Context, query usecases.ListAdminSentQuery) (*usecases.ListAdminSentResult, error) {
	m.gotQuery = query
	return m.result, m.err
}

type mockGetMessageUC struct {
	result   *messagedto.MessageDTO
	err      error
	gotQuery usecases.GetMessageQuery
}

func (m *mockGetMessageUC) Execute(_ context.Context, query usecases.GetMessageQuery) (*messagedto.MessageDTO, error) {
	m.gotQuery = query
	return m.result, m.err
}

type mockCountUnreadUC struct {
	result *usecases.CountUnreadResult
	err    error
}

func (m *mockCountUnreadUC) Execute(_ context.Context, _ usecases.CountUnreadQuery) (*usecases.CountUnreadResult, error) {
	return m.result, m.err
}

type mockPurgeMessageUC struct {
	result *usecases.PurgeMessageResult
	err    error
	gotCmd usecases.PurgeMessageCommand
}

func (m *mockPurgeMessageUC) Execute(_ context.Context, cmd usecases.PurgeMessageCommand) (*usecases.PurgeMessageResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	sendMessageUC    usecases.SendMessageExecutor
	openMessageUC    usecases.OpenMessageExecutor
	replyMessageUC   usecases.ReplyMessageExecutor
	resolveMessageUC usecases.ResolveMessageExecutor
	listHeadInboxUC  usecases.ListHeadInboxExecutor
	listAdminSentUC  usecases.ListAdminSentExecutor
	getMessageUC     usecases.GetMessageExecutor
	countUnreadUC    usecases.CountUnreadExecutor
	purgeMessageUC   usecases.PurgeMessageExecutor
}

func newTestMessageHandler(deps testDeps) *MessageHandler {
	return NewMessageHandler(
		deps.sendMessageUC,
		deps.openMessageUC,
		deps.replyMessageUC,
		deps.resolveMessageUC,
		deps.listHeadInboxUC,
		deps.listAdminSentUC,
		deps.getMessageUC,
		deps.countUnreadUC,
		deps.purgeMessageUC,
	)
}

// =====================================================================
// SendMessage
// =====================================================================

func TestMessageHandler_SendMessage_Success(t *testing.T) {
	now := time.Now().UTC()
	mockUC := &mockSendMessageUC{
		result: &usecases.SendMessageResult{
			MessageID: 1,
			Status:    "unread",
			CreatedAt: now,
		},
	}
	handler := newTestMessageHandler(testDeps{sendMessageUC: mockUC})

	reqBody := SendMessageRequest{
		HeadID:  20,
		Subject: "Staffing escalation",
		Content: "Unit 4 is short two caretakers.",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/messages", reqBody)
	testutil.SetAuthContext(c, 10, authorization.RoleAdmin)

	handler.SendMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(10), mockUC.gotCmd.AdminID)
	assert.Equal(t, uint(20), mockUC.gotCmd.HeadID)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestMessageHandler_SendMessage_BindError(t *testing.T) {
	handler := newTestMessageHandler(testDeps{})

	// Missing required fields
	reqBody := map[string]string{"subject": "only subject"}
	c, w := testutil.NewTestContext(http.MethodPost, "/messages", reqBody)
	testutil.SetAuthContext(c, 10, authorization.RoleAdmin)

	handler.SendMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestMessageHandler_SendMessage_UseCaseError(t *testing.T) {
	mockUC := &mockSendMessageUC{
		err: errors.NewValidationError("head ID is required"),
	}
	handler := newTestMessageHandler(testDeps{sendMessageUC: mockUC})

	reqBody := SendMessageRequest{
		HeadID:  20,
		Subject: "Staffing escalation",
		Content: "Unit 4 is short two caretakers.",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/messages", reqBody)
	testutil.SetAuthContext(c, 10, authorization.RoleAdmin)

	handler.SendMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

// =====================================================================
// ListInbox / ListSent
// =====================================================================

func TestMessageHandler_ListInbox_Success(t *testing.T) {
	mockUC := &mockListHeadInboxUC{
		result: &usecases.ListHeadInboxResult{
			Messages: []*messagedto.MessageDTO{{ID: 1, Subject: "Staffing escalation"}},
			Total:    1,
			Counts:   messagedto.StatusCountsDTO{Total: 1, Unread: 1},
			Page:     1,
			PageSize: 20,
		},
	}
	handler := newTestMessageHandler(testDeps{listHeadInboxUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/messages/inbox", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "unread"})
	testutil.SetAuthContext(c, 20, authorization.RoleHead)

	handler.ListInbox(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(20), mockUC.gotQuery.HeadID)
	assert.Equal(t, "unread", mockUC.gotQuery.Status)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestMessageHandler_ListInbox_InvalidStatus(t *testing.T) {
	mockUC := &mockListHeadInboxUC{
		err: errors.NewValidationError("invalid status filter: archived"),
	}
	handler := newTestMessageHandler(testDeps{listHeadInboxUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/messages/inbox", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "archived"})
	testutil.SetAuthContext(c, 20, authorization.RoleHead)

	handler.ListInbox(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageHandler_ListSent_Success(t *testing.T) {
	mockUC := &mockListAdminSentUC{
		result: &usecases.ListAdminSentResult{
			Messages: []*messagedto.MessageDTO{{ID: 1}, {ID: 2}},
			Total:    2,
			Page:     1,
			PageSize: 20,
		},
	}
	handler := newTestMessageHandler(testDeps{listAdminSentUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/messages", nil)
	testutil.SetAuthContext(c, 10, authorization.RoleAdmin)

	handler.ListSent(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(10), mockUC.gotQuery.AdminID)
}

func TestMessageHandler_ListSent_ClampsPagination(t *testing.T) {
	mockUC := &mockListAdminSentUC{
		result: &usecases.ListAdminSentResult{Page: 1, PageSize: 20},
	}
	handler := newTestMessageHandler(testDeps{listAdminSentUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/messages", nil)
	testutil.SetQueryParams(c, map[string]string{"page": "-3", "page_size": "9999"})
	testutil.SetAuthContext(c, 10, authorization.RoleAdmin)

	handler.ListSent(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mockUC.gotQuery.Page)
	assert.Equal(t, 20, mockUC.gotQuery.PageSize)
}

// =====================================================================
// UnreadCount
// =====================================================================

func TestMessageHandler_UnreadCount_Success(t *testing.T) {
	mockUC := &mockCountUnreadUC{
		result: &usecases.CountUnreadResult{Count: 3},
	}
	handler := newTestMessageHandler(testDeps{countUnreadUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/messages/unread-count", nil)
	testutil.SetAuthContext(c, 20, authorization.RoleHead)

	handler.UnreadCount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unread":3`)
}

// =====================================================================
// GetMessage / OpenMessage
// =====================================================================

func TestMessageHandler_GetMessage_Success(t *testing.T) {
	mockUC := &mockGetMessageUC{
		result: &messagedto.MessageDTO{ID: 1, Subject: "Staffing escalation"},
	}
	handler := newTestMessageHandler(testDeps{getMessageUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/messages/1", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 10, authorization.RoleAdmin)

	handler.GetMessage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), mockUC.gotQuery.MessageID)
	assert.Equal(t, authorization.RoleAdmin, mockUC.gotQuery.Role)
}

func TestMessageHandler_GetMessage_InvalidID(t *testing.T) {
	handler := newTestMessageHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/messages/abc", nil)
	testutil.SetURLParam(c, "id", "abc")
	testutil.SetAuthContext(c, 10, authorization.RoleAdmin)

	handler.GetMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageHandler_GetMessage_Forbidden(t *testing.T) {
	mockUC := &mockGetMessageUC{
		err: errors.NewForbiddenError("access denied"),
	}
	handler := newTestMessageHandler(testDeps{getMessageUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/messages/1", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 11, authorization.RoleAdmin)

	handler.GetMessage(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMessageHandler_OpenMessage_Success(t *testing.T) {
	mockUC := &mockOpenMessageUC{
		result: &messagedto.MessageDTO{ID: 1, Status: "read"},
	}
	handler := newTestMessageHandler(testDeps{openMessageUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/messages/1/open", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 20, authorization.RoleHead)

	handler.OpenMessage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), mockUC.gotCmd.MessageID)
	assert.Equal(t, uint(20), mockUC.gotCmd.HeadID)
}

func TestMessageHandler_OpenMessage_NotFound(t *testing.T) {
	mockUC := &mockOpenMessageUC{
		err: errors.NewNotFoundError("message 1 not found"),
	}
	handler := newTestMessageHandler(testDeps{openMessageUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/messages/1/open", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 20, authorization.RoleHead)

	handler.OpenMessage(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// ReplyMessage / ResolveMessage
// =====================================================================

func TestMessageHandler_ReplyMessage_Success(t *testing.T) {
	now := time.Now().UTC()
	mockUC := &mockReplyMessageUC{
		result: &usecases.ReplyMessageResult{MessageID: 1, Status: "read", RepliedAt: now},
	}
	handler := newTestMessageHandler(testDeps{replyMessageUC: mockUC})

	reqBody := ReplyMessageRequest{Content: "New roster published."}
	c, w := testutil.NewTestContext(http.MethodPost, "/messages/1/reply", reqBody)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 20, authorization.RoleHead)

	handler.ReplyMessage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New roster published.", mockUC.gotCmd.Content)
}

func TestMessageHandler_ReplyMessage_Conflict(t *testing.T) {
	mockUC := &mockReplyMessageUC{
		err: errors.NewConflictError("message already has a reply"),
	}
	handler := newTestMessageHandler(testDeps{replyMessageUC: mockUC})

	reqBody := ReplyMessageRequest{Content: "Second reply."}
	c, w := testutil.NewTestContext(http.MethodPost, "/messages/1/reply", reqBody)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 20, authorization.RoleHead)

	handler.ReplyMessage(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMessageHandler_ReplyMessage_BindError(t *testing.T) {
	handler := newTestMessageHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/messages/1/reply", map[string]string{})
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 20, authorization.RoleHead)

	handler.ReplyMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageHandler_ResolveMessage_Success(t *testing.T) {
	now := time.Now().UTC()
	mockUC := &mockResolveMessageUC{
		result: &usecases.ResolveMessageResult{MessageID: 1, Status: "resolved", ResolvedAt: &now},
	}
	handler := newTestMessageHandler(testDeps{resolveMessageUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/messages/1/resolve", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 20, authorization.RoleHead)

	handler.ResolveMessage(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// =====================================================================
// PurgeMessage
// =====================================================================

func TestMessageHandler_PurgeMessage_Success(t *testing.T) {
	mockUC := &mockPurgeMessageUC{
		result: &usecases.PurgeMessageResult{MessageID: 1},
	}
	handler := newTestMessageHandler(testDeps{purgeMessageUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/messages/1", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 99, authorization.RoleSuperAdmin)

	handler.PurgeMessage(c)
	// Flush the deferred status: gin.CreateTestContext doesn't write
	// status-only responses to the recorder until WriteHeaderNow.
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, authorization.RoleSuperAdmin, mockUC.gotCmd.Role)
}

func TestMessageHandler_PurgeMessage_Forbidden(t *testing.T) {
	mockUC := &mockPurgeMessageUC{
		err: errors.NewForbiddenError("only super admins may purge messages"),
	}
	handler := newTestMessageHandler(testDeps{purgeMessageUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/messages/1", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetAuthContext(c, 10, authorization.RoleAdmin)

	handler.PurgeMessage(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
