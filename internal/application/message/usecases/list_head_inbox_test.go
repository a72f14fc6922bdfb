package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servonix/internal/domain/message"
	vo "servonix/internal/domain/message/valueobjects"
	"servonix/internal/shared/errors"
)

func TestListHeadInboxUseCase_Execute_Success(t *testing.T) {
	msgs := []*message.Message{
		reconstructTestMessage(t, 2, 10, 20, vo.StatusUnread, nil),
		reconstructTestMessage(t, 1, 10, 20, vo.StatusRead, nil),
	}

	var capturedFilter message.ListFilter
	mockRepo := &mockMessageRepository{
		ListForHeadFunc: func(ctx context.Context, headID uint, filter message.ListFilter) ([]*message.Message, int64, error) {
			assert.Equal(t, uint(20), headID)
			capturedFilter = filter
			return msgs, 2, nil
		},
		StatusCountsFunc: func(ctx context.Context, headID uint) (message.StatusCounts, error) {
			return message.StatusCounts{Total: 2, Unread: 1, Read: 1}, nil
		},
	}

	useCase := NewListHeadInboxUseCase(mockRepo, &mockLogger{})
	result, err := useCase.Execute(context.Background(), ListHeadInboxQuery{HeadID: 20, Page: 1, PageSize: 20})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Messages, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, int64(1), result.Counts.Unread)
	assert.Equal(t, int64(1), result.Counts.Read)
	assert.Equal(t, int64(0), result.Counts.Resolved)
	assert.Nil(t, capturedFilter.Status, "no filter means all statuses")
}

func TestListHeadInboxUseCase_Execute_StatusFilter(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantFilter *vo.Status
	}{
		{name: "explicit all", status: "all", wantFilter: nil},
		{name: "unread only", status: "unread", wantFilter: statusPtr(vo.StatusUnread)},
		{name: "resolved only", status: "resolved", wantFilter: statusPtr(vo.StatusResolved)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedFilter message.ListFilter
			mockRepo := &mockMessageRepository{
				ListForHeadFunc: func(ctx context.Context, headID uint, filter message.ListFilter) ([]*message.Message, int64, error) {
					capturedFilter = filter
					return nil, 0, nil
				},
			}

			useCase := NewListHeadInboxUseCase(mockRepo, &mockLogger{})
			_, err := useCase.Execute(context.Background(), ListHeadInboxQuery{HeadID: 20, Status: tt.status})

			require.NoError(t, err)
			assert.Equal(t, tt.wantFilter, capturedFilter.Status)
		})
	}
}

func TestListHeadInboxUseCase_Execute_InvalidStatusFilter(t *testing.T) {
	useCase := NewListHeadInboxUseCase(&mockMessageRepository{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), ListHeadInboxQuery{HeadID: 20, Status: "archived"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
}

func TestListHeadInboxUseCase_Execute_MissingHeadID(t *testing.T) {
	useCase := NewListHeadInboxUseCase(&mockMessageRepository{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), ListHeadInboxQuery{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "head ID is required")
}

func TestListHeadInboxUseCase_Execute_NormalizesPagination(t *testing.T) {
	var capturedFilter message.ListFilter
	mockRepo := &mockMessageRepository{
		ListForHeadFunc: func(ctx context.Context, headID uint, filter message.ListFilter) ([]*message.Message, int64, error) {
			capturedFilter = filter
			return nil, 0, nil
		},
	}

	useCase := NewListHeadInboxUseCase(mockRepo, &mockLogger{})
	result, err := useCase.Execute(context.Background(), ListHeadInboxQuery{HeadID: 20, Page: -1, PageSize: 9999})

	require.NoError(t, err)
	assert.Equal(t, 1, capturedFilter.Page)
	assert.Equal(t, 100, capturedFilter.PageSize, "page size is capped")
	assert.Equal(t, 1, result.Page)
}

func statusPtr(s vo.Status) *vo.Status {
	return &s
}

func TestListAdminSentUseCase_Execute_Success(t *testing.T) {
	reply := "done"
	msgs := []*message.Message{
		reconstructTestMessage(t, 3, 10, 20, vo.StatusResolved, nil),
		reconstructTestMessage(t, 2, 10, 21, vo.StatusRead, &reply),
		reconstructTestMessage(t, 1, 10, 22, vo.StatusUnread, nil),
	}

	mockRepo := &mockMessageRepository{
		ListForAdminFunc: func(ctx context.Context, adminID uint, filter message.ListFilter) ([]*message.Message, int64, error) {
			assert.Equal(t, uint(10), adminID)
			return msgs, 3, nil
		},
	}

	useCase := NewListAdminSentUseCase(mockRepo, &mockLogger{})
	result, err := useCase.Execute(context.Background(), ListAdminSentQuery{AdminID: 10})

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Messages, 3)
	assert.Equal(t, "resolved", result.Messages[0].AdminStatus)
	assert.Equal(t, "replied", result.Messages[1].AdminStatus)
	assert.Equal(t, "pending", result.Messages[2].AdminStatus)
}

func TestListAdminSentUseCase_Execute_MissingAdminID(t *testing.T) {
	useCase := NewListAdminSentUseCase(&mockMessageRepository{}, &mockLogger{})

	result, err := useCase.Execute(context.Background(), ListAdminSentQuery{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "admin ID is required")
}
