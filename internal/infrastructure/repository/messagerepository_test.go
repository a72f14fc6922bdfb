package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"servonix/internal/domain/message"
	vo "servonix/internal/domain/message/valueobjects"
	"servonix/internal/infrastructure/persistence/models"
	apperrors "servonix/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.MessageModel{})
	require.NoError(t, err)

	return db
}

func createTestMessage(t *testing.T, adminID, headID uint, complaintID *uint) *message.Message {
	msg, err := message.NewMessage(adminID, headID, "Escalation required", "Please review unit 4 staffing.", complaintID, time.Now().UTC())
	require.NoError(t, err)
	return msg
}

func saveTestMessage(t *testing.T, repo message.Repository, adminID, headID uint, complaintID *uint) *message.Message {
	msg := createTestMessage(t, adminID, headID, complaintID)
	require.NoError(t, repo.Save(context.Background(), msg))
	return msg
}

func TestMessageRepository_SaveAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	t.Run("save assigns ID and round-trips", func(t *testing.T) {
		complaintID := uint(42)
		msg := createTestMessage(t, 10, 20, &complaintID)

		err := repo.Save(ctx, msg)
		require.NoError(t, err)
		assert.NotZero(t, msg.ID())

		found, err := repo.GetByID(ctx, msg.ID())
		require.NoError(t, err)
		assert.Equal(t, msg.AdminID(), found.AdminID())
		assert.Equal(t, msg.HeadID(), found.HeadID())
		assert.Equal(t, msg.Subject(), found.Subject())
		assert.Equal(t, msg.Content(), found.Content())
		require.NotNil(t, found.ComplaintID())
		assert.Equal(t, complaintID, *found.ComplaintID())
		assert.True(t, found.Status().IsUnread())
		assert.Nil(t, found.ReplyContent())
	})

	t.Run("missing message returns not found", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)
		assert.Nil(t, found)
		assert.True(t, apperrors.IsNotFoundError(err))
	})
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	msg := saveTestMessage(t, repo, 10, 20, nil)
	readAt := time.Now().UTC()

	opened, err := repo.MarkRead(ctx, msg.ID(), readAt)
	require.NoError(t, err)
	assert.True(t, opened)

	found, err := repo.GetByID(ctx, msg.ID())
	require.NoError(t, err)
	assert.True(t, found.Status().IsRead())
	require.NotNil(t, found.ReadAt())
	assert.Equal(t, readAt.UnixMilli(), found.ReadAt().UnixMilli())

	t.Run("second open is a no-op", func(t *testing.T) {
		opened, err := repo.MarkRead(ctx, msg.ID(), time.Now().UTC().Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, opened)

		found, err := repo.GetByID(ctx, msg.ID())
		require.NoError(t, err)
		assert.Equal(t, readAt.UnixMilli(), found.ReadAt().UnixMilli(), "read_at must keep the first open time")
	})
}

func TestMessageRepository_SetReply(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	t.Run("reply on unread implicitly opens the message", func(t *testing.T) {
		msg := saveTestMessage(t, repo, 10, 20, nil)
		repliedAt := time.Now().UTC()

		replied, err := repo.SetReply(ctx, msg.ID(), "Handled, new roster published.", repliedAt)
		require.NoError(t, err)
		assert.True(t, replied)

		found, err := repo.GetByID(ctx, msg.ID())
		require.NoError(t, err)
		assert.True(t, found.Status().IsRead())
		require.NotNil(t, found.ReplyContent())
		assert.Equal(t, "Handled, new roster published.", *found.ReplyContent())
		require.NotNil(t, found.ReadAt())
		assert.Equal(t, repliedAt.UnixMilli(), found.ReadAt().UnixMilli())
		require.NotNil(t, found.RepliedAt())
	})

	t.Run("reply on read preserves the original read time", func(t *testing.T) {
		msg := saveTestMessage(t, repo, 10, 20, nil)
		readAt := time.Now().UTC()
		_, err := repo.MarkRead(ctx, msg.ID(), readAt)
		require.NoError(t, err)

		replied, err := repo.SetReply(ctx, msg.ID(), "Handled.", readAt.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, replied)

		found, err := repo.GetByID(ctx, msg.ID())
		require.NoError(t, err)
		assert.Equal(t, readAt.UnixMilli(), found.ReadAt().UnixMilli())
	})

	t.Run("second reply loses the race", func(t *testing.T) {
		msg := saveTestMessage(t, repo, 10, 20, nil)

		replied, err := repo.SetReply(ctx, msg.ID(), "First reply.", time.Now().UTC())
		require.NoError(t, err)
		require.True(t, replied)

		replied, err = repo.SetReply(ctx, msg.ID(), "Second reply.", time.Now().UTC())
		require.NoError(t, err)
		assert.False(t, replied)

		found, err := repo.GetByID(ctx, msg.ID())
		require.NoError(t, err)
		require.NotNil(t, found.ReplyContent())
		assert.Equal(t, "First reply.", *found.ReplyContent())
	})

	t.Run("reply on resolved message is rejected", func(t *testing.T) {
		msg := saveTestMessage(t, repo, 10, 20, nil)
		_, err := repo.MarkResolved(ctx, msg.ID(), time.Now().UTC())
		require.NoError(t, err)

		replied, err := repo.SetReply(ctx, msg.ID(), "Too late.", time.Now().UTC())
		require.NoError(t, err)
		assert.False(t, replied)
	})
}

func TestMessageRepository_MarkResolved(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	t.Run("resolving an unread message backfills read_at", func(t *testing.T) {
		msg := saveTestMessage(t, repo, 10, 20, nil)
		resolvedAt := time.Now().UTC()

		resolved, err := repo.MarkResolved(ctx, msg.ID(), resolvedAt)
		require.NoError(t, err)
		assert.True(t, resolved)

		found, err := repo.GetByID(ctx, msg.ID())
		require.NoError(t, err)
		assert.True(t, found.Status().IsResolved())
		require.NotNil(t, found.ReadAt())
		assert.Equal(t, resolvedAt.UnixMilli(), found.ReadAt().UnixMilli())
		require.NotNil(t, found.ResolvedAt())
	})

	t.Run("second resolve is a no-op", func(t *testing.T) {
		msg := saveTestMessage(t, repo, 10, 20, nil)
		resolvedAt := time.Now().UTC()

		resolved, err := repo.MarkResolved(ctx, msg.ID(), resolvedAt)
		require.NoError(t, err)
		require.True(t, resolved)

		resolved, err = repo.MarkResolved(ctx, msg.ID(), resolvedAt.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, resolved)

		found, err := repo.GetByID(ctx, msg.ID())
		require.NoError(t, err)
		assert.Equal(t, resolvedAt.UnixMilli(), found.ResolvedAt().UnixMilli())
	})
}

func TestMessageRepository_Listing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		saveTestMessage(t, repo, 10, 20, nil)
	}
	saveTestMessage(t, repo, 11, 20, nil)
	other := saveTestMessage(t, repo, 10, 21, nil)

	_, err := repo.MarkRead(ctx, other.ID(), time.Now().UTC())
	require.NoError(t, err)

	t.Run("list for head scopes by recipient", func(t *testing.T) {
		msgs, total, err := repo.ListForHead(ctx, 20, message.ListFilter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, msgs, 4)
		for _, m := range msgs {
			assert.Equal(t, uint(20), m.HeadID())
		}
	})

	t.Run("list for head filters by status", func(t *testing.T) {
		status := vo.StatusRead
		msgs, total, err := repo.ListForHead(ctx, 21, message.ListFilter{Status: &status, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, msgs, 1)
		assert.True(t, msgs[0].Status().IsRead())
	})

	t.Run("list for admin scopes by sender", func(t *testing.T) {
		msgs, total, err := repo.ListForAdmin(ctx, 10, message.ListFilter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, msgs, 4)
		for _, m := range msgs {
			assert.Equal(t, uint(10), m.AdminID())
		}
	})

	t.Run("pagination caps the page", func(t *testing.T) {
		msgs, total, err := repo.ListForHead(ctx, 20, message.ListFilter{Page: 1, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, msgs, 3)

		msgs, _, err = repo.ListForHead(ctx, 20, message.ListFilter{Page: 2, PageSize: 3})
		require.NoError(t, err)
		assert.Len(t, msgs, 1)
	})
}

func TestMessageRepository_CountUnreadAndStatusCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	first := saveTestMessage(t, repo, 10, 20, nil)
	second := saveTestMessage(t, repo, 10, 20, nil)
	saveTestMessage(t, repo, 10, 20, nil)
	saveTestMessage(t, repo, 10, 21, nil)

	_, err := repo.MarkRead(ctx, first.ID(), time.Now().UTC())
	require.NoError(t, err)
	_, err = repo.MarkResolved(ctx, second.ID(), time.Now().UTC())
	require.NoError(t, err)

	count, err := repo.CountUnread(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	counts, err := repo.StatusCounts(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, message.StatusCounts{Total: 3, Unread: 1, Read: 1, Resolved: 1}, counts)

	counts, err = repo.StatusCounts(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, message.StatusCounts{}, counts)
}

func TestMessageRepository_UnlinkComplaint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	complaintID := uint(7)
	linked1 := saveTestMessage(t, repo, 10, 20, &complaintID)
	linked2 := saveTestMessage(t, repo, 11, 21, &complaintID)
	untouched := saveTestMessage(t, repo, 10, 20, nil)

	updated, err := repo.UnlinkComplaint(ctx, complaintID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	for _, id := range []uint{linked1.ID(), linked2.ID()} {
		found, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, found.ComplaintID(), "complaint reference must be cleared, message kept")
	}

	found, err := repo.GetByID(ctx, untouched.ID())
	require.NoError(t, err)
	assert.Nil(t, found.ComplaintID())

	updated, err = repo.UnlinkComplaint(ctx, 9999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestMessageRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	msg := saveTestMessage(t, repo, 10, 20, nil)

	err := repo.Delete(ctx, msg.ID())
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, msg.ID())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))

	err = repo.Delete(ctx, msg.ID())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}
