package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vannt010391/staff-management/internal/models"
)

func seedNotification(t *testing.T, env *serviceTestEnv, recipientID uint64, read bool) *models.Notification {
	t.Helper()
	n := &models.Notification{
		RecipientID: recipientID,
		Type:        models.NotificationTaskAssigned,
		Title:       "Task assigned to you",
		Message:     "msg",
		IsRead:      read,
	}
	require.NoError(t, env.db.Create(n).Error)
	return n
}

func TestUnreadCount_CountsOnlyUnread(t *testing.T) {
	env := newServiceTestEnv(t)
	user := env.createUser(t, "freelancer", models.RoleFreelancer)
	other := env.createUser(t, "other", models.RoleFreelancer)

	seedNotification(t, env, user.ID, false)
	seedNotification(t, env, user.ID, false)
	seedNotification(t, env, user.ID, true)
	seedNotification(t, env, other.ID, false)

	count, err := env.notificationService.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestSetRead_ScopedToRecipient(t *testing.T) {
	env := newServiceTestEnv(t)
	user := env.createUser(t, "freelancer", models.RoleFreelancer)
	other := env.createUser(t, "other", models.RoleFreelancer)
	n := seedNotification(t, env, user.ID, false)

	// Another user cannot touch it.
	_, err := env.notificationService.SetRead(context.Background(), n.ID, other.ID, true)
	require.ErrorIs(t, err, ErrNotificationNotFound)

	updated, err := env.notificationService.SetRead(context.Background(), n.ID, user.ID, true)
	require.NoError(t, err)
	require.True(t, updated.IsRead)

	// And back to unread.
	updated, err = env.notificationService.SetRead(context.Background(), n.ID, user.ID, false)
	require.NoError(t, err)
	require.False(t, updated.IsRead)
}

func TestMarkAllRead_ReportsHowManyChanged(t *testing.T) {
	env := newServiceTestEnv(t)
	user := env.createUser(t, "freelancer", models.RoleFreelancer)

	seedNotification(t, env, user.ID, false)
	seedNotification(t, env, user.ID, false)
	seedNotification(t, env, user.ID, true)

	count, err := env.notificationService.MarkAllRead(context.Background(), user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	unread, err := env.notificationService.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	require.Zero(t, unread)
}

func TestList_UnreadOnlyFilter(t *testing.T) {
	env := newServiceTestEnv(t)
	user := env.createUser(t, "freelancer", models.RoleFreelancer)

	seedNotification(t, env, user.ID, false)
	seedNotification(t, env, user.ID, true)

	all, total, err := env.notificationService.List(user.ID, false, 1, 50)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, all, 2)

	unread, total, err := env.notificationService.List(user.ID, true, 1, 50)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, unread, 1)
	require.False(t, unread[0].IsRead)
}

func TestList_PaginatesButCountsAll(t *testing.T) {
	env := newServiceTestEnv(t)
	user := env.createUser(t, "freelancer", models.RoleFreelancer)

	for i := 0; i < 5; i++ {
		seedNotification(t, env, user.ID, false)
	}

	page1, total, err := env.notificationService.List(user.ID, false, 1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, page1, 2)

	page3, total, err := env.notificationService.List(user.ID, false, 3, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, page3, 1)
}
