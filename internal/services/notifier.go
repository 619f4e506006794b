package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/repository"
)

// Notifier delivers user-facing notifications. Delivery is best effort:
// callers never fail their own operation because a notification could
// not be stored.
type Notifier interface {
	Notify(ctx context.Context, recipientID uint64, nType models.NotificationType, title, message string, taskID *uint64)
}

// DBNotifier persists notifications and invalidates the recipient's
// cached unread count.
type DBNotifier struct {
	repo   repository.NotificationRepository
	cache  *UnreadCountCache
	logger *zap.Logger
}

// NewDBNotifier creates a Notifier backed by the notification store.
// cache may be nil when no Redis is configured.
func NewDBNotifier(repo repository.NotificationRepository, cache *UnreadCountCache, logger *zap.Logger) *DBNotifier {
	return &DBNotifier{repo: repo, cache: cache, logger: logger}
}

func (n *DBNotifier) Notify(ctx context.Context, recipientID uint64, nType models.NotificationType, title, message string, taskID *uint64) {
	notification := &models.Notification{
		RecipientID: recipientID,
		Type:        nType,
		Title:       title,
		Message:     message,
		TaskID:      taskID,
	}

	if err := n.repo.Create(notification); err != nil {
		n.logger.Warn("failed to store notification",
			zap.Uint64("recipient_id", recipientID),
			zap.String("type", string(nType)),
			zap.Error(err))
		return
	}

	if n.cache != nil {
		n.cache.Invalidate(ctx, recipientID)
	}
}

// NopNotifier discards all notifications. Used in tests and when the
// notification subsystem is disabled.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, uint64, models.NotificationType, string, string, *uint64) {
}
