package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService handles a user's notification inbox.
type NotificationService struct {
	repo  repository.NotificationRepository
	cache *UnreadCountCache
}

// NewNotificationService creates a new NotificationService. cache may
// be nil when no Redis is configured.
func NewNotificationService(repo repository.NotificationRepository, cache *UnreadCountCache) *NotificationService {
	return &NotificationService{repo: repo, cache: cache}
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(recipientID uint64, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error) {
	notifications, total, err := s.repo.ListByRecipient(recipientID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// UnreadCount returns the recipient's unread count, served from cache
// when possible.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint64) (int64, error) {
	if s.cache != nil {
		if count, ok := s.cache.Get(ctx, recipientID); ok {
			return count, nil
		}
	}

	count, err := s.repo.UnreadCount(recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, recipientID, count)
	}
	return count, nil
}

// SetRead marks one of the recipient's notifications read or unread.
func (s *NotificationService) SetRead(ctx context.Context, id, recipientID uint64, read bool) (*models.Notification, error) {
	notification, err := s.repo.FindByIDAndRecipient(id, recipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if notification.IsRead != read {
		if err := s.repo.SetRead(id, recipientID, read); err != nil {
			return nil, fmt.Errorf("failed to update notification: %w", err)
		}
		notification.IsRead = read
		if s.cache != nil {
			s.cache.Invalidate(ctx, recipientID)
		}
	}

	return notification, nil
}

// MarkAllRead marks every unread notification of the recipient as read
// and returns how many were updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint64) (int64, error) {
	count, err := s.repo.MarkAllRead(recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	if count > 0 && s.cache != nil {
		s.cache.Invalidate(ctx, recipientID)
	}
	return count, nil
}
