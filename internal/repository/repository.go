package repository

import (
	"github.com/vannt010391/staff-management/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// SaveWithComment persists a task update and an audit comment atomically.
	// A nil comment degrades to a plain update.
	SaveWithComment(task *models.Task, comment *models.TaskComment) error

	// Delete soft deletes a task and its dependent rows
	Delete(id uint64) error

	// ReplaceDesignRules replaces the set of design rules attached to a task
	ReplaceDesignRules(task *models.Task, ruleIDs []uint64) error

	// CountByStatus returns per-status task counts for a project
	CountByStatus(projectID uint64) (map[models.TaskStatus]int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID    *uint64
	TopicID      *uint64
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	AssignedToID *uint64
	Page         int
	PageSize     int
}

// ReviewRepository defines the interface for task review data access
type ReviewRepository interface {
	// CreateWithCriteria creates a review and all of its criteria in one
	// transaction; no partial review may persist.
	CreateWithCriteria(review *models.TaskReview, criteria []models.ReviewCriteria) error

	// FindByID finds a review by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.TaskReview, error)

	// List retrieves reviews, optionally narrowed to one task
	List(taskID *uint64, page, pageSize int) ([]models.TaskReview, int64, error)

	// Update updates the review row (verdict and comment only)
	Update(review *models.TaskReview) error

	// Delete soft deletes a review and its criteria
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users with optional role/active filters
	List(filter UserFilter) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete soft deletes a user
	Delete(id uint64) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role     *models.Role
	IsActive *bool
	Page     int
	PageSize int
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a notification
	Create(n *models.Notification) error

	// FindByIDAndRecipient finds a notification scoped to its recipient
	FindByIDAndRecipient(id, recipientID uint64) (*models.Notification, error)

	// ListByRecipient retrieves a recipient's notifications
	ListByRecipient(recipientID uint64, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error)

	// UnreadCount counts a recipient's unread notifications
	UnreadCount(recipientID uint64) (int64, error)

	// SetRead flips the read flag on one notification
	SetRead(id, recipientID uint64, read bool) error

	// MarkAllRead marks every unread notification of a recipient as read and
	// returns how many rows changed
	MarkAllRead(recipientID uint64) (int64, error)
}
