package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTaskAssigned      NotificationType = "task_assigned"
	NotificationTaskStatusChanged NotificationType = "task_status_changed"
	NotificationNewComment        NotificationType = "new_comment"
	NotificationReviewCompleted   NotificationType = "review_completed"
	NotificationFileUploaded      NotificationType = "file_uploaded"
	NotificationTaskDueSoon       NotificationType = "task_due_soon"
	NotificationTaskOverdue       NotificationType = "task_overdue"
)

type Notification struct {
	ID          uint64           `gorm:"primarykey" json:"id"`
	RecipientID uint64           `gorm:"not null;index" json:"recipient_id"`
	Type        NotificationType `gorm:"column:notification_type;type:varchar(50);not null" json:"notification_type"`
	Title       string           `gorm:"type:varchar(200);not null" json:"title"`
	Message     string           `gorm:"type:text;not null" json:"message"`
	TaskID      *uint64          `gorm:"index" json:"task_id"`
	IsRead      bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Recipient User  `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Task      *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

// OwnerID returns the recipient for ownership checks.
func (n *Notification) OwnerID() *uint64 {
	return &n.RecipientID
}
