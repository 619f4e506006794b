package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskComment is a threaded discussion entry on a task. A non-nil ParentID
// marks it as a reply; replies are one level deep.
type TaskComment struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	TaskID    uint64         `gorm:"not null;index" json:"task_id"`
	UserID    *uint64        `json:"user_id"`
	Comment   string         `gorm:"type:text;not null" json:"comment"`
	ParentID  *uint64        `gorm:"index" json:"parent_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task    Task          `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User    *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Replies []TaskComment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

// IsReply reports whether the comment is a reply to another comment.
func (c *TaskComment) IsReply() bool {
	return c.ParentID != nil
}

// OwnerID returns the authoring user for ownership checks.
func (c *TaskComment) OwnerID() *uint64 {
	return c.UserID
}
