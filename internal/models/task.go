package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusNew           TaskStatus = "new"
	TaskStatusAssigned      TaskStatus = "assigned"
	TaskStatusWorking       TaskStatus = "working"
	TaskStatusReviewPending TaskStatus = "review_pending"
	TaskStatusApproved      TaskStatus = "approved"
	TaskStatusRejected      TaskStatus = "rejected"
	TaskStatusCompleted     TaskStatus = "completed"
)

// TaskStatuses lists every legal status value in lifecycle order.
var TaskStatuses = []TaskStatus{
	TaskStatusNew,
	TaskStatusAssigned,
	TaskStatusWorking,
	TaskStatusReviewPending,
	TaskStatusApproved,
	TaskStatusRejected,
	TaskStatusCompleted,
}

// ValidTaskStatus reports whether s is a known status value.
func ValidTaskStatus(s TaskStatus) bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// ValidTaskPriority reports whether p is a known priority value.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"type:varchar(200);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	ProjectID    uint64         `gorm:"not null;index" json:"project_id"`
	TopicID      *uint64        `gorm:"index" json:"topic_id"`
	AssignedToID *uint64        `gorm:"index" json:"assigned_to_id"`
	AssignedByID *uint64        `json:"assigned_by_id"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
	Priority     TaskPriority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Price        float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	DueDate      *time.Time     `json:"due_date"`
	StartedAt    *time.Time     `json:"started_at"`
	CompletedAt  *time.Time     `json:"completed_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project     Project      `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Topic       *Topic       `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	AssignedTo  *User        `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	AssignedBy  *User        `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
	DesignRules []DesignRule `gorm:"many2many:task_design_rules" json:"design_rules,omitempty"`
	Files       []TaskFile   `gorm:"foreignKey:TaskID" json:"files,omitempty"`
	Comments    []TaskComment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Reviews     []TaskReview  `gorm:"foreignKey:TaskID" json:"reviews,omitempty"`
}

// IsOverdue reports whether the due date has passed without the task reaching
// completed or approved.
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == TaskStatusCompleted || t.Status == TaskStatusApproved {
		return false
	}
	return time.Now().After(*t.DueDate)
}
