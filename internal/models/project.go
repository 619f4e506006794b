package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ClientName  string         `gorm:"type:varchar(200)" json:"client_name"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	Status      ProjectStatus  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedByID *uint64        `json:"created_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedBy   *User        `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Topics      []Topic      `gorm:"foreignKey:ProjectID" json:"topics,omitempty"`
	DesignRules []DesignRule `gorm:"foreignKey:ProjectID" json:"design_rules,omitempty"`
	Tasks       []Task       `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

type Topic struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	ProjectID   uint64         `gorm:"not null;uniqueIndex:idx_topics_project_name" json:"project_id"`
	Name        string         `gorm:"type:varchar(200);not null;uniqueIndex:idx_topics_project_name" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Order       int            `gorm:"not null;default:0" json:"order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

type RuleCategory string

const (
	RuleCategoryLayout     RuleCategory = "layout"
	RuleCategoryTypography RuleCategory = "typography"
	RuleCategoryColor      RuleCategory = "color"
	RuleCategoryContent    RuleCategory = "content"
	RuleCategoryAnimation  RuleCategory = "animation"
	RuleCategoryOther      RuleCategory = "other"
)

// DesignRule is a project-scoped checklist item that task deliverables are
// evaluated against during review.
type DesignRule struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	ProjectID   uint64         `gorm:"not null;index" json:"project_id"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    RuleCategory   `gorm:"type:varchar(50);not null;default:'other'" json:"category"`
	IsRequired  bool           `gorm:"not null;default:true" json:"is_required"`
	Order       int            `gorm:"not null;default:0" json:"order"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
