package models

import (
	"time"

	"gorm.io/gorm"
)

type ReviewStatus string

const (
	ReviewStatusApproved      ReviewStatus = "approved"
	ReviewStatusRejected      ReviewStatus = "rejected"
	ReviewStatusNeedsRevision ReviewStatus = "needs_revision"
)

// ValidReviewStatus reports whether s is a known review verdict.
func ValidReviewStatus(s ReviewStatus) bool {
	switch s {
	case ReviewStatusApproved, ReviewStatusRejected, ReviewStatusNeedsRevision:
		return true
	}
	return false
}

// TaskReview is one verdict-producing review pass over a task. ReviewedAt is
// set at creation and never re-stamped; later edits touch only the verdict
// and comment.
type TaskReview struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	TaskID        uint64         `gorm:"not null;index" json:"task_id"`
	ReviewerID    *uint64        `json:"reviewer_id"`
	OverallStatus ReviewStatus   `gorm:"type:varchar(20);not null" json:"overall_status"`
	Comment       string         `gorm:"type:text" json:"comment"`
	ReviewedAt    time.Time      `gorm:"autoCreateTime" json:"reviewed_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task     Task             `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Reviewer *User            `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Criteria []ReviewCriteria `gorm:"foreignKey:ReviewID" json:"criteria,omitempty"`
}

// TotalCriteria returns the number of judged criteria on the loaded review.
func (r *TaskReview) TotalCriteria() int {
	return len(r.Criteria)
}

// MetCriteria returns how many loaded criteria were met.
func (r *TaskReview) MetCriteria() int {
	met := 0
	for _, c := range r.Criteria {
		if c.IsMet {
			met++
		}
	}
	return met
}

// CriteriaPercentage returns met/total as a percentage, 0 when no criteria
// are loaded.
func (r *TaskReview) CriteriaPercentage() float64 {
	total := r.TotalCriteria()
	if total == 0 {
		return 0
	}
	return float64(r.MetCriteria()) / float64(total) * 100
}

// ReviewCriteria records the pass/fail judgment of a single design rule
// within a review. A design rule is judged at most once per review.
type ReviewCriteria struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	ReviewID     uint64         `gorm:"not null;uniqueIndex:idx_review_criteria_rule" json:"review_id"`
	DesignRuleID uint64         `gorm:"not null;uniqueIndex:idx_review_criteria_rule" json:"design_rule_id"`
	IsMet        bool           `gorm:"not null" json:"is_met"`
	Comment      string         `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Review     TaskReview `gorm:"foreignKey:ReviewID" json:"review,omitempty"`
	DesignRule DesignRule `gorm:"foreignKey:DesignRuleID" json:"design_rule,omitempty"`
}
