package dto

import (
	"time"

	"github.com/vannt010391/staff-management/internal/models"
)

// ReviewCriteriaDTO represents one judged design rule in API responses
type ReviewCriteriaDTO struct {
	ID           uint64         `json:"id"`
	DesignRuleID uint64         `json:"design_rule_id"`
	DesignRule   *DesignRuleDTO `json:"design_rule,omitempty"`
	IsMet        bool           `json:"is_met"`
	Comment      string         `json:"comment,omitempty"`
}

// ReviewDTO represents a task review with its derived metrics
type ReviewDTO struct {
	ID                 uint64              `json:"id"`
	TaskID             uint64              `json:"task_id"`
	Reviewer           *UserRefDTO         `json:"reviewer,omitempty"`
	OverallStatus      models.ReviewStatus `json:"overall_status"`
	Comment            string              `json:"comment"`
	ReviewedAt         time.Time           `json:"reviewed_at"`
	TotalCriteria      int                 `json:"total_criteria"`
	MetCriteria        int                 `json:"met_criteria"`
	CriteriaPercentage float64             `json:"criteria_percentage"`
	Criteria           []ReviewCriteriaDTO `json:"criteria,omitempty"`
}

// ReviewListResponse represents a paginated list of reviews
type ReviewListResponse struct {
	Reviews    []ReviewDTO `json:"reviews"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalCount int64       `json:"total_count"`
	TotalPages int         `json:"total_pages"`
}

// ToReviewCriteriaDTO converts a ReviewCriteria model to ReviewCriteriaDTO
func ToReviewCriteriaDTO(criteria models.ReviewCriteria) ReviewCriteriaDTO {
	dto := ReviewCriteriaDTO{
		ID:           criteria.ID,
		DesignRuleID: criteria.DesignRuleID,
		IsMet:        criteria.IsMet,
		Comment:      criteria.Comment,
	}
	if criteria.DesignRule.ID != 0 {
		rule := ToDesignRuleDTO(criteria.DesignRule)
		dto.DesignRule = &rule
	}
	return dto
}

// ToReviewDTO converts a TaskReview model to ReviewDTO. The criteria
// metrics are computed from the loaded criteria.
func ToReviewDTO(review models.TaskReview) ReviewDTO {
	dto := ReviewDTO{
		ID:                 review.ID,
		TaskID:             review.TaskID,
		OverallStatus:      review.OverallStatus,
		Comment:            review.Comment,
		ReviewedAt:         review.ReviewedAt,
		TotalCriteria:      review.TotalCriteria(),
		MetCriteria:        review.MetCriteria(),
		CriteriaPercentage: review.CriteriaPercentage(),
	}
	if review.Reviewer != nil && review.Reviewer.ID != 0 {
		ref := ToUserRefDTO(*review.Reviewer)
		dto.Reviewer = &ref
	}
	if len(review.Criteria) > 0 {
		dto.Criteria = make([]ReviewCriteriaDTO, len(review.Criteria))
		for i, c := range review.Criteria {
			dto.Criteria[i] = ToReviewCriteriaDTO(c)
		}
	}
	return dto
}

// ToReviewListResponse converts a slice of reviews to ReviewListResponse
func ToReviewListResponse(reviews []models.TaskReview, page, pageSize int, totalCount int64) ReviewListResponse {
	items := make([]ReviewDTO, len(reviews))
	for i, review := range reviews {
		items[i] = ToReviewDTO(review)
	}
	return ReviewListResponse{
		Reviews:    items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}
}
