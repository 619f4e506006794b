package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vannt010391/staff-management/internal/metrics"
	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/repository"
)

var (
	ErrReviewNotFound       = errors.New("review not found")
	ErrInvalidReviewStatus  = errors.New("invalid review status")
	ErrNoCriteria           = errors.New("At least one criterion is required")
	ErrCriterionMissingRule = errors.New("each criterion must reference a design rule")
	ErrDuplicateCriterion   = errors.New("each design rule may only be judged once per review")
)

// ReviewService implements the review engine: verdict submission with
// per-rule criteria and the resulting task status side effects.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	taskRepo   repository.TaskRepository
	notifier   Notifier
	logger     *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, taskRepo repository.TaskRepository, notifier Notifier, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, taskRepo: taskRepo, notifier: notifier, logger: logger}
}

// CriterionInput is one design rule judgment submitted with a review.
type CriterionInput struct {
	DesignRuleID uint64 `json:"design_rule_id" binding:"required"`
	IsMet        bool   `json:"is_met"`
	Comment      string `json:"comment"`
}

// Submit creates a review with its criteria. The review and every
// criterion persist together or not at all. An approved or rejected
// verdict moves the task to the matching status; needs_revision leaves
// the task where it is.
func (s *ReviewService) Submit(ctx context.Context, taskID uint64, reviewer *models.User, overallStatus models.ReviewStatus, comment string, criteria []CriterionInput) (*models.TaskReview, error) {
	if !models.ValidReviewStatus(overallStatus) {
		return nil, ErrInvalidReviewStatus
	}
	if len(criteria) == 0 {
		return nil, ErrNoCriteria
	}
	seen := make(map[uint64]struct{}, len(criteria))
	for _, c := range criteria {
		if c.DesignRuleID == 0 {
			return nil, ErrCriterionMissingRule
		}
		if _, dup := seen[c.DesignRuleID]; dup {
			return nil, ErrDuplicateCriterion
		}
		seen[c.DesignRuleID] = struct{}{}
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	review := &models.TaskReview{
		TaskID:        task.ID,
		ReviewerID:    &reviewer.ID,
		OverallStatus: overallStatus,
		Comment:       comment,
	}
	rows := make([]models.ReviewCriteria, len(criteria))
	for i, c := range criteria {
		rows[i] = models.ReviewCriteria{
			DesignRuleID: c.DesignRuleID,
			IsMet:        c.IsMet,
			Comment:      c.Comment,
		}
	}

	if err := s.reviewRepo.CreateWithCriteria(review, rows); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	review.Criteria = rows

	if err := s.applyVerdict(task, overallStatus); err != nil {
		return nil, err
	}

	metrics.ReviewsSubmitted.WithLabelValues(string(overallStatus)).Inc()
	s.logger.Info("review submitted",
		zap.Uint64("review_id", review.ID),
		zap.Uint64("task_id", task.ID),
		zap.String("verdict", string(overallStatus)))

	if task.AssignedToID != nil {
		s.notifier.Notify(ctx, *task.AssignedToID, models.NotificationReviewCompleted,
			"Task reviewed",
			fmt.Sprintf("Task %q was reviewed: %s", task.Title, overallStatus),
			&task.ID)
	}

	return review, nil
}

// applyVerdict moves the reviewed task when the verdict demands it.
// needs_revision never touches the task.
func (s *ReviewService) applyVerdict(task *models.Task, verdict models.ReviewStatus) error {
	var target models.TaskStatus
	switch verdict {
	case models.ReviewStatusApproved:
		target = models.TaskStatusApproved
	case models.ReviewStatusRejected:
		target = models.TaskStatusRejected
	default:
		return nil
	}
	if task.Status == target {
		return nil
	}
	task.Status = target
	if err := s.taskRepo.Update(task); err != nil {
		return fmt.Errorf("failed to update task after review: %w", err)
	}
	return nil
}

// Get returns a review with its reviewer and criteria loaded.
func (s *ReviewService) Get(id uint64) (*models.TaskReview, error) {
	review, err := s.reviewRepo.FindByID(id, "Reviewer", "Criteria", "Criteria.DesignRule")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return review, nil
}

// List returns reviews, optionally narrowed to one task.
func (s *ReviewService) List(taskID *uint64, page, pageSize int) ([]models.TaskReview, int64, error) {
	reviews, total, err := s.reviewRepo.List(taskID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}

// Update edits a review's verdict and comment. Criteria are immutable
// once submitted. The task status side effect is re-applied for the new
// verdict.
func (s *ReviewService) Update(ctx context.Context, id uint64, overallStatus models.ReviewStatus, comment *string) (*models.TaskReview, error) {
	if !models.ValidReviewStatus(overallStatus) {
		return nil, ErrInvalidReviewStatus
	}

	review, err := s.reviewRepo.FindByID(id, "Criteria")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}

	review.OverallStatus = overallStatus
	if comment != nil {
		review.Comment = *comment
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	task, err := s.taskRepo.FindByID(review.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return review, nil
		}
		return nil, fmt.Errorf("failed to find reviewed task: %w", err)
	}
	if err := s.applyVerdict(task, overallStatus); err != nil {
		return nil, err
	}

	return review, nil
}

// Delete removes a review and its criteria.
func (s *ReviewService) Delete(id uint64) error {
	if _, err := s.reviewRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to find review: %w", err)
	}
	if err := s.reviewRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
