package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vannt010391/staff-management/internal/dto"
	apierrors "github.com/vannt010391/staff-management/internal/errors"
	"github.com/vannt010391/staff-management/internal/middleware"
	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/services"
	"github.com/vannt010391/staff-management/internal/utils"
)

// ReviewHandler exposes the task review endpoints.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// ListReviews returns reviews, optionally narrowed to one task.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var taskID *uint64
	if v := c.Query("task_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "invalid task_id")
			return
		}
		taskID = &id
	}

	reviews, total, err := h.reviewService.List(taskID, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch reviews")
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewListResponse(reviews, params.Page, params.Limit, total))
}

// GetReview returns one review with its criteria and derived metrics.
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid review ID")
		return
	}

	review, err := h.reviewService.Get(id)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewDTO(*review))
}

// GetCriteria returns the judged criteria of one review.
func (h *ReviewHandler) GetCriteria(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid review ID")
		return
	}

	review, err := h.reviewService.Get(id)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	items := make([]dto.ReviewCriteriaDTO, len(review.Criteria))
	for i, criterion := range review.Criteria {
		items[i] = dto.ToReviewCriteriaDTO(criterion)
	}
	c.JSON(http.StatusOK, gin.H{"criteria": items})
}

// CreateReview submits a review for a task. The verdict may move the
// task to approved or rejected.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	type CreateReviewRequest struct {
		TaskID        uint64                    `json:"task_id" binding:"required"`
		OverallStatus models.ReviewStatus       `json:"overall_status" binding:"required"`
		Comment       string                    `json:"comment"`
		Criteria      []services.CriterionInput `json:"criteria"`
	}

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), req.TaskID, user, req.OverallStatus, req.Comment, req.Criteria)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReviewDTO(*review))
}

// UpdateReview edits a review's verdict and comment. Criteria cannot be
// changed after submission.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	type UpdateReviewRequest struct {
		OverallStatus models.ReviewStatus `json:"overall_status" binding:"required"`
		Comment       *string             `json:"comment"`
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid review ID")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), id, req.OverallStatus, req.Comment)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewDTO(*review))
}

// DeleteReview removes a review and its criteria.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid review ID")
		return
	}

	if err := h.reviewService.Delete(id); err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}

func respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNoCriteria),
		errors.Is(err, services.ErrCriterionMissingRule),
		errors.Is(err, services.ErrDuplicateCriterion),
		errors.Is(err, services.ErrInvalidReviewStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
