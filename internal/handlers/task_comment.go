package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vannt010391/staff-management/internal/database"
	"github.com/vannt010391/staff-management/internal/dto"
	apierrors "github.com/vannt010391/staff-management/internal/errors"
	"github.com/vannt010391/staff-management/internal/middleware"
	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/policy"
	"github.com/vannt010391/staff-management/internal/services"
)

// TaskCommentHandler exposes the comment thread on a task.
type TaskCommentHandler struct {
	notifier services.Notifier
}

// NewTaskCommentHandler creates a new TaskCommentHandler.
func NewTaskCommentHandler(notifier services.Notifier) *TaskCommentHandler {
	return &TaskCommentHandler{
		notifier: notifier,
	}
}

// ListComments returns a task's top-level comments with their replies.
func (h *TaskCommentHandler) ListComments(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "task not loaded")
		return
	}

	var comments []models.TaskComment
	if err := database.GetDB().
		Where("task_id = ? AND parent_id IS NULL", task.ID).
		Preload("User").
		Preload("Replies").
		Preload("Replies.User").
		Order("created_at").
		Find(&comments).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch comments")
		return
	}

	items := make([]dto.TaskCommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = dto.ToTaskCommentDTO(comment)
	}
	c.JSON(http.StatusOK, gin.H{"comments": items})
}

// CreateComment adds a comment or a reply. Replies may only nest one
// level deep.
func (h *TaskCommentHandler) CreateComment(c *gin.Context) {
	type CreateCommentRequest struct {
		Comment  string  `json:"comment" binding:"required"`
		ParentID *uint64 `json:"parent_id"`
	}

	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "task not loaded")
		return
	}
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.ParentID != nil {
		var parent models.TaskComment
		if err := database.GetDB().
			Where("id = ? AND task_id = ?", *req.ParentID, task.ID).
			First(&parent).Error; err != nil {
			apierrors.NotFound(c, "parent comment not found")
			return
		}
		if parent.IsReply() {
			apierrors.BadRequest(c, "cannot reply to a reply")
			return
		}
	}

	comment := models.TaskComment{
		TaskID:   task.ID,
		UserID:   &user.ID,
		Comment:  req.Comment,
		ParentID: req.ParentID,
	}
	if err := database.GetDB().Create(&comment).Error; err != nil {
		apierrors.InternalError(c, "Failed to create comment")
		return
	}

	if task.AssignedToID != nil && *task.AssignedToID != user.ID {
		h.notifier.Notify(c.Request.Context(), *task.AssignedToID, models.NotificationNewComment,
			"New comment",
			fmt.Sprintf("New comment on task %q", task.Title),
			&task.ID)
	}

	comment.User = user
	c.JSON(http.StatusCreated, dto.ToTaskCommentDTO(comment))
}

// DeleteComment removes a comment. Only the author, an admin, or a
// manager may delete it.
func (h *TaskCommentHandler) DeleteComment(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "task not loaded")
		return
	}
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid comment ID")
		return
	}

	var comment models.TaskComment
	if err := database.GetDB().
		Where("id = ? AND task_id = ?", commentID, task.ID).
		First(&comment).Error; err != nil {
		apierrors.NotFound(c, "comment not found")
		return
	}

	if !policy.CanTouch(user, &comment, nil) {
		apierrors.Forbidden(c, "")
		return
	}

	if err := database.GetDB().Delete(&comment).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}
