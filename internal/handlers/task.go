package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vannt010391/staff-management/internal/dto"
	apierrors "github.com/vannt010391/staff-management/internal/errors"
	"github.com/vannt010391/staff-management/internal/middleware"
	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/repository"
	"github.com/vannt010391/staff-management/internal/services"
	"github.com/vannt010391/staff-management/internal/utils"
)

// TaskHandler exposes the task lifecycle endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks visible to the caller. Freelancers only see
// tasks assigned to them.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.TaskFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if v := c.Query("project_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "invalid project_id")
			return
		}
		filter.ProjectID = &id
	}
	if v := c.Query("topic_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "invalid topic_id")
			return
		}
		filter.TopicID = &id
	}
	if v := c.Query("status"); v != "" {
		status := models.TaskStatus(v)
		if !models.ValidTaskStatus(status) {
			apierrors.BadRequest(c, "invalid status")
			return
		}
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := models.TaskPriority(v)
		if !models.ValidTaskPriority(priority) {
			apierrors.BadRequest(c, "invalid priority")
			return
		}
		filter.Priority = &priority
	}
	if v := c.Query("assigned_to"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "invalid assigned_to")
			return
		}
		filter.AssignedToID = &id
	}

	tasks, total, err := h.taskService.List(filter, user)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns one task with its relations.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid task ID")
		return
	}

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	task, err := h.taskService.Get(id, user)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

type taskRequest struct {
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	TopicID       *uint64              `json:"topic_id"`
	Priority      *models.TaskPriority `json:"priority"`
	Price         *float64             `json:"price"`
	DueDate       *time.Time           `json:"due_date"`
	Status        *models.TaskStatus   `json:"status"`
	DesignRuleIDs []uint64             `json:"design_rule_ids"`
}

func (r taskRequest) toInput() services.TaskInput {
	return services.TaskInput{
		Title:         r.Title,
		Description:   r.Description,
		TopicID:       r.TopicID,
		Priority:      r.Priority,
		Price:         r.Price,
		DueDate:       r.DueDate,
		Status:        r.Status,
		DesignRuleIDs: r.DesignRuleIDs,
	}
}

// CreateTask creates a task in a project.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		taskRequest
		ProjectID uint64 `json:"project_id" binding:"required"`
	}

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Title == nil || *req.Title == "" {
		apierrors.BadRequest(c, "title is required")
		return
	}

	task, err := h.taskService.Create(req.ProjectID, req.toInput(), user)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask edits a task. Freelancers may only change the status; any
// other field they send is ignored.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid task ID")
		return
	}

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), id, req.toInput(), user)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task and everything hanging off it.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid task ID")
		return
	}

	if err := h.taskService.Delete(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// AssignTask gives the task to a freelancer and resets its status.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	type AssignRequest struct {
		AssigneeID uint64 `json:"assignee_id" binding:"required"`
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid task ID")
		return
	}

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Assign(c.Request.Context(), id, req.AssigneeID, user)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ChangeStatus moves a task through its lifecycle. An optional comment
// is recorded on the task as an audit trail entry.
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	type ChangeStatusRequest struct {
		Status  models.TaskStatus `json:"status" binding:"required"`
		Comment string            `json:"comment"`
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid task ID")
		return
	}

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.ChangeStatus(c.Request.Context(), id, req.Status, req.Comment, user)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrOnlyFreelancers):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrNegativePrice):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskAccessDenied):
		apierrors.Forbidden(c, "")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
