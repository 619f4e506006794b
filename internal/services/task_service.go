package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vannt010391/staff-management/internal/metrics"
	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/policy"
	"github.com/vannt010391/staff-management/internal/repository"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrAssigneeNotFound  = errors.New("assignee not found")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrNegativePrice     = errors.New("price must be non-negative")
	ErrOnlyFreelancers   = errors.New("Can only assign tasks to freelancers")
	ErrTaskAccessDenied  = errors.New("task access denied")
)

// TaskService implements the task lifecycle: creation, assignment, the
// status state machine and per-project statistics.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, notifier Notifier, logger *zap.Logger) *TaskService {
	return &TaskService{taskRepo: taskRepo, userRepo: userRepo, notifier: notifier, logger: logger}
}

// TaskInput carries the caller-editable task fields. Nil pointers mean
// "leave unchanged" on update.
type TaskInput struct {
	Title         *string
	Description   *string
	TopicID       *uint64
	Priority      *models.TaskPriority
	Price         *float64
	DueDate       *time.Time
	Status        *models.TaskStatus
	DesignRuleIDs []uint64
}

// Create creates a task in the given project. Design rules are attached
// when rule IDs are supplied.
func (s *TaskService) Create(projectID uint64, input TaskInput, actor *models.User) (*models.Task, error) {
	task := &models.Task{
		ProjectID: projectID,
		Status:    models.TaskStatusNew,
		Priority:  models.TaskPriorityMedium,
	}
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.TopicID != nil {
		task.TopicID = input.TopicID
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrNegativePrice
		}
		task.Price = *input.Price
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(input.DesignRuleIDs) > 0 {
		if err := s.taskRepo.ReplaceDesignRules(task, input.DesignRuleIDs); err != nil {
			return nil, fmt.Errorf("failed to attach design rules: %w", err)
		}
	}

	metrics.TasksCreated.Inc()
	s.logger.Info("task created",
		zap.Uint64("task_id", task.ID),
		zap.Uint64("project_id", projectID),
		zap.Uint64("actor_id", actor.ID))

	return task, nil
}

// Get returns a task with its relations preloaded, enforcing the
// freelancer own-tasks restriction.
func (s *TaskService) Get(id uint64, actor *models.User) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "Project", "Topic", "AssignedTo", "AssignedBy", "DesignRules")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if !policy.CanViewTask(actor, task) {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// List returns tasks matching the filter. Freelancers only ever see
// tasks assigned to them, whatever the filter says.
func (s *TaskService) List(filter repository.TaskFilter, actor *models.User) ([]models.Task, int64, error) {
	if policy.StatusOnlyUpdate(actor) && !policy.Allows(actor, policy.ActionViewAllTasks) {
		filter.AssignedToID = &actor.ID
	}
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// applyStatus validates the target status and stamps the lifecycle
// timestamps. started_at and completed_at are written once and never
// overwritten on a revisit.
func applyStatus(task *models.Task, newStatus models.TaskStatus) error {
	if !models.ValidTaskStatus(newStatus) {
		return ErrInvalidTaskStatus
	}
	now := time.Now()
	if newStatus == models.TaskStatusWorking && task.StartedAt == nil {
		task.StartedAt = &now
	}
	if newStatus == models.TaskStatusCompleted && task.CompletedAt == nil {
		task.CompletedAt = &now
	}
	task.Status = newStatus
	return nil
}

// ChangeStatus moves a task to newStatus. The target status is validated
// before anything is touched. A non-empty comment is recorded as an audit
// comment in the same transaction as the status write. The assignee is
// notified after the fact.
func (s *TaskService) ChangeStatus(ctx context.Context, id uint64, newStatus models.TaskStatus, comment string, actor *models.User) (*models.Task, error) {
	if !models.ValidTaskStatus(newStatus) {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if !policy.CanUpdateTask(actor, task) {
		return nil, ErrTaskAccessDenied
	}

	oldStatus := task.Status
	if err := applyStatus(task, newStatus); err != nil {
		return nil, err
	}

	var audit *models.TaskComment
	if comment != "" {
		audit = &models.TaskComment{
			TaskID:  task.ID,
			UserID:  &actor.ID,
			Comment: fmt.Sprintf("Status changed from %s to %s: %s", oldStatus, newStatus, comment),
		}
	}

	if err := s.taskRepo.SaveWithComment(task, audit); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	metrics.TaskStatusChanges.WithLabelValues(string(newStatus)).Inc()
	s.notifyStatusChange(ctx, task, oldStatus, actor)

	return task, nil
}

func (s *TaskService) notifyStatusChange(ctx context.Context, task *models.Task, oldStatus models.TaskStatus, actor *models.User) {
	if task.AssignedToID == nil || *task.AssignedToID == actor.ID {
		return
	}
	s.notifier.Notify(ctx, *task.AssignedToID, models.NotificationTaskStatusChanged,
		"Task status changed",
		fmt.Sprintf("Task %q moved from %s to %s", task.Title, oldStatus, task.Status),
		&task.ID)
}

// Assign gives the task to a freelancer. Assignment resets the status to
// assigned no matter where the task was in its lifecycle.
func (s *TaskService) Assign(ctx context.Context, id, assigneeID uint64, actor *models.User) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	assignee, err := s.userRepo.FindByID(assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}
	if assignee.Role != models.RoleFreelancer {
		return nil, ErrOnlyFreelancers
	}

	task.AssignedToID = &assignee.ID
	task.AssignedByID = &actor.ID
	task.Status = models.TaskStatusAssigned

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	metrics.TasksAssigned.Inc()
	s.notifier.Notify(ctx, assignee.ID, models.NotificationTaskAssigned,
		"Task assigned to you",
		fmt.Sprintf("You have been assigned task %q", task.Title),
		&task.ID)

	return task, nil
}

// Update edits task fields. Freelancer actors may only change the
// status; every other field they send is dropped without error.
func (s *TaskService) Update(ctx context.Context, id uint64, input TaskInput, actor *models.User) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if !policy.CanUpdateTask(actor, task) {
		return nil, ErrTaskAccessDenied
	}

	if policy.StatusOnlyUpdate(actor) {
		input = TaskInput{Status: input.Status}
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.TopicID != nil {
		task.TopicID = input.TopicID
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrNegativePrice
		}
		task.Price = *input.Price
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	oldStatus := task.Status
	statusChanged := false
	if input.Status != nil && *input.Status != task.Status {
		if err := applyStatus(task, *input.Status); err != nil {
			return nil, err
		}
		statusChanged = true
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if input.DesignRuleIDs != nil && !policy.StatusOnlyUpdate(actor) {
		if err := s.taskRepo.ReplaceDesignRules(task, input.DesignRuleIDs); err != nil {
			return nil, fmt.Errorf("failed to update design rules: %w", err)
		}
	}

	if statusChanged {
		metrics.TaskStatusChanges.WithLabelValues(string(task.Status)).Inc()
		s.notifyStatusChange(ctx, task, oldStatus, actor)
	}

	return task, nil
}

// Delete removes a task together with its comments, files and reviews.
func (s *TaskService) Delete(id uint64) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}
	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ProjectStatistics aggregates task counts for one project.
type ProjectStatistics struct {
	TotalTasks     int64                       `json:"total_tasks"`
	ByStatus       map[models.TaskStatus]int64 `json:"by_status"`
	CompletedTasks int64                       `json:"completed_tasks"`
	CompletionRate float64                     `json:"completion_rate"`
}

// Statistics returns per-status counts and the completion rate for a
// project. The rate counts completed and approved tasks and is 0 for an
// empty project.
func (s *TaskService) Statistics(projectID uint64) (*ProjectStatistics, error) {
	counts, err := s.taskRepo.CountByStatus(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	stats := &ProjectStatistics{ByStatus: counts}
	for _, count := range counts {
		stats.TotalTasks += count
	}
	stats.CompletedTasks = counts[models.TaskStatusCompleted] + counts[models.TaskStatusApproved]
	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}
	return stats, nil
}
