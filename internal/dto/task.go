package dto

import (
	"time"

	"github.com/vannt010391/staff-management/internal/models"
)

// DesignRuleDTO represents a design rule in API responses
type DesignRuleDTO struct {
	ID          uint64              `json:"id"`
	ProjectID   uint64              `json:"project_id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Category    models.RuleCategory `json:"category"`
	IsRequired  bool                `json:"is_required"`
	Order       int                 `json:"order"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	ProjectID    uint64              `json:"project_id"`
	TopicID      *uint64             `json:"topic_id"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	Price        float64             `json:"price"`
	DueDate      *time.Time          `json:"due_date"`
	StartedAt    *time.Time          `json:"started_at"`
	CompletedAt  *time.Time          `json:"completed_at"`
	IsOverdue    bool                `json:"is_overdue"`
	AssignedToID *uint64             `json:"assigned_to_id"`
	AssignedTo   *UserRefDTO         `json:"assigned_to,omitempty"`
	AssignedBy   *UserRefDTO         `json:"assigned_by,omitempty"`
	DesignRules  []DesignRuleDTO     `json:"design_rules,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	ProjectID    uint64              `json:"project_id"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	Price        float64             `json:"price"`
	DueDate      *time.Time          `json:"due_date"`
	IsOverdue    bool                `json:"is_overdue"`
	AssignedToID *uint64             `json:"assigned_to_id"`
	AssignedTo   *UserRefDTO         `json:"assigned_to,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// TaskCommentDTO represents a task comment in API responses
type TaskCommentDTO struct {
	ID        uint64           `json:"id"`
	TaskID    uint64           `json:"task_id"`
	Comment   string           `json:"comment"`
	ParentID  *uint64          `json:"parent_id"`
	IsReply   bool             `json:"is_reply"`
	User      *UserRefDTO      `json:"user,omitempty"`
	Replies   []TaskCommentDTO `json:"replies,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// TaskFileDTO represents task file metadata in API responses
type TaskFileDTO struct {
	ID           uint64          `json:"id"`
	TaskID       uint64          `json:"task_id"`
	Filename     string          `json:"filename"`
	FileType     models.FileType `json:"file_type"`
	FileSize     int64           `json:"file_size"`
	Comment      string          `json:"comment,omitempty"`
	UploadedBy   *UserRefDTO     `json:"uploaded_by,omitempty"`
	UploadedByID *uint64         `json:"uploaded_by_id"`
	UploadedAt   time.Time       `json:"uploaded_at"`
}

// ToDesignRuleDTO converts a DesignRule model to DesignRuleDTO
func ToDesignRuleDTO(rule models.DesignRule) DesignRuleDTO {
	return DesignRuleDTO{
		ID:          rule.ID,
		ProjectID:   rule.ProjectID,
		Name:        rule.Name,
		Description: rule.Description,
		Category:    rule.Category,
		IsRequired:  rule.IsRequired,
		Order:       rule.Order,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		ProjectID:    task.ProjectID,
		TopicID:      task.TopicID,
		Status:       task.Status,
		Priority:     task.Priority,
		Price:        task.Price,
		DueDate:      task.DueDate,
		StartedAt:    task.StartedAt,
		CompletedAt:  task.CompletedAt,
		IsOverdue:    task.IsOverdue(),
		AssignedToID: task.AssignedToID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	if task.AssignedTo != nil && task.AssignedTo.ID != 0 {
		ref := ToUserRefDTO(*task.AssignedTo)
		dto.AssignedTo = &ref
	}
	if task.AssignedBy != nil && task.AssignedBy.ID != 0 {
		ref := ToUserRefDTO(*task.AssignedBy)
		dto.AssignedBy = &ref
	}
	if len(task.DesignRules) > 0 {
		dto.DesignRules = make([]DesignRuleDTO, len(task.DesignRules))
		for i, rule := range task.DesignRules {
			dto.DesignRules[i] = ToDesignRuleDTO(rule)
		}
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	dto := TaskListItemDTO{
		ID:           task.ID,
		Title:        task.Title,
		ProjectID:    task.ProjectID,
		Status:       task.Status,
		Priority:     task.Priority,
		Price:        task.Price,
		DueDate:      task.DueDate,
		IsOverdue:    task.IsOverdue(),
		AssignedToID: task.AssignedToID,
		CreatedAt:    task.CreatedAt,
	}

	if task.AssignedTo != nil && task.AssignedTo.ID != 0 {
		ref := ToUserRefDTO(*task.AssignedTo)
		dto.AssignedTo = &ref
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}
	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}
}

// ToTaskCommentDTO converts a TaskComment model to TaskCommentDTO.
// Replies are included one level deep when preloaded.
func ToTaskCommentDTO(comment models.TaskComment) TaskCommentDTO {
	dto := TaskCommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		Comment:   comment.Comment,
		ParentID:  comment.ParentID,
		IsReply:   comment.IsReply(),
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil && comment.User.ID != 0 {
		ref := ToUserRefDTO(*comment.User)
		dto.User = &ref
	}
	if len(comment.Replies) > 0 {
		dto.Replies = make([]TaskCommentDTO, len(comment.Replies))
		for i, reply := range comment.Replies {
			dto.Replies[i] = ToTaskCommentDTO(reply)
		}
	}
	return dto
}

// ToTaskFileDTO converts a TaskFile model to TaskFileDTO. The stored
// name on disk is never exposed.
func ToTaskFileDTO(file models.TaskFile) TaskFileDTO {
	dto := TaskFileDTO{
		ID:           file.ID,
		TaskID:       file.TaskID,
		Filename:     file.Filename,
		FileType:     file.FileType,
		FileSize:     file.FileSize,
		Comment:      file.Comment,
		UploadedByID: file.UploadedByID,
		UploadedAt:   file.UploadedAt,
	}
	if file.UploadedBy != nil && file.UploadedBy.ID != 0 {
		ref := ToUserRefDTO(*file.UploadedBy)
		dto.UploadedBy = &ref
	}
	return dto
}
