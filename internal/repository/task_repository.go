package repository

import (
	"github.com/vannt010391/staff-management/internal/database"
	"github.com/vannt010391/staff-management/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.TopicID != nil {
		query = query.Where("tasks.topic_id = ?", *filter.TopicID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.AssignedToID != nil {
		query = query.Where("tasks.assigned_to_id = ?", *filter.AssignedToID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.
		Preload("Project").
		Preload("AssignedTo").
		Preload("AssignedBy").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task. Associations are managed separately.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// SaveWithComment persists a task update and an audit comment atomically
func (r *GormTaskRepository) SaveWithComment(task *models.Task, comment *models.TaskComment) error {
	if comment == nil {
		return r.db.Omit(clause.Associations).Save(task).Error
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}

		comment.TaskID = task.ID
		return tx.Create(comment).Error
	})
}

// Delete soft deletes a task and its dependent rows
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskFile{}).Error; err != nil {
			return err
		}

		var reviewIDs []uint64
		if err := tx.Model(&models.TaskReview{}).
			Where("task_id = ?", id).
			Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}
		if len(reviewIDs) > 0 {
			if err := tx.Where("review_id IN ?", reviewIDs).Delete(&models.ReviewCriteria{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id = ?", id).Delete(&models.TaskReview{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// ReplaceDesignRules replaces the set of design rules attached to a task
func (r *GormTaskRepository) ReplaceDesignRules(task *models.Task, ruleIDs []uint64) error {
	var rules []models.DesignRule
	if len(ruleIDs) > 0 {
		if err := r.db.Where("id IN ?", ruleIDs).Find(&rules).Error; err != nil {
			return err
		}
	}
	return r.db.Model(task).Association("DesignRules").Replace(rules)
}

// CountByStatus returns per-status task counts for a project
func (r *GormTaskRepository) CountByStatus(projectID uint64) (map[models.TaskStatus]int64, error) {
	type row struct {
		Status models.TaskStatus
		Count  int64
	}

	var rows []row
	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Where("project_id = ?", projectID).
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		counts[s] = 0
	}
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}

	return counts, nil
}
