package repository

import (
	"errors"

	"github.com/vannt010391/staff-management/internal/database"
	"github.com/vannt010391/staff-management/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCreateReview is returned when creating the review row fails inside the submit transaction.
	ErrCreateReview = errors.New("review repository: create review failed")
	// ErrCreateCriteria is returned when creating a criteria row fails inside the submit transaction.
	ErrCreateCriteria = errors.New("review repository: create criteria failed")
)

// GormReviewRepository is a GORM implementation of ReviewRepository
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &GormReviewRepository{db: db}
}

// CreateWithCriteria creates a review and all of its criteria atomically
func (r *GormReviewRepository) CreateWithCriteria(review *models.TaskReview, criteria []models.ReviewCriteria) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return errors.Join(ErrCreateReview, err)
		}

		for i := range criteria {
			criteria[i].ReviewID = review.ID
			if err := tx.Create(&criteria[i]).Error; err != nil {
				return errors.Join(ErrCreateCriteria, err)
			}
		}

		return nil
	})
}

// FindByID finds a review by ID with optional preloading
func (r *GormReviewRepository) FindByID(id uint64, preload ...string) (*models.TaskReview, error) {
	var review models.TaskReview
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&review, id).Error; err != nil {
		return nil, err
	}

	return &review, nil
}

// List retrieves reviews, optionally narrowed to one task
func (r *GormReviewRepository) List(taskID *uint64, page, pageSize int) ([]models.TaskReview, int64, error) {
	var reviews []models.TaskReview

	query := r.db.Model(&models.TaskReview{})
	if taskID != nil {
		query = query.Where("task_id = ?", *taskID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("reviewed_at DESC").Scopes(database.Paginate(page, pageSize))

	if err := listQuery.
		Preload("Reviewer").
		Preload("Criteria").
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// Update updates the review row. Criteria are never written here.
func (r *GormReviewRepository) Update(review *models.TaskReview) error {
	return r.db.Omit(clause.Associations).Save(review).Error
}

// Delete soft deletes a review and its criteria
func (r *GormReviewRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.ReviewCriteria{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TaskReview{}, id).Error
	})
}
