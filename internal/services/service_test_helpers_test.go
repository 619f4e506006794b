package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vannt010391/staff-management/internal/database"
	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/repository"
)

type serviceTestEnv struct {
	db                  *gorm.DB
	taskService         *TaskService
	reviewService       *ReviewService
	notificationService *NotificationService
	notificationRepo    repository.NotificationRepository
	notifier            Notifier
}

func newServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Project{},
		&models.Topic{},
		&models.DesignRule{},
		&models.Task{},
		&models.TaskFile{},
		&models.TaskComment{},
		&models.TaskReview{},
		&models.ReviewCriteria{},
		&models.Notification{},
	))
	database.SetDB(db)

	logger := zap.NewNop()
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	notifier := NewDBNotifier(notificationRepo, nil, logger)

	return &serviceTestEnv{
		db:                  db,
		taskService:         NewTaskService(taskRepo, userRepo, notifier, logger),
		reviewService:       NewReviewService(reviewRepo, taskRepo, notifier, logger),
		notificationService: NewNotificationService(notificationRepo, nil),
		notificationRepo:    notificationRepo,
		notifier:            notifier,
	}
}

func (env *serviceTestEnv) createUser(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *serviceTestEnv) createProject(t *testing.T, name string) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:   name,
		Status: models.ProjectStatusActive,
	}
	require.NoError(t, env.db.Create(project).Error)
	return project
}

func (env *serviceTestEnv) createTask(t *testing.T, projectID uint64, title string, status models.TaskStatus) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:     title,
		ProjectID: projectID,
		Status:    status,
		Priority:  models.TaskPriorityMedium,
	}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

func (env *serviceTestEnv) createDesignRule(t *testing.T, projectID uint64, name string) *models.DesignRule {
	t.Helper()
	rule := &models.DesignRule{
		ProjectID:   projectID,
		Name:        name,
		Description: "rule description",
		Category:    models.RuleCategoryLayout,
		IsRequired:  true,
	}
	require.NoError(t, env.db.Create(rule).Error)
	return rule
}
