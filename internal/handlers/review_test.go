package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vannt010391/staff-management/internal/database"
	"github.com/vannt010391/staff-management/internal/dto"
	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/repository"
	"github.com/vannt010391/staff-management/internal/services"
)

type reviewTestEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	manager *models.User
	task    *models.Task
	rules   []*models.DesignRule
}

func setupReviewTestEnv(t *testing.T) *reviewTestEnv {
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
		&models.Project{},
		&models.DesignRule{},
		&models.Task{},
		&models.TaskComment{},
		&models.TaskFile{},
		&models.TaskReview{},
		&models.ReviewCriteria{},
		&models.Notification{},
	))
	database.SetDB(db)

	logger := zap.NewNop()
	taskRepo := repository.NewTaskRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	notifier := services.NewDBNotifier(notificationRepo, nil, logger)
	reviewService := services.NewReviewService(reviewRepo, taskRepo, notifier, logger)
	handler := NewReviewHandler(reviewService)

	manager := &models.User{
		Username:     "manager",
		PasswordHash: "hashedpassword",
		Role:         models.RoleManager,
		IsActive:     true,
	}
	require.NoError(t, db.Create(manager).Error)

	project := &models.Project{Name: "Site redesign", Status: models.ProjectStatusActive}
	require.NoError(t, db.Create(project).Error)

	task := &models.Task{
		Title:     "Landing page",
		ProjectID: project.ID,
		Status:    models.TaskStatusReviewPending,
		Priority:  models.TaskPriorityMedium,
	}
	require.NoError(t, db.Create(task).Error)

	rules := make([]*models.DesignRule, 4)
	for i := range rules {
		rules[i] = &models.DesignRule{
			ProjectID:   project.ID,
			Name:        "rule",
			Description: "desc",
			Category:    models.RuleCategoryLayout,
		}
		require.NoError(t, db.Create(rules[i]).Error)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	reviews := r.Group("/api/reviews")
	reviews.Use(asUser(manager))
	{
		reviews.GET("/:id", handler.GetReview)
		reviews.POST("", handler.CreateReview)
	}

	return &reviewTestEnv{db: db, router: r, manager: manager, task: task, rules: rules}
}

func (env *reviewTestEnv) post(t *testing.T, payload any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestCreateReview_EmptyCriteriaRejected(t *testing.T) {
	env := setupReviewTestEnv(t)

	w := env.post(t, gin.H{
		"task_id":        env.task.ID,
		"overall_status": "approved",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "At least one criterion is required")

	var count int64
	require.NoError(t, env.db.Model(&models.TaskReview{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateReview_ComputesPercentage(t *testing.T) {
	env := setupReviewTestEnv(t)

	criteria := make([]gin.H, 4)
	for i, rule := range env.rules {
		criteria[i] = gin.H{"design_rule_id": rule.ID, "is_met": i < 3}
	}

	w := env.post(t, gin.H{
		"task_id":        env.task.ID,
		"overall_status": "needs_revision",
		"comment":        "almost there",
		"criteria":       criteria,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var response dto.ReviewDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 4, response.TotalCriteria)
	require.Equal(t, 3, response.MetCriteria)
	require.InDelta(t, 75.0, response.CriteriaPercentage, 0.001)

	// needs_revision never moves the task
	var reloaded models.Task
	require.NoError(t, env.db.First(&reloaded, env.task.ID).Error)
	require.Equal(t, models.TaskStatusReviewPending, reloaded.Status)
}
