package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vannt010391/staff-management/internal/constants"
	"github.com/vannt010391/staff-management/internal/database"
	"github.com/vannt010391/staff-management/internal/dto"
	"github.com/vannt010391/staff-management/internal/middleware"
	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/policy"
	"github.com/vannt010391/staff-management/internal/repository"
	"github.com/vannt010391/staff-management/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Topic{},
		&models.DesignRule{},
		&models.Task{},
		&models.TaskComment{},
		&models.TaskFile{},
		&models.TaskReview{},
		&models.ReviewCriteria{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	logger := zap.NewNop()
	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	notificationRepo := repository.NewNotificationRepository(suite.db)
	notifier := services.NewDBNotifier(notificationRepo, nil, logger)
	taskService := services.NewTaskService(taskRepo, userRepo, notifier, logger)
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(username string, role models.Role) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestProject(name string) *models.Project {
	project := &models.Project{
		Name:   name,
		Status: models.ProjectStatusActive,
	}
	suite.db.Create(project)
	return project
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, projectID uint64, status models.TaskStatus) *models.Task {
	task := &models.Task{
		Title:     title,
		ProjectID: projectID,
		Status:    status,
		Priority:  models.TaskPriorityMedium,
	}
	suite.db.Create(task)
	return task
}

// asUser fakes an authenticated session for the given user.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

func (suite *TaskHandlerTestSuite) newRouter(user *models.User) *gin.Engine {
	r := gin.New()
	tasks := r.Group("/api/tasks")
	tasks.Use(asUser(user))
	{
		tasks.GET("", suite.handler.ListTasks)
		tasks.POST("", middleware.RequirePolicy(policy.ActionCreateTask), suite.handler.CreateTask)
		tasks.GET("/:id", suite.handler.GetTask)
		tasks.PATCH("/:id", suite.handler.UpdateTask)
		tasks.DELETE("/:id", middleware.RequirePolicy(policy.ActionDeleteTask), suite.handler.DeleteTask)
		tasks.POST("/:id/assign", middleware.RequirePolicy(policy.ActionAssignTask), suite.handler.AssignTask)
		tasks.POST("/:id/status", suite.handler.ChangeStatus)
	}
	return r
}

func (suite *TaskHandlerTestSuite) doJSON(r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	manager := suite.createTestUser("manager", models.RoleManager)
	project := suite.createTestProject("Site redesign")
	r := suite.newRouter(manager)

	w := suite.doJSON(r, http.MethodPost, "/api/tasks", gin.H{
		"project_id": project.ID,
		"title":      "Landing page",
		"price":      150.0,
		"priority":   "high",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Landing page", response.Title)
	suite.Equal(models.TaskStatusNew, response.Status)
	suite.Equal(models.TaskPriorityHigh, response.Priority)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_FreelancerForbidden() {
	freelancer := suite.createTestUser("freelancer", models.RoleFreelancer)
	project := suite.createTestProject("Site redesign")
	r := suite.newRouter(freelancer)

	w := suite.doJSON(r, http.MethodPost, "/api/tasks", gin.H{
		"project_id": project.ID,
		"title":      "Sneaky task",
	})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_ManagerForbidden() {
	manager := suite.createTestUser("manager", models.RoleManager)
	project := suite.createTestProject("Site redesign")
	task := suite.createTestTask("Landing page", project.ID, models.TaskStatusNew)
	r := suite.newRouter(manager)

	w := suite.doJSON(r, http.MethodDelete, "/api/tasks/"+itoa(task.ID), nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestAssignTask_NonFreelancerRejected() {
	manager := suite.createTestUser("manager", models.RoleManager)
	staff := suite.createTestUser("staff", models.RoleStaff)
	project := suite.createTestProject("Site redesign")
	task := suite.createTestTask("Landing page", project.ID, models.TaskStatusNew)
	r := suite.newRouter(manager)

	w := suite.doJSON(r, http.MethodPost, "/api/tasks/"+itoa(task.ID)+"/assign", gin.H{
		"assignee_id": staff.ID,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Can only assign tasks to freelancers")
}

func (suite *TaskHandlerTestSuite) TestAssignTask_ResetsStatus() {
	manager := suite.createTestUser("manager", models.RoleManager)
	freelancer := suite.createTestUser("freelancer", models.RoleFreelancer)
	project := suite.createTestProject("Site redesign")
	task := suite.createTestTask("Landing page", project.ID, models.TaskStatusWorking)
	r := suite.newRouter(manager)

	w := suite.doJSON(r, http.MethodPost, "/api/tasks/"+itoa(task.ID)+"/assign", gin.H{
		"assignee_id": freelancer.ID,
	})

	suite.Equal(http.StatusOK, w.Code)
	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(models.TaskStatusAssigned, response.Status)
	suite.Equal(freelancer.ID, *response.AssignedToID)
}

func (suite *TaskHandlerTestSuite) TestChangeStatus_InvalidStatus() {
	manager := suite.createTestUser("manager", models.RoleManager)
	project := suite.createTestProject("Site redesign")
	task := suite.createTestTask("Landing page", project.ID, models.TaskStatusNew)
	r := suite.newRouter(manager)

	w := suite.doJSON(r, http.MethodPost, "/api/tasks/"+itoa(task.ID)+"/status", gin.H{
		"status": "bogus",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask_FreelancerCannotSeeOthers() {
	freelancer := suite.createTestUser("freelancer", models.RoleFreelancer)
	other := suite.createTestUser("other", models.RoleFreelancer)
	project := suite.createTestProject("Site redesign")
	task := suite.createTestTask("Landing page", project.ID, models.TaskStatusAssigned)
	task.AssignedToID = &other.ID
	suite.db.Save(task)
	r := suite.newRouter(freelancer)

	w := suite.doJSON(r, http.MethodGet, "/api/tasks/"+itoa(task.ID), nil)

	// 404, not 403: existence must not leak
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_FreelancerScope() {
	freelancer := suite.createTestUser("freelancer", models.RoleFreelancer)
	project := suite.createTestProject("Site redesign")
	mine := suite.createTestTask("Mine", project.ID, models.TaskStatusAssigned)
	mine.AssignedToID = &freelancer.ID
	suite.db.Save(mine)
	suite.createTestTask("Not mine", project.ID, models.TaskStatusNew)
	r := suite.newRouter(freelancer)

	w := suite.doJSON(r, http.MethodGet, "/api/tasks", nil)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.TaskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.EqualValues(1, response.TotalCount)
	suite.Equal("Mine", response.Tasks[0].Title)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
