package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vannt010391/staff-management/internal/database"
	apierrors "github.com/vannt010391/staff-management/internal/errors"
	"github.com/vannt010391/staff-management/internal/middleware"
	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/services"
)

// ProjectHandler exposes project CRUD and per-project aggregates.
type ProjectHandler struct {
	taskService *services.TaskService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(taskService *services.TaskService) *ProjectHandler {
	return &ProjectHandler{
		taskService: taskService,
	}
}

func parseProjectID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid project ID")
		return 0, false
	}
	return id, true
}

// ListProjects returns all projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	query := database.GetDB().Preload("CreatedBy").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetProject returns one project with its topics and design rules.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var project models.Project
	if err := database.GetDB().
		Preload("CreatedBy").
		Preload("Topics", func(db *gorm.DB) *gorm.DB { return db.Order("topics.order") }).
		Preload("DesignRules", func(db *gorm.DB) *gorm.DB { return db.Order("design_rules.order") }).
		First(&project, id).Error; err != nil {
		apierrors.NotFound(c, "project not found")
		return
	}

	c.JSON(http.StatusOK, project)
}

// CreateProject creates a project.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string     `json:"name" binding:"required,max=200"`
		Description string     `json:"description"`
		ClientName  string     `json:"client_name"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)
	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		ClientName:  req.ClientName,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.ProjectStatusActive,
		CreatedByID: &userID,
	}

	if err := database.GetDB().Create(&project).Error; err != nil {
		apierrors.InternalError(c, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

// UpdateProject edits a project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	type UpdateProjectRequest struct {
		Name        *string               `json:"name"`
		Description *string               `json:"description"`
		ClientName  *string               `json:"client_name"`
		StartDate   *time.Time            `json:"start_date"`
		EndDate     *time.Time            `json:"end_date"`
		Status      *models.ProjectStatus `json:"status"`
	}

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var project models.Project
	if err := database.GetDB().First(&project, id).Error; err != nil {
		apierrors.NotFound(c, "project not found")
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.ClientName != nil {
		project.ClientName = *req.ClientName
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.Status != nil {
		switch *req.Status {
		case models.ProjectStatusActive, models.ProjectStatusCompleted, models.ProjectStatusArchived:
			project.Status = *req.Status
		default:
			apierrors.BadRequest(c, "invalid project status")
			return
		}
	}

	if err := database.GetDB().Save(&project).Error; err != nil {
		apierrors.InternalError(c, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var project models.Project
	if err := database.GetDB().First(&project, id).Error; err != nil {
		apierrors.NotFound(c, "project not found")
		return
	}

	if err := database.GetDB().Delete(&project).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// GetStatistics returns per-status task counts and the completion rate.
func (h *ProjectHandler) GetStatistics(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var project models.Project
	if err := database.GetDB().First(&project, id).Error; err != nil {
		apierrors.NotFound(c, "project not found")
		return
	}

	stats, err := h.taskService.Statistics(id)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}
