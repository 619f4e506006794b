package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vannt010391/staff-management/internal/database"
	apierrors "github.com/vannt010391/staff-management/internal/errors"
	"github.com/vannt010391/staff-management/internal/models"
)

// DepartmentHandler exposes department CRUD endpoints.
type DepartmentHandler struct{}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler() *DepartmentHandler {
	return &DepartmentHandler{}
}

// ListDepartments returns all departments with their managers.
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	var departments []models.Department
	if err := database.GetDB().Preload("Manager").Order("name").Find(&departments).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch departments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// GetDepartment returns one department by ID.
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid department ID")
		return
	}

	var department models.Department
	if err := database.GetDB().Preload("Manager").First(&department, id).Error; err != nil {
		apierrors.NotFound(c, "department not found")
		return
	}

	c.JSON(http.StatusOK, department)
}

// CreateDepartment creates a department.
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	type CreateDepartmentRequest struct {
		Name        string  `json:"name" binding:"required,max=200"`
		Description string  `json:"description"`
		ManagerID   *uint64 `json:"manager_id"`
	}

	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.ManagerID != nil {
		var manager models.User
		if err := database.GetDB().First(&manager, *req.ManagerID).Error; err != nil {
			apierrors.BadRequest(c, "manager not found")
			return
		}
	}

	department := models.Department{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
	}
	if err := database.GetDB().Create(&department).Error; err != nil {
		apierrors.Conflict(c, "Failed to create department")
		return
	}

	c.JSON(http.StatusCreated, department)
}

// UpdateDepartment edits a department.
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	type UpdateDepartmentRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ManagerID   *uint64 `json:"manager_id"`
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid department ID")
		return
	}

	var department models.Department
	if err := database.GetDB().First(&department, id).Error; err != nil {
		apierrors.NotFound(c, "department not found")
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		department.Name = *req.Name
	}
	if req.Description != nil {
		department.Description = *req.Description
	}
	if req.ManagerID != nil {
		var manager models.User
		if err := database.GetDB().First(&manager, *req.ManagerID).Error; err != nil {
			apierrors.BadRequest(c, "manager not found")
			return
		}
		department.ManagerID = req.ManagerID
	}

	if err := database.GetDB().Save(&department).Error; err != nil {
		apierrors.InternalError(c, "Failed to update department")
		return
	}

	c.JSON(http.StatusOK, department)
}

// DeleteDepartment removes a department.
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid department ID")
		return
	}

	var department models.Department
	if err := database.GetDB().First(&department, id).Error; err != nil {
		apierrors.NotFound(c, "department not found")
		return
	}

	if err := database.GetDB().Delete(&department).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete department")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Department deleted successfully",
	})
}
