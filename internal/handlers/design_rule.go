package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vannt010391/staff-management/internal/database"
	"github.com/vannt010391/staff-management/internal/dto"
	apierrors "github.com/vannt010391/staff-management/internal/errors"
	"github.com/vannt010391/staff-management/internal/models"
)

// DesignRuleHandler exposes design rule CRUD endpoints.
type DesignRuleHandler struct{}

// NewDesignRuleHandler creates a new DesignRuleHandler.
func NewDesignRuleHandler() *DesignRuleHandler {
	return &DesignRuleHandler{}
}

func validRuleCategory(cat models.RuleCategory) bool {
	switch cat {
	case models.RuleCategoryLayout, models.RuleCategoryTypography, models.RuleCategoryColor,
		models.RuleCategoryContent, models.RuleCategoryAnimation, models.RuleCategoryOther:
		return true
	}
	return false
}

// ListDesignRules returns the design rules of a project in display order.
func (h *DesignRuleHandler) ListDesignRules(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid project ID")
		return
	}

	query := database.GetDB().Where("project_id = ?", projectID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var rules []models.DesignRule
	if err := query.Order("design_rules.order").Find(&rules).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch design rules")
		return
	}

	items := make([]dto.DesignRuleDTO, len(rules))
	for i, rule := range rules {
		items[i] = dto.ToDesignRuleDTO(rule)
	}
	c.JSON(http.StatusOK, gin.H{"design_rules": items})
}

// CreateDesignRule creates a design rule in a project.
func (h *DesignRuleHandler) CreateDesignRule(c *gin.Context) {
	type CreateDesignRuleRequest struct {
		Name        string              `json:"name" binding:"required,max=200"`
		Description string              `json:"description" binding:"required"`
		Category    models.RuleCategory `json:"category"`
		IsRequired  *bool               `json:"is_required"`
		Order       int                 `json:"order"`
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid project ID")
		return
	}

	var project models.Project
	if err := database.GetDB().First(&project, projectID).Error; err != nil {
		apierrors.NotFound(c, "project not found")
		return
	}

	var req CreateDesignRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category := req.Category
	if category == "" {
		category = models.RuleCategoryOther
	}
	if !validRuleCategory(category) {
		apierrors.BadRequest(c, "invalid rule category")
		return
	}

	rule := models.DesignRule{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		IsRequired:  true,
		Order:       req.Order,
	}
	if req.IsRequired != nil {
		rule.IsRequired = *req.IsRequired
	}

	if err := database.GetDB().Create(&rule).Error; err != nil {
		apierrors.InternalError(c, "Failed to create design rule")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDesignRuleDTO(rule))
}

// UpdateDesignRule edits a design rule.
func (h *DesignRuleHandler) UpdateDesignRule(c *gin.Context) {
	type UpdateDesignRuleRequest struct {
		Name        *string              `json:"name"`
		Description *string              `json:"description"`
		Category    *models.RuleCategory `json:"category"`
		IsRequired  *bool                `json:"is_required"`
		Order       *int                 `json:"order"`
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid design rule ID")
		return
	}

	var rule models.DesignRule
	if err := database.GetDB().First(&rule, id).Error; err != nil {
		apierrors.NotFound(c, "design rule not found")
		return
	}

	var req UpdateDesignRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Description != nil {
		rule.Description = *req.Description
	}
	if req.Category != nil {
		if !validRuleCategory(*req.Category) {
			apierrors.BadRequest(c, "invalid rule category")
			return
		}
		rule.Category = *req.Category
	}
	if req.IsRequired != nil {
		rule.IsRequired = *req.IsRequired
	}
	if req.Order != nil {
		rule.Order = *req.Order
	}

	if err := database.GetDB().Save(&rule).Error; err != nil {
		apierrors.InternalError(c, "Failed to update design rule")
		return
	}

	c.JSON(http.StatusOK, dto.ToDesignRuleDTO(rule))
}

// DeleteDesignRule removes a design rule.
func (h *DesignRuleHandler) DeleteDesignRule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid design rule ID")
		return
	}

	var rule models.DesignRule
	if err := database.GetDB().First(&rule, id).Error; err != nil {
		apierrors.NotFound(c, "design rule not found")
		return
	}

	if err := database.GetDB().Delete(&rule).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete design rule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Design rule deleted successfully",
	})
}

// ReorderDesignRules applies a new display order to a project's rules.
func (h *DesignRuleHandler) ReorderDesignRules(c *gin.Context) {
	type ReorderRequest struct {
		RuleIDs []uint64 `json:"rule_ids" binding:"required,min=1"`
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid project ID")
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		for i, ruleID := range req.RuleIDs {
			if err := tx.Model(&models.DesignRule{}).
				Where("id = ? AND project_id = ?", ruleID, projectID).
				Update("order", i).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		apierrors.InternalError(c, "Failed to reorder design rules")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Design rules reordered successfully",
	})
}
