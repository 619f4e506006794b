package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vannt010391/staff-management/internal/database"
	apierrors "github.com/vannt010391/staff-management/internal/errors"
	"github.com/vannt010391/staff-management/internal/models"
)

// TopicHandler exposes topic CRUD endpoints.
type TopicHandler struct{}

// NewTopicHandler creates a new TopicHandler.
func NewTopicHandler() *TopicHandler {
	return &TopicHandler{}
}

// ListTopics returns the topics of a project in display order.
func (h *TopicHandler) ListTopics(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid project ID")
		return
	}

	var topics []models.Topic
	if err := database.GetDB().
		Where("project_id = ?", projectID).
		Order("topics.order").
		Find(&topics).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch topics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// CreateTopic creates a topic in a project. Topic names are unique per
// project.
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	type CreateTopicRequest struct {
		Name        string `json:"name" binding:"required,max=200"`
		Description string `json:"description"`
		Order       int    `json:"order"`
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

	var req CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	topic := models.Topic{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := database.GetDB().Create(&topic).Error; err != nil {
		apierrors.Conflict(c, "topic name already exists in this project")
		return
	}

	c.JSON(http.StatusCreated, topic)
}

// UpdateTopic edits a topic.
func (h *TopicHandler) UpdateTopic(c *gin.Context) {
	type UpdateTopicRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Order       *int    `json:"order"`
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid topic ID")
		return
	}

	var topic models.Topic
	if err := database.GetDB().First(&topic, id).Error; err != nil {
		apierrors.NotFound(c, "topic not found")
		return
	}

	var req UpdateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		topic.Name = *req.Name
	}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.Order != nil {
		topic.Order = *req.Order
	}

	if err := database.GetDB().Save(&topic).Error; err != nil {
		apierrors.Conflict(c, "Failed to update topic")
		return
	}

	c.JSON(http.StatusOK, topic)
}

// DeleteTopic removes a topic. Tasks pointing at it keep their project
// but lose the topic reference.
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid topic ID")
		return
	}

	var topic models.Topic
	if err := database.GetDB().First(&topic, id).Error; err != nil {
		apierrors.NotFound(c, "topic not found")
		return
	}

	if err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("topic_id = ?", id).
			Update("topic_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&topic).Error
	}); err != nil {
		apierrors.InternalError(c, "Failed to delete topic")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Topic deleted successfully",
	})
}

// ReorderTopics applies a new display order to a project's topics.
func (h *TopicHandler) ReorderTopics(c *gin.Context) {
	type ReorderRequest struct {
		TopicIDs []uint64 `json:"topic_ids" binding:"required,min=1"`
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
		for i, topicID := range req.TopicIDs {
			if err := tx.Model(&models.Topic{}).
				Where("id = ? AND project_id = ?", topicID, projectID).
				Update("order", i).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		apierrors.InternalError(c, "Failed to reorder topics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Topics reordered successfully",
	})
}
