package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vannt010391/staff-management/internal/constants"
	"github.com/vannt010391/staff-management/internal/database"
	"github.com/vannt010391/staff-management/internal/dto"
	apierrors "github.com/vannt010391/staff-management/internal/errors"
	"github.com/vannt010391/staff-management/internal/middleware"
	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/policy"
	"github.com/vannt010391/staff-management/internal/services"
	"github.com/vannt010391/staff-management/internal/utils"
)

// TaskFileHandler exposes task file upload and metadata endpoints.
// Files are stored on local disk under uploadDir with randomized names.
type TaskFileHandler struct {
	uploadDir string
	notifier  services.Notifier
	logger    *zap.Logger
}

// NewTaskFileHandler creates a new TaskFileHandler.
func NewTaskFileHandler(uploadDir string, notifier services.Notifier, logger *zap.Logger) *TaskFileHandler {
	return &TaskFileHandler{
		uploadDir: uploadDir,
		notifier:  notifier,
		logger:    logger,
	}
}

func validFileType(t models.FileType) bool {
	switch t {
	case models.FileTypeReference, models.FileTypeSubmission, models.FileTypeRevision, models.FileTypeOther:
		return true
	}
	return false
}

// ListFiles returns a task's file metadata.
func (h *TaskFileHandler) ListFiles(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "task not loaded")
		return
	}

	var files []models.TaskFile
	if err := database.GetDB().
		Where("task_id = ?", task.ID).
		Preload("UploadedBy").
		Order("uploaded_at DESC").
		Find(&files).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch files")
		return
	}

	items := make([]dto.TaskFileDTO, len(files))
	for i, file := range files {
		items[i] = dto.ToTaskFileDTO(file)
	}
	c.JSON(http.StatusOK, gin.H{"files": items})
}

// UploadFile stores an uploaded file and records its metadata.
func (h *TaskFileHandler) UploadFile(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "task not loaded")
		return
	}
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > constants.MaxUploadSize {
		apierrors.BadRequest(c, "file too large")
		return
	}

	fileType := models.FileType(c.PostForm("file_type"))
	if fileType == "" {
		fileType = models.FileTypeOther
	}
	if !validFileType(fileType) {
		apierrors.BadRequest(c, "invalid file type")
		return
	}

	storedName := utils.RandomFileName(fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(h.uploadDir, storedName)); err != nil {
		h.logger.Error("failed to store uploaded file",
			zap.Uint64("task_id", task.ID),
			zap.Error(err))
		apierrors.InternalError(c, "Failed to store file")
		return
	}

	file := models.TaskFile{
		TaskID:       task.ID,
		UploadedByID: &user.ID,
		FileType:     fileType,
		Filename:     filepath.Base(fileHeader.Filename),
		StoredName:   storedName,
		FileSize:     fileHeader.Size,
		Comment:      c.PostForm("comment"),
	}
	if err := database.GetDB().Create(&file).Error; err != nil {
		os.Remove(filepath.Join(h.uploadDir, storedName))
		apierrors.InternalError(c, "Failed to record file")
		return
	}

	if task.AssignedToID != nil && *task.AssignedToID != user.ID {
		h.notifier.Notify(c.Request.Context(), *task.AssignedToID, models.NotificationFileUploaded,
			"File uploaded",
			fmt.Sprintf("A file was uploaded to task %q", task.Title),
			&task.ID)
	}

	c.JSON(http.StatusCreated, dto.ToTaskFileDTO(file))
}

// DownloadFile streams a stored file back under its original name.
func (h *TaskFileHandler) DownloadFile(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "task not loaded")
		return
	}

	fileID, err := strconv.ParseUint(c.Param("file_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid file ID")
		return
	}

	var file models.TaskFile
	if err := database.GetDB().
		Where("id = ? AND task_id = ?", fileID, task.ID).
		First(&file).Error; err != nil {
		apierrors.NotFound(c, "file not found")
		return
	}

	c.FileAttachment(filepath.Join(h.uploadDir, file.StoredName), file.Filename)
}

// DeleteFile removes file metadata and the stored file. Only the
// uploader, an admin, or a manager may delete it.
func (h *TaskFileHandler) DeleteFile(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "task not loaded")
		return
	}
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	fileID, err := strconv.ParseUint(c.Param("file_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "invalid file ID")
		return
	}

	var file models.TaskFile
	if err := database.GetDB().
		Where("id = ? AND task_id = ?", fileID, task.ID).
		First(&file).Error; err != nil {
		apierrors.NotFound(c, "file not found")
		return
	}

	if !policy.CanTouch(user, &file, nil) {
		apierrors.Forbidden(c, "")
		return
	}

	if err := database.GetDB().Delete(&file).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete file")
		return
	}

	if err := os.Remove(filepath.Join(h.uploadDir, file.StoredName)); err != nil && !os.IsNotExist(err) {
		h.logger.Warn("failed to remove stored file",
			zap.String("stored_name", file.StoredName),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted successfully",
	})
}
