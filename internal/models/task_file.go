package models

import (
	"time"

	"gorm.io/gorm"
)

type FileType string

const (
	FileTypeReference  FileType = "reference"
	FileTypeSubmission FileType = "submission"
	FileTypeRevision   FileType = "revision"
	FileTypeOther      FileType = "other"
)

type TaskFile struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	TaskID       uint64         `gorm:"not null;index" json:"task_id"`
	UploadedByID *uint64        `json:"uploaded_by_id"`
	FileType     FileType       `gorm:"type:varchar(20);not null;default:'other'" json:"file_type"`
	Filename     string         `gorm:"type:varchar(255);not null" json:"filename"`
	StoredName   string         `gorm:"type:varchar(255);not null" json:"-"`
	FileSize     int64          `gorm:"not null" json:"file_size"`
	Comment      string         `gorm:"type:text" json:"comment"`
	UploadedAt   time.Time      `gorm:"autoCreateTime" json:"uploaded_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task       Task  `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	UploadedBy *User `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

// OwnerID returns the uploader for ownership checks.
func (f *TaskFile) OwnerID() *uint64 {
	return f.UploadedByID
}
