package models

import (
	"time"

	"gorm.io/gorm"
)

type Department struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ManagerID   *uint64        `json:"manager_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager *User `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}
