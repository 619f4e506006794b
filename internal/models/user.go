package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleTeamLead   Role = "team_lead"
	RoleStaff      Role = "staff"
	RoleFreelancer Role = "freelancer"
)

// ValidRole reports whether r is one of the five known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTeamLead, RoleStaff, RoleFreelancer:
		return true
	}
	return false
}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'freelancer'" json:"role"`
	IsSuperuser  bool           `gorm:"not null;default:false" json:"is_superuser"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	Phone        string         `gorm:"type:varchar(20)" json:"phone"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedTasks []Task         `gorm:"foreignKey:AssignedToID" json:"-"`
	Notifications []Notification `gorm:"foreignKey:RecipientID" json:"-"`
}
