package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	EmployeeID   string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"employee_id"`
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`
	Email        *string        `gorm:"type:varchar(120);uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	TimeEntries []TimeEntry `gorm:"foreignKey:UserID" json:"-"`
	CreatedJobs []Job       `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanCorrectEntries reports whether the user may amend other users' time entries.
func (u *User) CanCorrectEntries() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
