package models

import (
	"time"

	"gorm.io/gorm"
)

type JobStatus string

const (
	JobStatusActive    JobStatus = "active"
	JobStatusCompleted JobStatus = "completed"
	JobStatusOnHold    JobStatus = "on_hold"
)

type Job struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	JobNumber   string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"job_number"`
	JobName     string         `gorm:"type:varchar(200);not null" json:"job_name"`
	Description string         `gorm:"type:text" json:"description"`
	Status      JobStatus      `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedBy   uint64         `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator     User        `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	TaskEntries []TaskEntry `gorm:"foreignKey:JobID" json:"-"`
}
