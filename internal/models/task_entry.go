package models

import "time"

type TaskEntry struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	TimeEntryID   uint64    `gorm:"not null;index" json:"time_entry_id"`
	JobID         uint64    `gorm:"not null;index" json:"job_id"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	MaterialsUsed string    `gorm:"type:text" json:"materials_used,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	// Relations
	TimeEntry TimeEntry `gorm:"foreignKey:TimeEntryID" json:"-"`
	Job       Job       `gorm:"foreignKey:JobID" json:"job,omitempty"`
}
