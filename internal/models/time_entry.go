package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type TimeEntryStatus string

const (
	TimeEntryStatusActive   TimeEntryStatus = "active"
	TimeEntryStatusClosed   TimeEntryStatus = "closed"
	TimeEntryStatusModified TimeEntryStatus = "modified"
)

type TimeEntry struct {
	ID                 uint64          `gorm:"primarykey" json:"id"`
	UserID             uint64          `gorm:"not null;index" json:"user_id"`
	ClockIn            time.Time       `gorm:"not null" json:"clock_in"`
	ClockOut           *time.Time      `json:"clock_out"`
	BreakDuration      int             `gorm:"not null;default:0" json:"break_duration"`
	TotalHours         *float64        `json:"total_hours"`
	Status             TimeEntryStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	ModifiedBy         *uint64         `json:"modified_by"`
	ModificationReason string          `gorm:"type:text" json:"modification_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Modifier     *User        `gorm:"foreignKey:ModifiedBy" json:"modifier,omitempty"`
	BreakEntries []BreakEntry `gorm:"foreignKey:TimeEntryID;constraint:OnDelete:CASCADE" json:"break_entries,omitempty"`
	TaskEntries  []TaskEntry  `gorm:"foreignKey:TimeEntryID;constraint:OnDelete:CASCADE" json:"task_entries,omitempty"`
}

// ComputeTotalHours derives the worked hours for a closed entry:
// elapsed wall-clock time minus accumulated break minutes, rounded to
// two decimal places. Returns false while the entry is still open; a
// partial total is never reported.
func (e *TimeEntry) ComputeTotalHours() (float64, bool) {
	if e.ClockOut == nil {
		return 0, false
	}
	elapsed := e.ClockOut.Sub(e.ClockIn).Seconds() / 3600
	breakHours := float64(e.BreakDuration) / 60
	return math.Round((elapsed-breakHours)*100) / 100, true
}

func (e *TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}

// OpenBreak returns the break entry that has not been ended yet, if any.
func (e *TimeEntry) OpenBreak() *BreakEntry {
	for i := range e.BreakEntries {
		if e.BreakEntries[i].BreakEnd == nil {
			return &e.BreakEntries[i]
		}
	}
	return nil
}

// SumBreakMinutes totals the durations of all closed child breaks.
// This is the source of truth for BreakDuration.
func (e *TimeEntry) SumBreakMinutes() int {
	total := 0
	for i := range e.BreakEntries {
		if d, ok := e.BreakEntries[i].ComputeDuration(); ok {
			total += d
		}
	}
	return total
}
