package models

import "time"

type BreakEntry struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	TimeEntryID uint64     `gorm:"not null;index" json:"time_entry_id"`
	BreakStart  time.Time  `gorm:"not null" json:"break_start"`
	BreakEnd    *time.Time `json:"break_end"`
	Duration    *int       `json:"duration"`
	CreatedAt   time.Time  `json:"created_at"`

	TimeEntry TimeEntry `gorm:"foreignKey:TimeEntryID" json:"-"`
}

// ComputeDuration derives the break length in whole minutes. Partial
// minutes are truncated, not rounded, so they are never credited.
// Returns false while the break is still open.
func (b *BreakEntry) ComputeDuration() (int, bool) {
	if b.BreakEnd == nil {
		return 0, false
	}
	return int(b.BreakEnd.Sub(b.BreakStart).Seconds() / 60), true
}
