package models

import "time"

// Report is an immutable snapshot of an aggregation run. Regenerating a
// report over the same range inserts a new row rather than mutating an
// existing one.
type Report struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ReportType  string    `gorm:"type:varchar(50);not null" json:"report_type"`
	GeneratedBy uint64    `gorm:"not null" json:"generated_by"`
	DateFrom    time.Time `gorm:"type:date;not null" json:"date_from"`
	DateTo      time.Time `gorm:"type:date;not null" json:"date_to"`
	ReportData  string    `gorm:"type:text" json:"report_data"`
	CreatedAt   time.Time `json:"created_at"`

	Generator User `gorm:"foreignKey:GeneratedBy" json:"generator,omitempty"`
}
