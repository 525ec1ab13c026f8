package dto

import (
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/models"
)

// BreakEntryDTO represents a break in API responses
type BreakEntryDTO struct {
	ID         uint64     `json:"id"`
	BreakStart time.Time  `json:"break_start"`
	BreakEnd   *time.Time `json:"break_end"`
	Duration   *int       `json:"duration"`
}

// TaskEntryDTO represents a task entry in API responses
type TaskEntryDTO struct {
	ID            uint64    `json:"id"`
	JobID         uint64    `json:"job_id"`
	Job           *JobDTO   `json:"job,omitempty"`
	Description   string    `json:"description"`
	MaterialsUsed string    `json:"materials_used,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// TimeEntryDTO represents a time entry in API responses
type TimeEntryDTO struct {
	ID                 uint64                 `json:"id"`
	UserID             uint64                 `json:"user_id"`
	User               *UserDTO               `json:"user,omitempty"`
	ClockIn            time.Time              `json:"clock_in"`
	ClockOut           *time.Time             `json:"clock_out"`
	BreakDuration      int                    `json:"break_duration"`
	TotalHours         *float64               `json:"total_hours"`
	Status             models.TimeEntryStatus `json:"status"`
	ModifiedBy         *uint64                `json:"modified_by,omitempty"`
	ModificationReason string                 `json:"modification_reason,omitempty"`
	BreakEntries       []BreakEntryDTO        `json:"break_entries,omitempty"`
	TaskEntries        []TaskEntryDTO         `json:"task_entries,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
}

// TimeEntryListResponse represents a paginated list of time entries
type TimeEntryListResponse struct {
	Entries    []TimeEntryDTO `json:"entries"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
}

// ToBreakEntryDTO converts a BreakEntry model to BreakEntryDTO
func ToBreakEntryDTO(b models.BreakEntry) BreakEntryDTO {
	return BreakEntryDTO{
		ID:         b.ID,
		BreakStart: b.BreakStart,
		BreakEnd:   b.BreakEnd,
		Duration:   b.Duration,
	}
}

// ToTaskEntryDTO converts a TaskEntry model to TaskEntryDTO
func ToTaskEntryDTO(t models.TaskEntry) TaskEntryDTO {
	dto := TaskEntryDTO{
		ID:            t.ID,
		JobID:         t.JobID,
		Description:   t.Description,
		MaterialsUsed: t.MaterialsUsed,
		CreatedAt:     t.CreatedAt,
	}

	// Include job if preloaded
	if t.Job.ID != 0 {
		job := ToJobDTO(t.Job)
		dto.Job = &job
	}

	return dto
}

// ToTimeEntryDTO converts a TimeEntry model to TimeEntryDTO
func ToTimeEntryDTO(entry models.TimeEntry) TimeEntryDTO {
	dto := TimeEntryDTO{
		ID:                 entry.ID,
		UserID:             entry.UserID,
		ClockIn:            entry.ClockIn,
		ClockOut:           entry.ClockOut,
		BreakDuration:      entry.BreakDuration,
		TotalHours:         entry.TotalHours,
		Status:             entry.Status,
		ModifiedBy:         entry.ModifiedBy,
		ModificationReason: entry.ModificationReason,
		CreatedAt:          entry.CreatedAt,
	}

	// Include owner if preloaded
	if entry.User.ID != 0 {
		user := ToUserDTO(entry.User)
		dto.User = &user
	}

	if len(entry.BreakEntries) > 0 {
		dto.BreakEntries = make([]BreakEntryDTO, len(entry.BreakEntries))
		for i, b := range entry.BreakEntries {
			dto.BreakEntries[i] = ToBreakEntryDTO(b)
		}
	}

	if len(entry.TaskEntries) > 0 {
		dto.TaskEntries = make([]TaskEntryDTO, len(entry.TaskEntries))
		for i, t := range entry.TaskEntries {
			dto.TaskEntries[i] = ToTaskEntryDTO(t)
		}
	}

	return dto
}

// ToTimeEntryListResponse converts entries to a paginated response
func ToTimeEntryListResponse(entries []models.TimeEntry, page, pageSize int, total int64) TimeEntryListResponse {
	items := make([]TimeEntryDTO, len(entries))
	for i, e := range entries {
		items[i] = ToTimeEntryDTO(e)
	}
	return TimeEntryListResponse{
		Entries:    items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}
}
