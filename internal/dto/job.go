package dto

import (
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/models"
)

// JobDTO represents a job in API responses
type JobDTO struct {
	ID          uint64           `json:"id"`
	JobNumber   string           `json:"job_number"`
	JobName     string           `json:"job_name"`
	Description string           `json:"description"`
	Status      models.JobStatus `json:"status"`
	CreatedBy   uint64           `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

// JobListResponse represents a paginated list of jobs
type JobListResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalCount int64    `json:"total_count"`
}

// ToJobDTO converts a Job model to JobDTO
func ToJobDTO(job models.Job) JobDTO {
	return JobDTO{
		ID:          job.ID,
		JobNumber:   job.JobNumber,
		JobName:     job.JobName,
		Description: job.Description,
		Status:      job.Status,
		CreatedBy:   job.CreatedBy,
		CreatedAt:   job.CreatedAt,
	}
}

// ToJobListResponse converts jobs to a paginated response
func ToJobListResponse(jobs []models.Job, page, pageSize int, total int64) JobListResponse {
	items := make([]JobDTO, len(jobs))
	for i, j := range jobs {
		items[i] = ToJobDTO(j)
	}
	return JobListResponse{
		Jobs:       items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}
}
