package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrJobNumberRequired = errors.New("job number is required")
	ErrJobNameRequired   = errors.New("job name is required")
	ErrJobNumberTaken    = errors.New("job number already exists")
	ErrInvalidJobStatus  = errors.New("unknown job status")
)

// JobService handles job management.
type JobService struct {
	jobRepo repository.JobRepository
}

// NewJobService creates a new JobService
func NewJobService(jobRepo repository.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// CreateJobInput holds the fields for creating a job.
type CreateJobInput struct {
	JobNumber   string
	JobName     string
	Description string
	CreatedBy   uint64
}

// CreateJob registers a new job.
func (s *JobService) CreateJob(input CreateJobInput) (*models.Job, error) {
	number := strings.TrimSpace(input.JobNumber)
	if number == "" {
		return nil, ErrJobNumberRequired
	}
	if strings.TrimSpace(input.JobName) == "" {
		return nil, ErrJobNameRequired
	}

	if _, err := s.jobRepo.FindByJobNumber(number); err == nil {
		return nil, ErrJobNumberTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check job number: %w", err)
	}

	job := &models.Job{
		JobNumber:   number,
		JobName:     input.JobName,
		Description: input.Description,
		Status:      models.JobStatusActive,
		CreatedBy:   input.CreatedBy,
	}

	if err := s.jobRepo.Create(job); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrJobNumberTaken
		}
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job, nil
}

// UpdateJobInput holds the optional fields for amending a job.
type UpdateJobInput struct {
	JobName     *string
	Description *string
	Status      *models.JobStatus
}

// UpdateJob amends an existing job.
func (s *JobService) UpdateJob(id uint64, input UpdateJobInput) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	if input.JobName != nil {
		if strings.TrimSpace(*input.JobName) == "" {
			return nil, ErrJobNameRequired
		}
		job.JobName = *input.JobName
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Status != nil {
		switch *input.Status {
		case models.JobStatusActive, models.JobStatusCompleted, models.JobStatusOnHold:
		default:
			return nil, ErrInvalidJobStatus
		}
		job.Status = *input.Status
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return job, nil
}

// GetJob returns a job by ID.
func (s *JobService) GetJob(id uint64) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return job, nil
}

// ListJobs returns jobs, optionally filtered by status, with pagination.
func (s *JobService) ListJobs(status *models.JobStatus, page, pageSize int) ([]models.Job, int64, error) {
	jobs, total, err := s.jobRepo.List(status, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, total, nil
}
