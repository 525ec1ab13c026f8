package repository

import (
	"github.com/AidanBoudreau/TimeLink/internal/database"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"gorm.io/gorm"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job
func (r *GormJobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

// FindByID finds a job by ID
func (r *GormJobRepository) FindByID(id uint64) (*models.Job, error) {
	var job models.Job
	if err := r.db.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByJobNumber finds a job by its unique job number
func (r *GormJobRepository) FindByJobNumber(number string) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("job_number = ?", number).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// List retrieves jobs, optionally filtered by status, with pagination
func (r *GormJobRepository) List(status *models.JobStatus, page, pageSize int) ([]models.Job, int64, error) {
	var jobs []models.Job

	query := r.db.Model(&models.Job{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("job_number ASC").
		Scopes(database.Paginate(page, pageSize)).
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// Update persists changes to a job
func (r *GormJobRepository) Update(job *models.Job) error {
	return r.db.Save(job).Error
}
