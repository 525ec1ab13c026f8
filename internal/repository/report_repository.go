package repository

import (
	"github.com/AidanBoudreau/TimeLink/internal/database"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"gorm.io/gorm"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

// Create stores a generated report snapshot
func (r *GormReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

// FindByID finds a report by ID
func (r *GormReportRepository) FindByID(id uint64) (*models.Report, error) {
	var report models.Report
	if err := r.db.Preload("Generator").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// List retrieves reports newest-first with pagination
func (r *GormReportRepository) List(page, pageSize int) ([]models.Report, int64, error) {
	var reports []models.Report

	query := r.db.Model(&models.Report{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").
		Preload("Generator").
		Scopes(database.Paginate(page, pageSize)).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}
