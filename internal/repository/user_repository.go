package repository

import (
	"github.com/AidanBoudreau/TimeLink/internal/database"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmployeeID finds a user by their external employee identifier
func (r *GormUserRepository) FindByEmployeeID(employeeID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("employee_id = ?", employeeID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users with pagination, newest first
func (r *GormUserRepository) List(page, pageSize int) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.Model(&models.User{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").
		Scopes(database.Paginate(page, pageSize)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// CountByRole returns the number of active users per role
func (r *GormUserRepository) CountByRole() (map[models.Role]int64, error) {
	type roleCount struct {
		Role  models.Role
		Count int64
	}

	var rows []roleCount
	err := r.db.Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Where("is_active = ?", true).
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Role]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
