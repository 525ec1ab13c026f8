package repository

import (
	"errors"
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/database"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateActiveEntry is returned when the partial unique index rejects
// a second active entry for the same user.
var ErrDuplicateActiveEntry = errors.New("time entry repository: user already has an active entry")

// GormTimeEntryRepository is a GORM implementation of TimeEntryRepository
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

// Create inserts a new time entry
func (r *GormTimeEntryRepository) Create(entry *models.TimeEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateActiveEntry
		}
		return err
	}
	return nil
}

// FindByID finds a time entry by ID with optional preloading
func (r *GormTimeEntryRepository) FindByID(id uint64, preload ...string) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&entry, id).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// FindByIDForUpdate re-reads an entry with its breaks inside the current
// transaction. On postgres the row is locked; sqlite serializes writers
// at the transaction level, so no explicit lock clause is needed there.
func (r *GormTimeEntryRepository) FindByIDForUpdate(id uint64) (*models.TimeEntry, error) {
	query := r.db
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var entry models.TimeEntry
	if err := query.First(&entry, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("time_entry_id = ?", id).Find(&entry.BreakEntries).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// FindActiveByUserID returns the user's currently active entry
func (r *GormTimeEntryRepository) FindActiveByUserID(userID uint64, preload ...string) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	query := r.db.Where("user_id = ? AND status = ?", userID, models.TimeEntryStatusActive)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// List retrieves time entries with filtering and pagination
func (r *GormTimeEntryRepository) List(filter TimeEntryFilter) ([]models.TimeEntry, int64, error) {
	var entries []models.TimeEntry

	query := r.db.Model(&models.TimeEntry{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("clock_in >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("clock_in < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("clock_in DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Preload("User").
		Preload("BreakEntries").
		Preload("TaskEntries").
		Preload("TaskEntries.Job").
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// ListClosedBetween returns closed and modified entries clocked in within [from, to)
func (r *GormTimeEntryRepository) ListClosedBetween(from, to time.Time) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	err := r.db.
		Preload("User").
		Where("status IN ?", []models.TimeEntryStatus{models.TimeEntryStatusClosed, models.TimeEntryStatusModified}).
		Where("clock_in >= ? AND clock_in < ?", from, to).
		Order("clock_in ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CountActive counts entries currently in the active state
func (r *GormTimeEntryRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.TimeEntry{}).
		Where("status = ?", models.TimeEntryStatusActive).
		Count(&count).Error
	return count, err
}

// Update persists changes to an entry
func (r *GormTimeEntryRepository) Update(entry *models.TimeEntry) error {
	return r.db.Save(entry).Error
}

// Delete removes an entry and cascades to its breaks and tasks
func (r *GormTimeEntryRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("time_entry_id = ?", id).Delete(&models.BreakEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("time_entry_id = ?", id).Delete(&models.TaskEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TimeEntry{}, id).Error
	})
}

// CreateBreak inserts a break entry
func (r *GormTimeEntryRepository) CreateBreak(b *models.BreakEntry) error {
	return r.db.Create(b).Error
}

// UpdateBreak persists changes to a break entry
func (r *GormTimeEntryRepository) UpdateBreak(b *models.BreakEntry) error {
	return r.db.Save(b).Error
}

// CreateTask inserts a task entry
func (r *GormTimeEntryRepository) CreateTask(t *models.TaskEntry) error {
	return r.db.Create(t).Error
}

// Transaction runs fn against a repository bound to one transaction
func (r *GormTimeEntryRepository) Transaction(fn func(TimeEntryRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormTimeEntryRepository{db: tx})
	})
}
