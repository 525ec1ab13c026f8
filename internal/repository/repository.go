package repository

import (
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/models"
)

// TimeEntryRepository defines the interface for time entry data access
type TimeEntryRepository interface {
	// Create inserts a new time entry. A second active entry for the same
	// user fails with ErrDuplicateActiveEntry (storage-level guard).
	Create(entry *models.TimeEntry) error

	// FindByID finds a time entry by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.TimeEntry, error)

	// FindByIDForUpdate re-reads an entry inside the current transaction,
	// taking a row lock on dialects that support it.
	FindByIDForUpdate(id uint64) (*models.TimeEntry, error)

	// FindActiveByUserID returns the user's currently active entry
	FindActiveByUserID(userID uint64, preload ...string) (*models.TimeEntry, error)

	// List retrieves time entries with filtering and pagination
	List(filter TimeEntryFilter) ([]models.TimeEntry, int64, error)

	// ListClosedBetween returns closed/modified entries whose clock-in falls
	// inside [from, to), with the owning user preloaded.
	ListClosedBetween(from, to time.Time) ([]models.TimeEntry, error)

	// CountActive counts entries currently in the active state
	CountActive() (int64, error)

	// Update persists changes to an entry
	Update(entry *models.TimeEntry) error

	// Delete removes an entry and cascades to its breaks and tasks
	Delete(id uint64) error

	// CreateBreak inserts a break entry
	CreateBreak(b *models.BreakEntry) error

	// UpdateBreak persists changes to a break entry
	UpdateBreak(b *models.BreakEntry) error

	// CreateTask inserts a task entry
	CreateTask(t *models.TaskEntry) error

	// Transaction runs fn against a repository bound to one transaction
	Transaction(fn func(TimeEntryRepository) error) error
}

// TimeEntryFilter holds filtering options for listing time entries
type TimeEntryFilter struct {
	UserID   *uint64
	Status   *models.TimeEntryStatus
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmployeeID finds a user by their external employee identifier
	FindByEmployeeID(employeeID string) (*models.User, error)

	// List retrieves users with pagination
	List(page, pageSize int) ([]models.User, int64, error)

	// CountByRole returns the number of active users per role
	CountByRole() (map[models.Role]int64, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// JobRepository defines the interface for job data access
type JobRepository interface {
	// Create creates a new job
	Create(job *models.Job) error

	// FindByID finds a job by ID
	FindByID(id uint64) (*models.Job, error)

	// FindByJobNumber finds a job by its unique job number
	FindByJobNumber(number string) (*models.Job, error)

	// List retrieves jobs, optionally filtered by status, with pagination
	List(status *models.JobStatus, page, pageSize int) ([]models.Job, int64, error)

	// Update persists changes to a job
	Update(job *models.Job) error
}

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// Create stores a generated report snapshot
	Create(report *models.Report) error

	// FindByID finds a report by ID
	FindByID(id uint64) (*models.Report, error)

	// List retrieves reports newest-first with pagination
	List(page, pageSize int) ([]models.Report, int64, error)
}
