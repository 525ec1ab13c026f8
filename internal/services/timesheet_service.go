package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAlreadyClockedIn      = errors.New("user already has an active time entry")
	ErrNoActiveEntry         = errors.New("no active time entry")
	ErrEntryNotFound         = errors.New("time entry not found")
	ErrClockOutBeforeClockIn = errors.New("clock-out cannot be earlier than clock-in")
	ErrBreakBeforeClockIn    = errors.New("break cannot start before clock-in")
	ErrBreakAfterClockOut    = errors.New("break cannot end after clock-out")
	ErrBreakAlreadyOpen      = errors.New("a break is already in progress")
	ErrNoOpenBreak           = errors.New("no break in progress")
	ErrBreakEndBeforeStart   = errors.New("break end cannot be earlier than break start")
	ErrNegativeTotal         = errors.New("total hours would be negative")
	ErrReasonRequired        = errors.New("a modification reason is required")
	ErrEntryStillActive      = errors.New("entry is still active; close it or set allow_active")
	ErrDescriptionRequired   = errors.New("task description is required")
	ErrJobNotFound           = errors.New("job not found")
)

// TimesheetService owns the clock-in/out lifecycle and the derivation of
// worked hours and break durations.
type TimesheetService struct {
	entryRepo repository.TimeEntryRepository
	jobRepo   repository.JobRepository
}

// NewTimesheetService creates a new TimesheetService
func NewTimesheetService(entryRepo repository.TimeEntryRepository, jobRepo repository.JobRepository) *TimesheetService {
	return &TimesheetService{
		entryRepo: entryRepo,
		jobRepo:   jobRepo,
	}
}

// ClockIn opens a new active entry for the user. The "at most one active
// entry per user" invariant is enforced twice: a friendly pre-check here,
// and the partial unique index at the storage layer, which is what actually
// decides a race between two concurrent clock-ins.
func (s *TimesheetService) ClockIn(userID uint64, at time.Time) (*models.TimeEntry, error) {
	if at.IsZero() {
		at = time.Now()
	}

	if _, err := s.entryRepo.FindActiveByUserID(userID); err == nil {
		return nil, ErrAlreadyClockedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check active entry: %w", err)
	}

	entry := &models.TimeEntry{
		UserID:  userID,
		ClockIn: at,
		Status:  models.TimeEntryStatusActive,
	}

	if err := s.entryRepo.Create(entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateActiveEntry) {
			return nil, ErrAlreadyClockedIn
		}
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// ClockOut closes the user's active entry at the given time. Any break
// still open is ended at the clock-out timestamp before totals are derived.
// Runs in one transaction; the entry is re-read immediately before the
// total is computed, never taken from a stale copy.
func (s *TimesheetService) ClockOut(userID uint64, at time.Time) (*models.TimeEntry, error) {
	if at.IsZero() {
		at = time.Now()
	}

	current, err := s.entryRepo.FindActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveEntry
		}
		return nil, fmt.Errorf("failed to find active entry: %w", err)
	}

	var closed *models.TimeEntry
	err = s.entryRepo.Transaction(func(tx repository.TimeEntryRepository) error {
		entry, err := tx.FindByIDForUpdate(current.ID)
		if err != nil {
			return fmt.Errorf("failed to re-read entry: %w", err)
		}
		if entry.Status != models.TimeEntryStatusActive {
			return ErrNoActiveEntry
		}
		if at.Before(entry.ClockIn) {
			return ErrClockOutBeforeClockIn
		}

		if open := entry.OpenBreak(); open != nil {
			end := at
			open.BreakEnd = &end
			d, _ := open.ComputeDuration()
			open.Duration = &d
			if err := tx.UpdateBreak(open); err != nil {
				return fmt.Errorf("failed to close open break: %w", err)
			}
		}

		entry.BreakDuration = entry.SumBreakMinutes()
		entry.ClockOut = &at

		total, ok := entry.ComputeTotalHours()
		if !ok {
			return ErrClockOutBeforeClockIn
		}
		if total < 0 {
			return ErrNegativeTotal
		}

		entry.TotalHours = &total
		entry.Status = models.TimeEntryStatusClosed

		if err := tx.Update(entry); err != nil {
			return fmt.Errorf("failed to close entry: %w", err)
		}

		closed = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return closed, nil
}

// StartBreak opens a break on the user's active entry.
func (s *TimesheetService) StartBreak(userID uint64, at time.Time) (*models.BreakEntry, error) {
	if at.IsZero() {
		at = time.Now()
	}

	entry, err := s.entryRepo.FindActiveByUserID(userID, "BreakEntries")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveEntry
		}
		return nil, fmt.Errorf("failed to find active entry: %w", err)
	}

	if at.Before(entry.ClockIn) {
		return nil, ErrBreakBeforeClockIn
	}
	if entry.OpenBreak() != nil {
		return nil, ErrBreakAlreadyOpen
	}

	b := &models.BreakEntry{
		TimeEntryID: entry.ID,
		BreakStart:  at,
	}
	if err := s.entryRepo.CreateBreak(b); err != nil {
		return nil, fmt.Errorf("failed to create break: %w", err)
	}

	return b, nil
}

// EndBreak closes the open break on the user's active entry and refreshes
// the entry's cached break-minute sum from its children.
func (s *TimesheetService) EndBreak(userID uint64, at time.Time) (*models.BreakEntry, error) {
	if at.IsZero() {
		at = time.Now()
	}

	current, err := s.entryRepo.FindActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveEntry
		}
		return nil, fmt.Errorf("failed to find active entry: %w", err)
	}

	var ended *models.BreakEntry
	err = s.entryRepo.Transaction(func(tx repository.TimeEntryRepository) error {
		entry, err := tx.FindByIDForUpdate(current.ID)
		if err != nil {
			return fmt.Errorf("failed to re-read entry: %w", err)
		}

		open := entry.OpenBreak()
		if open == nil {
			return ErrNoOpenBreak
		}
		if at.Before(open.BreakStart) {
			return ErrBreakEndBeforeStart
		}

		end := at
		open.BreakEnd = &end
		d, _ := open.ComputeDuration()
		open.Duration = &d
		if err := tx.UpdateBreak(open); err != nil {
			return fmt.Errorf("failed to update break: %w", err)
		}

		entry.BreakDuration = entry.SumBreakMinutes()
		if err := tx.Update(entry); err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		ended = open
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ended, nil
}

// AddTaskEntry records work done against a job during the user's active entry.
func (s *TimesheetService) AddTaskEntry(userID, jobID uint64, description, materialsUsed string) (*models.TaskEntry, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	entry, err := s.entryRepo.FindActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveEntry
		}
		return nil, fmt.Errorf("failed to find active entry: %w", err)
	}

	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	task := &models.TaskEntry{
		TimeEntryID:   entry.ID,
		JobID:         jobID,
		Description:   description,
		MaterialsUsed: materialsUsed,
	}
	if err := s.entryRepo.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task entry: %w", err)
	}

	return task, nil
}

// CorrectionInput describes a manager/admin amendment to a time entry.
type CorrectionInput struct {
	EntryID     uint64
	ActorID     uint64
	NewClockIn  *time.Time
	NewClockOut *time.Time
	Reason      string
	AllowActive bool
}

// ApplyCorrection amends an entry's clock times under an audited reason.
// The whole correction is atomic: if the recomputed total would be negative
// or any break falls outside the corrected window, nothing is persisted.
func (s *TimesheetService) ApplyCorrection(input CorrectionInput) (*models.TimeEntry, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, ErrReasonRequired
	}

	var corrected *models.TimeEntry
	err := s.entryRepo.Transaction(func(tx repository.TimeEntryRepository) error {
		entry, err := tx.FindByIDForUpdate(input.EntryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("failed to re-read entry: %w", err)
		}

		if entry.Status == models.TimeEntryStatusActive && !input.AllowActive {
			return ErrEntryStillActive
		}

		if input.NewClockIn != nil {
			entry.ClockIn = *input.NewClockIn
		}
		if input.NewClockOut != nil {
			entry.ClockOut = input.NewClockOut
		}

		if entry.ClockOut != nil && entry.ClockOut.Before(entry.ClockIn) {
			return ErrClockOutBeforeClockIn
		}
		for i := range entry.BreakEntries {
			b := &entry.BreakEntries[i]
			if b.BreakStart.Before(entry.ClockIn) {
				return ErrBreakBeforeClockIn
			}
			if entry.ClockOut != nil && b.BreakEnd != nil && b.BreakEnd.After(*entry.ClockOut) {
				return ErrBreakAfterClockOut
			}
		}

		entry.BreakDuration = entry.SumBreakMinutes()

		if total, ok := entry.ComputeTotalHours(); ok {
			if total < 0 {
				return ErrNegativeTotal
			}
			entry.TotalHours = &total
			entry.Status = models.TimeEntryStatusModified
		} else {
			// Entry remains open after the correction.
			entry.TotalHours = nil
		}

		entry.ModifiedBy = &input.ActorID
		entry.ModificationReason = input.Reason

		if err := tx.Update(entry); err != nil {
			return fmt.Errorf("failed to save correction: %w", err)
		}

		corrected = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return corrected, nil
}

// DeleteEntry removes an entry together with its breaks and tasks.
func (s *TimesheetService) DeleteEntry(id uint64) error {
	if _, err := s.entryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("failed to find entry: %w", err)
	}
	if err := s.entryRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// GetEntry returns an entry with its breaks, tasks, and owner preloaded.
func (s *TimesheetService) GetEntry(id uint64) (*models.TimeEntry, error) {
	entry, err := s.entryRepo.FindByID(id, "User", "BreakEntries", "TaskEntries", "TaskEntries.Job")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	return entry, nil
}

// ActiveEntry returns the user's open entry, or nil when clocked out.
func (s *TimesheetService) ActiveEntry(userID uint64) (*models.TimeEntry, error) {
	entry, err := s.entryRepo.FindActiveByUserID(userID, "BreakEntries", "TaskEntries", "TaskEntries.Job")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns entries matching the filter with pagination.
func (s *TimesheetService) ListEntries(filter repository.TimeEntryFilter) ([]models.TimeEntry, int64, error) {
	entries, total, err := s.entryRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, total, nil
}

// CountActive counts entries currently open across all users.
func (s *TimesheetService) CountActive() (int64, error) {
	return s.entryRepo.CountActive()
}

// WeekSummary sums the derived totals of the user's closed entries since
// the start of the current week (Monday, local time).
func (s *TimesheetService) WeekSummary(userID uint64, now time.Time) (float64, int, error) {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(weekday - 1))

	entries, _, err := s.entryRepo.List(repository.TimeEntryFilter{
		UserID: &userID,
		From:   &start,
		To:     &now,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list week entries: %w", err)
	}

	var hours float64
	count := 0
	for i := range entries {
		if entries[i].TotalHours != nil {
			hours += *entries[i].TotalHours
			count++
		}
	}
	return hours, count, nil
}
