package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/constants"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidDateRange  = errors.New("date_from must not be after date_to")
	ErrUnknownReportType = errors.New("unknown report type")
	ErrReportNotFound    = errors.New("report not found")
)

// ReportService aggregates closed time entries into immutable report
// snapshots. Regenerating over the same range always inserts a new row.
type ReportService struct {
	reportRepo repository.ReportRepository
	entryRepo  repository.TimeEntryRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository, entryRepo repository.TimeEntryRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		entryRepo:  entryRepo,
	}
}

// UserHoursSummary is one user's line in an hours-summary report.
type UserHoursSummary struct {
	UserID       uint64  `json:"user_id"`
	EmployeeID   string  `json:"employee_id"`
	Name         string  `json:"name"`
	TotalHours   float64 `json:"total_hours"`
	BreakMinutes int     `json:"break_minutes"`
	EntryCount   int     `json:"entry_count"`
}

// HoursSummaryPayload is the structured payload stored on a report row.
type HoursSummaryPayload struct {
	DateFrom   string             `json:"date_from"`
	DateTo     string             `json:"date_to"`
	Users      []UserHoursSummary `json:"users"`
	TotalHours float64            `json:"total_hours"`
}

// GenerateInput describes a report generation request.
type GenerateInput struct {
	ReportType  string
	DateFrom    time.Time
	DateTo      time.Time
	GeneratedBy uint64
}

// Generate aggregates closed entries clocked in between DateFrom and the
// end of DateTo (inclusive dates) and stores the result.
func (s *ReportService) Generate(input GenerateInput) (*models.Report, error) {
	if input.ReportType == "" {
		input.ReportType = constants.ReportTypeHoursSummary
	}
	if input.ReportType != constants.ReportTypeHoursSummary {
		return nil, ErrUnknownReportType
	}
	if input.DateFrom.After(input.DateTo) {
		return nil, ErrInvalidDateRange
	}

	from := truncateToDay(input.DateFrom)
	toExclusive := truncateToDay(input.DateTo).AddDate(0, 0, 1)

	entries, err := s.entryRepo.ListClosedBetween(from, toExclusive)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	byUser := make(map[uint64]*UserHoursSummary)
	order := make([]uint64, 0)
	var grandTotal float64

	for i := range entries {
		e := &entries[i]
		if e.TotalHours == nil {
			continue
		}

		summary, ok := byUser[e.UserID]
		if !ok {
			summary = &UserHoursSummary{
				UserID:     e.UserID,
				EmployeeID: e.User.EmployeeID,
				Name:       e.User.Name,
			}
			byUser[e.UserID] = summary
			order = append(order, e.UserID)
		}

		summary.TotalHours = round2(summary.TotalHours + *e.TotalHours)
		summary.BreakMinutes += e.BreakDuration
		summary.EntryCount++
		grandTotal = round2(grandTotal + *e.TotalHours)
	}

	payload := HoursSummaryPayload{
		DateFrom:   from.Format("2006-01-02"),
		DateTo:     truncateToDay(input.DateTo).Format("2006-01-02"),
		Users:      make([]UserHoursSummary, 0, len(order)),
		TotalHours: grandTotal,
	}
	for _, id := range order {
		payload.Users = append(payload.Users, *byUser[id])
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report payload: %w", err)
	}

	report := &models.Report{
		ReportType:  input.ReportType,
		GeneratedBy: input.GeneratedBy,
		DateFrom:    from,
		DateTo:      truncateToDay(input.DateTo),
		ReportData:  string(data),
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	return report, nil
}

// GetReport returns a stored report by ID.
func (s *ReportService) GetReport(id uint64) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

// ListReports returns stored reports newest-first with pagination.
func (s *ReportService) ListReports(page, pageSize int) ([]models.Report, int64, error) {
	reports, total, err := s.reportRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
