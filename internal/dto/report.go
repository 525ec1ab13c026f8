package dto

import (
	"encoding/json"
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/models"
)

// ReportDTO represents a stored report in API responses. ReportData is
// re-emitted as raw JSON rather than a double-encoded string.
type ReportDTO struct {
	ID          uint64          `json:"id"`
	ReportType  string          `json:"report_type"`
	GeneratedBy uint64          `json:"generated_by"`
	Generator   *UserDTO        `json:"generator,omitempty"`
	DateFrom    string          `json:"date_from"`
	DateTo      string          `json:"date_to"`
	ReportData  json.RawMessage `json:"report_data"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReportListResponse represents a paginated list of reports
type ReportListResponse struct {
	Reports    []ReportDTO `json:"reports"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalCount int64       `json:"total_count"`
}

// ToReportDTO converts a Report model to ReportDTO
func ToReportDTO(report models.Report) ReportDTO {
	dto := ReportDTO{
		ID:          report.ID,
		ReportType:  report.ReportType,
		GeneratedBy: report.GeneratedBy,
		DateFrom:    report.DateFrom.Format("2006-01-02"),
		DateTo:      report.DateTo.Format("2006-01-02"),
		ReportData:  json.RawMessage(report.ReportData),
		CreatedAt:   report.CreatedAt,
	}

	if report.Generator.ID != 0 {
		generator := ToUserDTO(report.Generator)
		dto.Generator = &generator
	}

	return dto
}

// ToReportListResponse converts reports to a paginated response
func ToReportListResponse(reports []models.Report, page, pageSize int, total int64) ReportListResponse {
	items := make([]ReportDTO, len(reports))
	for i, r := range reports {
		items[i] = ToReportDTO(r)
	}
	return ReportListResponse{
		Reports:    items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}
}
