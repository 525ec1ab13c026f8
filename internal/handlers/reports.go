package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/dto"
	apierrors "github.com/AidanBoudreau/TimeLink/internal/errors"
	"github.com/AidanBoudreau/TimeLink/internal/middleware"
	"github.com/AidanBoudreau/TimeLink/internal/services"
	"github.com/AidanBoudreau/TimeLink/internal/utils"
	"github.com/gin-gonic/gin"
)

// ReportHandler exposes report generation and retrieval for managers.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateReport aggregates the requested date range into a new report.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type GenerateRequest struct {
		ReportType string `json:"report_type"`
		DateFrom   string `json:"date_from" binding:"required"`
		DateTo     string `json:"date_to" binding:"required"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "date_from and date_to are required")
		return
	}

	from, err := time.ParseInLocation("2006-01-02", req.DateFrom, time.Local)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date_from, expected YYYY-MM-DD")
		return
	}
	to, err := time.ParseInLocation("2006-01-02", req.DateTo, time.Local)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date_to, expected YYYY-MM-DD")
		return
	}

	report, err := h.reportService.Generate(services.GenerateInput{
		ReportType:  req.ReportType,
		DateFrom:    from,
		DateTo:      to,
		GeneratedBy: userID,
	})
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportDTO(*report))
}

// GetReport returns a single stored report.
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.reportService.GetReport(reportID)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReportDTO(*report))
}

// ListReports returns stored reports newest-first.
func (h *ReportHandler) ListReports(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	reports, total, err := h.reportService.ListReports(params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToReportListResponse(reports, params.Page, params.Limit, total))
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrUnknownReportType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrReportNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
