package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/dto"
	apierrors "github.com/AidanBoudreau/TimeLink/internal/errors"
	"github.com/AidanBoudreau/TimeLink/internal/middleware"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/repository"
	"github.com/AidanBoudreau/TimeLink/internal/services"
	"github.com/AidanBoudreau/TimeLink/internal/utils"
	"github.com/gin-gonic/gin"
)

// TimesheetHandler exposes the clock-in/out lifecycle and manager review.
type TimesheetHandler struct {
	timesheetService *services.TimesheetService
}

// NewTimesheetHandler creates a new TimesheetHandler
func NewTimesheetHandler(timesheetService *services.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{
		timesheetService: timesheetService,
	}
}

// Dashboard returns the employee's active entry and week summary.
func (h *TimesheetHandler) Dashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	active, err := h.timesheetService.ActiveEntry(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	hours, entryCount, err := h.timesheetService.WeekSummary(userID, time.Now())
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	resp := gin.H{
		"week_hours":   hours,
		"week_entries": entryCount,
	}
	if active != nil {
		entryDTO := dto.ToTimeEntryDTO(*active)
		resp["active_entry"] = entryDTO
	} else {
		resp["active_entry"] = nil
	}

	c.JSON(http.StatusOK, resp)
}

// ClockIn opens a new time entry for the current user.
func (h *TimesheetHandler) ClockIn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ClockInRequest struct {
		ClockIn *time.Time `json:"clock_in"`
	}

	var req ClockInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	at := time.Now()
	if req.ClockIn != nil {
		at = *req.ClockIn
	}

	entry, err := h.timesheetService.ClockIn(userID, at)
	if err != nil {
		respondTimesheetError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeEntryDTO(*entry))
}

// ClockOut closes the current user's active entry.
func (h *TimesheetHandler) ClockOut(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ClockOutRequest struct {
		ClockOut *time.Time `json:"clock_out"`
	}

	var req ClockOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	at := time.Now()
	if req.ClockOut != nil {
		at = *req.ClockOut
	}

	entry, err := h.timesheetService.ClockOut(userID, at)
	if err != nil {
		respondTimesheetError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryDTO(*entry))
}

// StartBreak opens a break on the current user's active entry.
func (h *TimesheetHandler) StartBreak(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	b, err := h.timesheetService.StartBreak(userID, time.Now())
	if err != nil {
		respondTimesheetError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBreakEntryDTO(*b))
}

// EndBreak closes the open break on the current user's active entry.
func (h *TimesheetHandler) EndBreak(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	b, err := h.timesheetService.EndBreak(userID, time.Now())
	if err != nil {
		respondTimesheetError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBreakEntryDTO(*b))
}

// AddTaskEntry records work against a job during the active entry.
func (h *TimesheetHandler) AddTaskEntry(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type TaskEntryRequest struct {
		JobID         uint64 `json:"job_id" binding:"required"`
		Description   string `json:"description" binding:"required"`
		MaterialsUsed string `json:"materials_used"`
	}

	var req TaskEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.timesheetService.AddTaskEntry(userID, req.JobID, req.Description, req.MaterialsUsed)
	if err != nil {
		respondTimesheetError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskEntryDTO(*task))
}

// ListMyEntries returns the current user's entries, paginated.
func (h *TimesheetHandler) ListMyEntries(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.TimeEntryFilter{
		UserID:   &userID,
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if !applyDateRange(c, &filter) {
		return
	}

	entries, total, err := h.timesheetService.ListEntries(filter)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryListResponse(entries, params.Page, params.Limit, total))
}

// ManagerDashboard summarizes current activity across all users.
func (h *TimesheetHandler) ManagerDashboard(c *gin.Context) {
	activeCount, err := h.timesheetService.CountActive()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clocked_in_count": activeCount,
	})
}

// ListAllEntries returns entries across users with optional filters.
func (h *TimesheetHandler) ListAllEntries(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := repository.TimeEntryFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user_id")
			return
		}
		filter.UserID = &userID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TimeEntryStatus(statusStr)
		filter.Status = &status
	}
	if !applyDateRange(c, &filter) {
		return
	}

	entries, total, err := h.timesheetService.ListEntries(filter)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryListResponse(entries, params.Page, params.Limit, total))
}

// GetEntry returns a single entry with its breaks and tasks.
func (h *TimesheetHandler) GetEntry(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.timesheetService.GetEntry(entryID)
	if err != nil {
		respondTimesheetError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryDTO(*entry))
}

// CorrectEntry applies an audited manager amendment to an entry.
func (h *TimesheetHandler) CorrectEntry(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid entry ID")
		return
	}

	type CorrectionRequest struct {
		ClockIn     *time.Time `json:"clock_in"`
		ClockOut    *time.Time `json:"clock_out"`
		Reason      string     `json:"reason" binding:"required"`
		AllowActive bool       `json:"allow_active"`
	}

	var req CorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "A non-empty reason is required")
		return
	}

	entry, err := h.timesheetService.ApplyCorrection(services.CorrectionInput{
		EntryID:     entryID,
		ActorID:     actorID,
		NewClockIn:  req.ClockIn,
		NewClockOut: req.ClockOut,
		Reason:      req.Reason,
		AllowActive: req.AllowActive,
	})
	if err != nil {
		respondTimesheetError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryDTO(*entry))
}

// DeleteEntry removes an entry and its breaks and tasks.
func (h *TimesheetHandler) DeleteEntry(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.timesheetService.DeleteEntry(entryID); err != nil {
		respondTimesheetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Time entry deleted"})
}

// applyDateRange parses optional from/to date query params (YYYY-MM-DD).
// Returns false after responding with an error.
func applyDateRange(c *gin.Context, filter *repository.TimeEntryFilter) bool {
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			apierrors.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return false
		}
		filter.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			apierrors.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return false
		}
		toExclusive := to.AddDate(0, 0, 1)
		filter.To = &toExclusive
	}
	return true
}

func respondTimesheetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyClockedIn):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNoActiveEntry),
		errors.Is(err, services.ErrClockOutBeforeClockIn),
		errors.Is(err, services.ErrBreakBeforeClockIn),
		errors.Is(err, services.ErrBreakAfterClockOut),
		errors.Is(err, services.ErrBreakAlreadyOpen),
		errors.Is(err, services.ErrNoOpenBreak),
		errors.Is(err, services.ErrBreakEndBeforeStart),
		errors.Is(err, services.ErrNegativeTotal),
		errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, services.ErrEntryStillActive),
		errors.Is(err, services.ErrDescriptionRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrJobNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
