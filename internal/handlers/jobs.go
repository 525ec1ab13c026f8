package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AidanBoudreau/TimeLink/internal/dto"
	apierrors "github.com/AidanBoudreau/TimeLink/internal/errors"
	"github.com/AidanBoudreau/TimeLink/internal/middleware"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/services"
	"github.com/AidanBoudreau/TimeLink/internal/utils"
	"github.com/gin-gonic/gin"
)

// JobHandler exposes job management for managers and admins.
type JobHandler struct {
	jobService *services.JobService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// CreateJob registers a new job.
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateJobRequest struct {
		JobNumber   string `json:"job_number" binding:"required"`
		JobName     string `json:"job_name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.CreateJob(services.CreateJobInput{
		JobNumber:   req.JobNumber,
		JobName:     req.JobName,
		Description: req.Description,
		CreatedBy:   userID,
	})
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobDTO(*job))
}

// ListJobs returns jobs, optionally filtered by status.
func (h *JobHandler) ListJobs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.JobStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.JobStatus(statusStr)
		status = &s
	}

	jobs, total, err := h.jobService.ListJobs(status, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToJobListResponse(jobs, params.Page, params.Limit, total))
}

// GetJob returns a single job.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.jobService.GetJob(jobID)
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// UpdateJob amends an existing job.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid job ID")
		return
	}

	type UpdateJobRequest struct {
		JobName     *string           `json:"job_name"`
		Description *string           `json:"description"`
		Status      *models.JobStatus `json:"status"`
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.jobService.UpdateJob(jobID, services.UpdateJobInput{
		JobName:     req.JobName,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

func respondJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrJobNumberRequired),
		errors.Is(err, services.ErrJobNameRequired),
		errors.Is(err, services.ErrInvalidJobStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrJobNumberTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrJobNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
