package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campushire/campushire/internal/app/models/dto"
	"github.com/campushire/campushire/internal/app/services"
	"github.com/campushire/campushire/internal/middleware"
	"github.com/campushire/campushire/internal/pkg/helpers"
)

// JobController handles the job catalog: public browsing and employer-scoped
// management
type JobController struct {
	jobService *services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService *services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{
		jobService: jobService,
		logger:     logger,
	}
}

// ListJobs returns a filtered page of active jobs
// @Summary List active jobs
// @Description Public listing of active jobs, filterable by search text, location, type and experience
// @Tags jobs
// @Produce json
// @Param search query string false "Matches title, description or company name"
// @Param location query string false "Location filter"
// @Param type query string false "Job type filter"
// @Param experience query string false "Experience filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.JobListResponse}
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	var filter dto.JobFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.jobService.ListActive(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetJob returns a single job posting
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param jobId path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{jobId} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	jobID, ok := parseIDParam(ctx, "jobId")
	if !ok {
		return
	}

	resp, err := c.jobService.GetByID(ctx.Request.Context(), jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// CategoryCounts returns the number of active jobs per category
// @Summary Count active jobs per category
// @Tags jobs
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryCount}
// @Router /jobs/categories [get]
func (c *JobController) CategoryCounts(ctx *gin.Context) {
	counts, err := c.jobService.CountsByCategory(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(counts))
}

// CreateJob opens a new posting owned by the caller
// @Summary Create a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateJobRequest true "Job posting"
// @Success 201 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 400 {object} dto.ErrorResponse "Title or description too short"
// @Failure 403 {object} dto.ErrorResponse "Caller has no employer profile"
// @Router /jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.jobService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobID", resp.ID).Int64("userID", userID).Msg("Job created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// UpdateJob applies a partial update to a posting the caller owns
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security Bearer
// @Param jobId path int true "Job ID"
// @Param request body dto.UpdateJobRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 403 {object} dto.ErrorResponse "Job is owned by another employer"
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{jobId} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "jobId")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.jobService.Update(ctx.Request.Context(), userID, jobID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteJob removes a posting the caller owns
// @Summary Delete a job
// @Tags jobs
// @Produce json
// @Security Bearer
// @Param jobId path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Job is owned by another employer"
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{jobId} [delete]
func (c *JobController) DeleteJob(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "jobId")
	if !ok {
		return
	}

	if err := c.jobService.Delete(ctx.Request.Context(), userID, jobID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Job deleted"}))
}

// MyJobs lists the caller's own postings, including inactive ones
// @Summary List own jobs
// @Tags jobs
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.APIResponse{data=[]dto.JobResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller has no employer profile"
// @Router /jobs/mine [get]
func (c *JobController) MyJobs(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	jobs, err := c.jobService.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(jobs))
}

// JobStats returns aggregate counts over the caller's postings
// @Summary Get own job stats
// @Tags jobs
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.APIResponse{data=dto.JobStatsResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller has no employer profile"
// @Router /jobs/stats [get]
func (c *JobController) JobStats(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	stats, err := c.jobService.Stats(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
