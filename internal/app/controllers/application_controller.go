package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campushire/campushire/internal/app/models/dto"
	"github.com/campushire/campushire/internal/app/services"
	"github.com/campushire/campushire/internal/middleware"
)

// ApplicationController handles the application workflow endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// Submit creates a pending application against an active job
// @Summary Apply to a job
// @Tags applications
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.SubmitApplicationRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Job is no longer active"
// @Failure 403 {object} dto.ErrorResponse "Caller has no student profile"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied to this job"
// @Router /applications [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.applicationService.Submit(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationID", resp.ID).Int64("jobID", req.JobID).Msg("Application submitted")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// MyApplications lists the caller's own applications
// @Summary List own applications
// @Tags applications
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller has no student profile"
// @Router /applications/mine [get]
func (c *ApplicationController) MyApplications(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	apps, err := c.applicationService.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(apps))
}

// GetApplication returns a single application
// @Summary Get an application
// @Description Visible only to the applicant and the employer owning the job
// @Tags applications
// @Produce json
// @Security Bearer
// @Param applicationId path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /applications/{applicationId} [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "applicationId")
	if !ok {
		return
	}

	resp, err := c.applicationService.Get(ctx.Request.Context(), userID, applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// UpdateStatus transitions an application's status
// @Summary Update application status
// @Description Only the employer owning the referenced job may transition the status
// @Tags applications
// @Accept json
// @Produce json
// @Security Bearer
// @Param applicationId path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status and optional notes"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Unrecognized status"
// @Failure 403 {object} dto.ErrorResponse "Application belongs to another employer's job"
// @Failure 404 {object} dto.ErrorResponse
// @Router /applications/{applicationId}/status [patch]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "applicationId")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.applicationService.UpdateStatus(ctx.Request.Context(), userID, applicationID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationID", applicationID).Str("status", req.Status).Msg("Application status updated")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ListForJob lists the applications received by a job the caller owns
// @Summary List applications for a job
// @Tags applications
// @Produce json
// @Security Bearer
// @Param jobId path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller has no employer profile"
// @Failure 404 {object} dto.ErrorResponse "Job not found or owned by another employer"
// @Router /jobs/{jobId}/applications [get]
func (c *ApplicationController) ListForJob(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "jobId")
	if !ok {
		return
	}

	apps, err := c.applicationService.ListForJob(ctx.Request.Context(), userID, jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(apps))
}
