package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campushire/campushire/internal/app/controllers"
	"github.com/campushire/campushire/internal/app/models"
	"github.com/campushire/campushire/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	jobController *controllers.JobController,
	applicationController *controllers.ApplicationController,
	tokenAuth gin.HandlerFunc,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password/confirm", authController.ResetPasswordConfirm)
	}

	// --- Public job catalog ---
	jobs := v1.Group("/jobs")
	{
		jobs.GET("", jobController.ListJobs)
		jobs.GET("/categories", jobController.CategoryCounts)
		jobs.GET("/:jobId", jobController.GetJob)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(tokenAuth)
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.POST("/auth/change-password", authController.ChangePassword)

		users := authenticated.Group("/users/me")
		{
			users.GET("", userController.GetProfile)
			users.PUT("", userController.UpdateProfile)
			users.POST("/cv", userController.UploadCV)
			users.POST("/profile-picture", userController.UploadProfilePicture)
		}

		// Employer-only job management
		jobsEmployer := authenticated.Group("/jobs")
		jobsEmployer.Use(middleware.RoleRequired(models.RoleEmployer))
		{
			jobsEmployer.POST("", jobController.CreateJob)
			jobsEmployer.GET("/mine", jobController.MyJobs)
			jobsEmployer.GET("/stats", jobController.JobStats)
			jobsEmployer.PUT("/:jobId", jobController.UpdateJob)
			jobsEmployer.DELETE("/:jobId", jobController.DeleteJob)
			jobsEmployer.GET("/:jobId/applications", applicationController.ListForJob)
		}

		applications := authenticated.Group("/applications")
		{
			applications.GET("/:applicationId", applicationController.GetApplication)

			applicationsStudent := applications.Group("")
			applicationsStudent.Use(middleware.RoleRequired(models.RoleStudent))
			{
				applicationsStudent.POST("", applicationController.Submit)
				applicationsStudent.GET("/mine", applicationController.MyApplications)
			}

			applicationsEmployer := applications.Group("")
			applicationsEmployer.Use(middleware.RoleRequired(models.RoleEmployer))
			{
				applicationsEmployer.PATCH("/:applicationId/status", applicationController.UpdateStatus)
			}
		}
	}
}
