package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/sis-backend/internal/app/models/dto"
	"github.com/edupoint/sis-backend/internal/app/services"
	"github.com/edupoint/sis-backend/internal/middleware"
)

// DashboardController serves the role-specific landing summaries
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// AdminDashboard handles the admin landing summary
// @Summary Admin dashboard
// @Description Returns system-wide counts of students, lecturers, courses and users
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=services.AdminDashboard} "Counts"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/dashboard [get]
func (c *DashboardController) AdminDashboard(ctx *gin.Context) {
	summary, err := c.dashboardService.AdminSummary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// LecturerDashboard handles the lecturer landing summary
// @Summary Lecturer dashboard
// @Description Returns per-course student rosters with attendance percentages and today's marked count
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=services.LecturerDashboard} "Summary"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lecturer/dashboard [get]
func (c *DashboardController) LecturerDashboard(ctx *gin.Context) {
	userID, _, ok := requireCaller(ctx)
	if !ok {
		return
	}

	summary, err := c.dashboardService.LecturerSummary(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// StudentDashboard handles the student landing summary
// @Summary Student dashboard
// @Description Returns the calling student's courses with grades, attendance percentages and disciplinary actions
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=services.StudentDashboard} "Summary"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/dashboard [get]
func (c *DashboardController) StudentDashboard(ctx *gin.Context) {
	userID, _, ok := requireCaller(ctx)
	if !ok {
		return
	}

	summary, err := c.dashboardService.StudentSummary(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}
