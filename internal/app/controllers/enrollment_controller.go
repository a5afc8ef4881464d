package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/sis-backend/internal/app/models/dto"
	"github.com/edupoint/sis-backend/internal/app/repositories"
	"github.com/edupoint/sis-backend/internal/app/services"
	"github.com/edupoint/sis-backend/internal/middleware"
)

// EnrollmentController handles the enrollment ledger
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// Enroll handles enrolling a student onto a course
// @Summary Enroll a student
// @Description Links a student to a course; the enrollment date is stamped by the database and never changes
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Student and course"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx, req.StudentID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromEnrollment(enrollment)))
}

// ListEnrollments handles listing enrollments with filters
// @Summary List enrollments
// @Description Returns enrollments, optionally filtered by student, course or department
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Student ID filter"
// @Param courseId query int false "Course ID filter"
// @Param departmentId query int false "Department ID filter"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse} "Enrollments"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [get]
func (c *EnrollmentController) ListEnrollments(ctx *gin.Context) {
	filter := repositories.EnrollmentFilter{
		StudentID:    parseIDQuery(ctx, "studentId"),
		CourseID:     parseIDQuery(ctx, "courseId"),
		DepartmentID: parseIDQuery(ctx, "departmentId"),
	}

	enrollments, err := c.enrollmentService.ListEnrollments(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EnrollmentListResponse{
		Enrollments: dto.FromEnrollments(enrollments),
	}))
}

// GetEnrollment handles retrieving one enrollment
// @Summary Get an enrollment
// @Description Returns one enrollment with its student and course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollmentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromEnrollment(enrollment)))
}

// Unenroll handles removing an enrollment
// @Summary Remove an enrollment
// @Description Removes an enrollment; its attendance and grades go with it
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Enrollment removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.enrollmentService.Unenroll(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Enrollment removed"}))
}

// MyEnrollments handles listing the calling student's enrollments
// @Summary List my enrollments
// @Description Returns the calling student's enrollments with their courses
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse} "Enrollments"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/enrollments [get]
func (c *EnrollmentController) MyEnrollments(ctx *gin.Context) {
	userID, _, ok := requireCaller(ctx)
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.ListByStudentUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EnrollmentListResponse{
		Enrollments: dto.FromEnrollments(enrollments),
	}))
}

// parseIDQuery reads an optional positive int64 query parameter, returning 0
// when absent or malformed.
func parseIDQuery(ctx *gin.Context, name string) int64 {
	raw := ctx.Query(name)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
