package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/models/dto"
	"github.com/edupoint/sis-backend/internal/app/services"
	"github.com/edupoint/sis-backend/internal/middleware"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/export"
)

// AttendanceController handles attendance marking, reports and exports
type AttendanceController struct {
	attendanceService *services.AttendanceService
	enrollmentService *services.EnrollmentService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(
	attendanceService *services.AttendanceService,
	enrollmentService *services.EnrollmentService,
) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		enrollmentService: enrollmentService,
	}
}

// authorizeEnrollmentWrite checks that the caller may mark attendance for an
// enrollment, via the course it belongs to.
func (c *AttendanceController) authorizeEnrollmentWrite(ctx *gin.Context, userID int64, role models.RoleType, enrollmentID int64) (*models.Enrollment, error) {
	enrollment, err := c.enrollmentService.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if err := c.attendanceService.AuthorizeCourseAccess(ctx, userID, role, enrollment.CourseID); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// authorizeEnrollmentRead checks that the caller may read an enrollment's
// attendance. Students may read their own; lecturers need the course.
func (c *AttendanceController) authorizeEnrollmentRead(ctx *gin.Context, userID int64, role models.RoleType, enrollmentID int64) error {
	enrollment, err := c.enrollmentService.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return err
	}

	if role == models.RoleStudent {
		owns, err := c.enrollmentService.StudentOwnsEnrollment(ctx, userID, enrollment)
		if err != nil {
			return err
		}
		if !owns {
			return apperrors.ErrPermissionDenied
		}
		return nil
	}

	return c.attendanceService.AuthorizeCourseAccess(ctx, userID, role, enrollment.CourseID)
}

// Mark handles marking one student's attendance
// @Summary Mark attendance
// @Description Records one attendance status; marking the same enrollment, date and session again overwrites the earlier record
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAttendanceRequest true "Attendance record"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceResponse} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid status, session or date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not teach this course"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [post]
func (c *AttendanceController) Mark(ctx *gin.Context) {
	userID, role, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	date, err := parseDateField(req.Date, "date")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.authorizeEnrollmentWrite(ctx, userID, role, req.EnrollmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	record, err := c.attendanceService.Mark(ctx, req.EnrollmentID, date, req.Session, req.Status, req.Remarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAttendance(record)))
}

// MarkBulk handles marking a whole course sitting
// @Summary Mark attendance in bulk
// @Description Records attendance for a course sitting in one transaction and returns the count written; enrollments absent from the map and unrecognized statuses are skipped
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.BulkMarkAttendanceRequest true "Statuses by enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.BulkMarkAttendanceResponse} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid session or date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not teach this course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/attendance/bulk [post]
func (c *AttendanceController) MarkBulk(ctx *gin.Context) {
	userID, role, ok := requireCaller(ctx)
	if !ok {
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.BulkMarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	date, err := parseDateField(req.Date, "date")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.attendanceService.AuthorizeCourseAccess(ctx, userID, role, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	marked, err := c.attendanceService.MarkBulk(ctx, courseID, date, req.Session, req.Statuses)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.BulkMarkAttendanceResponse{Marked: marked}))
}

// Percentage handles reporting an enrollment's attendance percentage
// @Summary Get attendance percentage
// @Description Returns the enrollment's attendance percentage, 0 when nothing is marked yet
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.PercentageResponse} "Percentage"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/attendance/percentage [get]
func (c *AttendanceController) Percentage(ctx *gin.Context) {
	userID, role, ok := requireCaller(ctx)
	if !ok {
		return
	}

	enrollmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.authorizeEnrollmentRead(ctx, userID, role, enrollmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	percentage, err := c.attendanceService.Percentage(ctx, enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PercentageResponse{
		EnrollmentID: enrollmentID,
		Percentage:   percentage,
	}))
}

// History handles the course attendance history report
// @Summary Get course attendance history
// @Description Returns each enrolled student's day-by-day session statuses for the day, Monday-aligned week or calendar month containing the reference date
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param period query string true "Report period" Enums(day, week, month)
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.APIResponse "History matrix"
// @Failure 400 {object} dto.ErrorResponse "Invalid period or date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not teach this course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/attendance/history [get]
func (c *AttendanceController) History(ctx *gin.Context) {
	userID, role, ok := requireCaller(ctx)
	if !ok {
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.attendanceService.AuthorizeCourseAccess(ctx, userID, role, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	reference := time.Now()
	if parsed, err := parseDateQuery(ctx, "date"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	} else if parsed != nil {
		reference = *parsed
	}

	rows, from, to, err := c.attendanceService.History(ctx, courseID, ctx.Query("period"), reference)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"from":     from.Format("2006-01-02"),
		"to":       to.Format("2006-01-02"),
		"students": rows,
	}))
}

// Export handles downloading a course's attendance for one date
// @Summary Export course attendance
// @Description Streams one date's attendance as CSV or XLSX, one row per enrolled student with "not marked" for absent records
// @Tags attendance
// @Produce text/csv
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param format query string false "File format" Enums(csv, xlsx) default(csv)
// @Success 200 {file} file "Attendance export"
// @Failure 400 {object} dto.ErrorResponse "Invalid date or format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not teach this course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/attendance/export [get]
func (c *AttendanceController) Export(ctx *gin.Context) {
	userID, role, ok := requireCaller(ctx)
	if !ok {
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.attendanceService.AuthorizeCourseAccess(ctx, userID, role, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	date, err := parseDateQuery(ctx, "date")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if date == nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrInvalidDate, "date query parameter is required").WithField("date"))
		return
	}

	format := ctx.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("format must be csv or xlsx"))
		return
	}

	table, course, err := c.attendanceService.ExportDaily(ctx, courseID, *date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := services.ExportFilename(course.Code, *date, format)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if format == "xlsx" {
		ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.WriteXLSX(ctx.Writer, "Attendance", table); err != nil {
			middleware.HandleAPIError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Type", "text/csv")
	if err := export.WriteCSV(ctx.Writer, table); err != nil {
		middleware.HandleAPIError(ctx, err)
	}
}

// Detail handles an enrollment's attendance record list
// @Summary Get enrollment attendance detail
// @Description Returns an enrollment's attendance records, optionally limited to a date range, with present/absent/total counts
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceDetailResponse} "Attendance detail"
// @Failure 400 {object} dto.ErrorResponse "Invalid date range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/attendance [get]
func (c *AttendanceController) Detail(ctx *gin.Context) {
	userID, role, ok := requireCaller(ctx)
	if !ok {
		return
	}

	enrollmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.authorizeEnrollmentRead(ctx, userID, role, enrollmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	from, err := parseDateQuery(ctx, "from")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	to, err := parseDateQuery(ctx, "to")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	records, summary, err := c.attendanceService.StudentDetail(ctx, enrollmentID, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.AttendanceDetailResponse{
		Records: make([]dto.AttendanceResponse, 0, len(records)),
		Present: summary.Present,
		Absent:  summary.Absent,
		Total:   summary.Total,
	}
	for _, record := range records {
		response.Records = append(response.Records, dto.FromAttendance(record))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
