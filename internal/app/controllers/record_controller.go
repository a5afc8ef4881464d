package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupoint/sis-backend/internal/app/models/dto"
	"github.com/edupoint/sis-backend/internal/app/services"
	"github.com/edupoint/sis-backend/internal/middleware"
)

// RecordController handles grades, achievements, disciplinary actions and
// lecturer notifications
type RecordController struct {
	recordService *services.RecordService
}

// NewRecordController creates a new RecordController
func NewRecordController(recordService *services.RecordService) *RecordController {
	return &RecordController{recordService: recordService}
}

// RecordGrade handles recording a grade
// @Summary Record a grade
// @Description Writes a grade for one subject within an enrollment; recording the same subject again overwrites it
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.GradeRequest true "Grade"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResponse} "Grade recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/grades [post]
func (c *RecordController) RecordGrade(ctx *gin.Context) {
	enrollmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	grade, err := c.recordService.RecordGrade(ctx, enrollmentID, req.SubjectName, req.Grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromGrade(grade)))
}

// ListGrades handles listing an enrollment's grades
// @Summary List grades
// @Description Returns an enrollment's grades ordered by subject
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeResponse} "Grades"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/grades [get]
func (c *RecordController) ListGrades(ctx *gin.Context) {
	enrollmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	grades, err := c.recordService.ListGrades(ctx, enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		responses = append(responses, dto.FromGrade(grade))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// DeleteGrade handles removing a grade
// @Summary Delete a grade
// @Description Removes one grade from an enrollment
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param gradeId path int true "Grade ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Grade deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment or grade not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/grades/{gradeId} [delete]
func (c *RecordController) DeleteGrade(ctx *gin.Context) {
	enrollmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	gradeID, err := parseIDParam(ctx, "gradeId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.recordService.DeleteGrade(ctx, enrollmentID, gradeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Grade deleted"}))
}

// AddAchievement handles appending an achievement
// @Summary Add an achievement
// @Description Appends an achievement to a student's record; achievements are never updated or deleted
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.AchievementRequest true "Achievement"
// @Success 201 {object} dto.APIResponse "Achievement recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/achievements [post]
func (c *RecordController) AddAchievement(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.AchievementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	date, err := parseDateField(req.DateAwarded, "dateAwarded")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	achievement, err := c.recordService.AddAchievement(ctx, studentID, req.Title, req.Description, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(achievement))
}

// ListAchievements handles listing a student's achievements
// @Summary List achievements
// @Description Returns a student's achievements, most recent first
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Achievements"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/achievements [get]
func (c *RecordController) ListAchievements(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	achievements, err := c.recordService.ListAchievements(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(achievements))
}

// AddDisciplinaryAction handles appending a disciplinary record
// @Summary Add a disciplinary action
// @Description Appends a disciplinary record for a student; records are never updated or deleted
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.DisciplinaryActionRequest true "Disciplinary action"
// @Success 201 {object} dto.APIResponse "Disciplinary action recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/disciplinary-actions [post]
func (c *RecordController) AddDisciplinaryAction(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.DisciplinaryActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	date, err := parseDateField(req.Date, "date")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	record, err := c.recordService.AddDisciplinaryAction(ctx, studentID, req.Action, req.Description, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(record))
}

// ListDisciplinaryActions handles listing a student's disciplinary records
// @Summary List disciplinary actions
// @Description Returns a student's disciplinary records, most recent first
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Disciplinary actions"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/disciplinary-actions [get]
func (c *RecordController) ListDisciplinaryActions(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	actions, err := c.recordService.ListDisciplinaryActions(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(actions))
}

// SendNotification handles a lecturer sending a message
// @Summary Send a notification
// @Description Records a message sent by the calling lecturer
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NotificationRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.NotificationResponse} "Notification recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lecturer/notifications [post]
func (c *RecordController) SendNotification(ctx *gin.Context) {
	userID, _, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.NotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.BindingError(ctx, err)
		return
	}

	notification, err := c.recordService.SendNotification(ctx, userID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromNotification(notification)))
}

// ListNotifications handles a lecturer reading their notifications
// @Summary List my notifications
// @Description Returns the calling lecturer's notifications with the unread count
// @Tags records
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse} "Notifications"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lecturer/notifications [get]
func (c *RecordController) ListNotifications(ctx *gin.Context) {
	userID, _, ok := requireCaller(ctx)
	if !ok {
		return
	}

	notifications, unread, err := c.recordService.ListNotifications(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:   unread,
	}
	for _, notification := range notifications {
		response.Notifications = append(response.Notifications, dto.FromNotification(notification))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// MarkNotificationsRead handles flagging all notifications as read
// @Summary Mark notifications read
// @Description Flags all of the calling lecturer's notifications as read
// @Tags records
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notifications marked read"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Lecturer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lecturer/notifications/read [post]
func (c *RecordController) MarkNotificationsRead(ctx *gin.Context) {
	userID, _, ok := requireCaller(ctx)
	if !ok {
		return
	}

	if err := c.recordService.MarkNotificationsRead(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Notifications marked read"}))
}
