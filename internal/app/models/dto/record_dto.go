package dto

import (
	"time"

	"github.com/edupoint/sis-backend/internal/app/models"
)

// GradeRequest represents recording a grade for one subject
type GradeRequest struct {
	SubjectName string `json:"subjectName" binding:"required" example:"Midterm"`
	Grade       string `json:"grade" binding:"required" example:"A-"`
}

// GradeResponse represents one recorded grade
type GradeResponse struct {
	ID           int64  `json:"id"`
	EnrollmentID int64  `json:"enrollmentId"`
	SubjectName  string `json:"subjectName"`
	Grade        string `json:"grade"`
}

// FromGrade converts a grade model to its response DTO
func FromGrade(grade *models.Grade) GradeResponse {
	if grade == nil {
		return GradeResponse{}
	}
	return GradeResponse{
		ID:           grade.ID,
		EnrollmentID: grade.EnrollmentID,
		SubjectName:  grade.SubjectName,
		Grade:        grade.Grade,
	}
}

// AchievementRequest represents appending an achievement to a student
type AchievementRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DateAwarded string `json:"dateAwarded" binding:"required" example:"2026-02-10"`
}

// DisciplinaryActionRequest represents appending a disciplinary record
type DisciplinaryActionRequest struct {
	Action      string `json:"action" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required" example:"2026-02-10"`
}

// NotificationRequest represents a lecturer sending a message
type NotificationRequest struct {
	Message string `json:"message" binding:"required"`
}

// NotificationResponse represents one notification
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromNotification converts a notification model to its response DTO
func FromNotification(notification *models.Notification) NotificationResponse {
	if notification == nil {
		return NotificationResponse{}
	}
	return NotificationResponse{
		ID:        notification.ID,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}

// NotificationListResponse is a lecturer's notifications with unread count
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}
