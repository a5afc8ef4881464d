package dto

import (
	"time"

	"github.com/edupoint/sis-backend/internal/app/models"
)

// MarkAttendanceRequest represents marking one student's attendance
type MarkAttendanceRequest struct {
	EnrollmentID int64   `json:"enrollmentId" binding:"required"`
	Date         string  `json:"date" binding:"required" example:"2026-03-02"`
	Session      string  `json:"session" binding:"required" example:"morning"`
	Status       string  `json:"status" binding:"required" example:"present"`
	Remarks      *string `json:"remarks,omitempty"`
}

// BulkMarkAttendanceRequest represents marking a whole course sitting.
// Statuses maps enrollment IDs to status values; enrollments missing from
// the map are left unmarked.
type BulkMarkAttendanceRequest struct {
	Date     string           `json:"date" binding:"required" example:"2026-03-02"`
	Session  string           `json:"session" binding:"required" example:"morning"`
	Statuses map[int64]string `json:"statuses" binding:"required"`
}

// BulkMarkAttendanceResponse reports how many records were written
type BulkMarkAttendanceResponse struct {
	Marked int `json:"marked"`
}

// AttendanceResponse represents one attendance record
type AttendanceResponse struct {
	ID           int64     `json:"id"`
	EnrollmentID int64     `json:"enrollmentId"`
	Date         time.Time `json:"date"`
	Session      string    `json:"session"`
	Status       string    `json:"status"`
	Remarks      *string   `json:"remarks,omitempty"`
}

// FromAttendance converts an attendance model to its response DTO
func FromAttendance(record *models.Attendance) AttendanceResponse {
	if record == nil {
		return AttendanceResponse{}
	}
	return AttendanceResponse{
		ID:           record.ID,
		EnrollmentID: record.EnrollmentID,
		Date:         record.Date,
		Session:      string(record.Session),
		Status:       string(record.Status),
		Remarks:      record.Remarks,
	}
}

// PercentageResponse reports an enrollment's attendance percentage
type PercentageResponse struct {
	EnrollmentID int64   `json:"enrollmentId"`
	Percentage   float64 `json:"percentage"`
}

// AttendanceDetailResponse is an enrollment's record list with summary counts
type AttendanceDetailResponse struct {
	Records []AttendanceResponse `json:"records"`
	Present int                  `json:"present"`
	Absent  int                  `json:"absent"`
	Total   int                  `json:"total"`
}
