package dto

import (
	"time"

	"github.com/edupoint/sis-backend/internal/app/models"
)

// EnrollRequest represents enrolling a student onto a course
type EnrollRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
	CourseID  int64 `json:"courseId" binding:"required"`
}

// EnrollmentResponse represents one enrollment row
type EnrollmentResponse struct {
	ID           int64            `json:"id"`
	StudentID    int64            `json:"studentId"`
	CourseID     int64            `json:"courseId"`
	DateEnrolled time.Time        `json:"dateEnrolled"`
	Student      *StudentResponse `json:"student,omitempty"`
	Course       *CourseResponse  `json:"course,omitempty"`
}

// FromEnrollment converts an enrollment model to its response DTO
func FromEnrollment(enrollment *models.Enrollment) EnrollmentResponse {
	if enrollment == nil {
		return EnrollmentResponse{}
	}

	response := EnrollmentResponse{
		ID:           enrollment.ID,
		StudentID:    enrollment.StudentID,
		CourseID:     enrollment.CourseID,
		DateEnrolled: enrollment.DateEnrolled,
	}
	if enrollment.Student != nil {
		student := FromStudent(enrollment.Student)
		response.Student = &student
	}
	if enrollment.Course != nil {
		course := FromCourse(enrollment.Course)
		response.Course = &course
	}

	return response
}

// FromEnrollments converts a slice of enrollment models
func FromEnrollments(enrollments []*models.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, FromEnrollment(enrollment))
	}
	return responses
}

// EnrollmentListResponse represents a set of enrollments
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
}
