package dto

import (
	"time"

	"github.com/edupoint/sis-backend/internal/app/models"
)

// CreateStudentRequest represents admin provisioning of a student account
type CreateStudentRequest struct {
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=8"`
	FirstName        string  `json:"firstName" binding:"required"`
	LastName         string  `json:"lastName" binding:"required"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
	Address          *string `json:"address,omitempty"`
	DepartmentID     *int64  `json:"departmentId,omitempty"`
	RegistrationNo   string  `json:"registrationNo" binding:"required"`
	DateOfBirth      *string `json:"dateOfBirth,omitempty" example:"2004-05-17"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
}

// CreateLecturerRequest represents admin provisioning of a lecturer account
type CreateLecturerRequest struct {
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	FirstName    string  `json:"firstName" binding:"required"`
	LastName     string  `json:"lastName" binding:"required"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	Address      *string `json:"address,omitempty"`
	DepartmentID *int64  `json:"departmentId,omitempty"`
}

// UpdateProfileRequest represents user profile update data
type UpdateProfileRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// StudentResponse represents a student profile with its account
type StudentResponse struct {
	ID               int64      `json:"id"`
	RegistrationNo   string     `json:"registrationNo"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	EmergencyContact *string    `json:"emergencyContact,omitempty"`
	LatestActivity   *time.Time `json:"latestActivity,omitempty"`
	User             UserResponse `json:"user"`
}

// FromStudent converts a student model to its response DTO
func FromStudent(student *models.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}
	return StudentResponse{
		ID:               student.ID,
		RegistrationNo:   student.RegistrationNo,
		DateOfBirth:      student.DateOfBirth,
		EmergencyContact: student.EmergencyContact,
		LatestActivity:   student.LatestActivity,
		User:             FromUser(student.User),
	}
}

// LecturerResponse represents a lecturer profile with its account
type LecturerResponse struct {
	ID   int64        `json:"id"`
	User UserResponse `json:"user"`
}

// FromLecturer converts a lecturer model to its response DTO
func FromLecturer(lecturer *models.Lecturer) LecturerResponse {
	if lecturer == nil {
		return LecturerResponse{}
	}
	return LecturerResponse{
		ID:   lecturer.ID,
		User: FromUser(lecturer.User),
	}
}

// UserListResponse represents a page of users
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	PaginationInfo
}
