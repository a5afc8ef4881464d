package dto

import (
	"github.com/edupoint/sis-backend/internal/app/models"
)

// CourseRequest represents course create/update data
type CourseRequest struct {
	Name         string  `json:"name" binding:"required" example:"Operating Systems"`
	Code         string  `json:"code" binding:"required" example:"CS301"`
	Classroom    *string `json:"classroom,omitempty" example:"B-204"`
	Description  *string `json:"description,omitempty"`
	DepartmentID int64   `json:"departmentId" binding:"required"`
}

// AssignLecturerRequest represents adding a lecturer to a course
type AssignLecturerRequest struct {
	LecturerID int64 `json:"lecturerId" binding:"required"`
}

// CourseResponse represents a course with optional relations
type CourseResponse struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Code         string              `json:"code"`
	Classroom    *string             `json:"classroom,omitempty"`
	Description  *string             `json:"description,omitempty"`
	DepartmentID int64               `json:"departmentId"`
	Department   *DepartmentResponse `json:"department,omitempty"`
	Lecturers    []LecturerResponse  `json:"lecturers,omitempty"`
}

// FromCourse converts a course model to its response DTO
func FromCourse(course *models.Course) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}

	response := CourseResponse{
		ID:           course.ID,
		Name:         course.Name,
		Code:         course.Code,
		Classroom:    course.Classroom,
		Description:  course.Description,
		DepartmentID: course.DepartmentID,
	}
	if course.Department != nil {
		department := FromDepartment(course.Department)
		response.Department = &department
	}
	for i := range course.Lecturers {
		response.Lecturers = append(response.Lecturers, FromLecturer(&course.Lecturers[i]))
	}

	return response
}

// CourseListResponse represents a set of courses
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}
