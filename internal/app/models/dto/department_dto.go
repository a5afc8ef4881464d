package dto

import (
	"github.com/edupoint/sis-backend/internal/app/models"
)

// DepartmentRequest represents department create/update data
type DepartmentRequest struct {
	Name string `json:"name" binding:"required" example:"Computer Science"`
}

// DepartmentResponse represents a department
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromDepartment converts a department model to its response DTO
func FromDepartment(department *models.Department) DepartmentResponse {
	if department == nil {
		return DepartmentResponse{}
	}
	return DepartmentResponse{
		ID:   department.ID,
		Name: department.Name,
	}
}

// DepartmentListResponse represents all departments
type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}
