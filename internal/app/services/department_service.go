package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/repositories"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
)

// DepartmentService handles department-related operations
type DepartmentService struct {
	departmentRepo *repositories.DepartmentRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo}
}

func (s *DepartmentService) validateDepartment(department *models.Department) error {
	if department == nil {
		return fmt.Errorf("%w: department is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(department.Name) == "" {
		return apperrors.NewValidationError("name cannot be empty").WithField("name")
	}
	return nil
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(department); err != nil {
		return err
	}
	department.Name = strings.TrimSpace(department.Name)
	return s.departmentRepo.Create(ctx, department)
}

// GetDepartmentByID retrieves a department by its ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// GetAllDepartments retrieves all departments ordered by name
func (s *DepartmentService) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// UpdateDepartment updates a department's name
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(department); err != nil {
		return err
	}
	department.Name = strings.TrimSpace(department.Name)
	return s.departmentRepo.Update(ctx, department)
}

// DeleteDepartment deletes a department. Deletion is refused while users or
// courses still reference it.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departmentRepo.Delete(ctx, id)
}
