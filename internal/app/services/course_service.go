package services

import (
	"context"
	"strings"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/repositories"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
)

// CourseService handles course-related operations
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	departmentRepo *repositories.DepartmentRepository
	userRepo       *repositories.UserRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	departmentRepo *repositories.DepartmentRepository,
	userRepo *repositories.UserRepository,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
	}
}

func (s *CourseService) validateCourse(course *models.Course) error {
	if strings.TrimSpace(course.Name) == "" {
		return apperrors.NewValidationError("name cannot be empty").WithField("name")
	}
	code := strings.TrimSpace(course.Code)
	if code == "" {
		return apperrors.NewValidationError("code cannot be empty").WithField("code")
	}
	if code != strings.ToUpper(code) {
		return apperrors.NewValidationError("code must be uppercase").WithField("code")
	}
	if course.DepartmentID <= 0 {
		return apperrors.NewValidationError("department ID must be positive").WithField("departmentId")
	}
	return nil
}

// CreateCourse creates a new course
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}
	course.Name = strings.TrimSpace(course.Name)
	course.Code = strings.TrimSpace(course.Code)

	if _, err := s.departmentRepo.GetByID(ctx, course.DepartmentID); err != nil {
		return err
	}

	return s.courseRepo.Create(ctx, course)
}

// GetCourseByID retrieves a course with its department and lecturers.
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lecturers, err := s.courseRepo.GetLecturers(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Lecturers = lecturers

	return course, nil
}

// GetAllCourses retrieves courses, optionally filtered to one department.
func (s *CourseService) GetAllCourses(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx, departmentID)
}

// UpdateCourse updates a course's attributes
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}
	course.Name = strings.TrimSpace(course.Name)
	course.Code = strings.TrimSpace(course.Code)

	if _, err := s.departmentRepo.GetByID(ctx, course.DepartmentID); err != nil {
		return err
	}

	return s.courseRepo.Update(ctx, course)
}

// DeleteCourse deletes a course; enrollments and their attendance cascade.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}

// AssignLecturer adds a lecturer to a course's teaching staff. Assigning a
// lecturer already on the course is a no-op.
func (s *CourseService) AssignLecturer(ctx context.Context, courseID, lecturerID int64) error {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	return s.courseRepo.AssignLecturer(ctx, courseID, lecturerID)
}

// RemoveLecturer removes a lecturer from a course's teaching staff.
func (s *CourseService) RemoveLecturer(ctx context.Context, courseID, lecturerID int64) error {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	return s.courseRepo.RemoveLecturer(ctx, courseID, lecturerID)
}

// GetCoursesByLecturerUser retrieves the courses taught by the lecturer
// behind a user account.
func (s *CourseService) GetCoursesByLecturerUser(ctx context.Context, userID int64) ([]*models.Course, error) {
	lecturer, err := s.userRepo.GetLecturerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.GetByLecturer(ctx, lecturer.ID)
}
