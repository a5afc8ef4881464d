package services

import (
	"context"
	"errors"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/repositories"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
)

// EnrollmentService maintains the student-course enrollment ledger.
type EnrollmentService struct {
	enrollmentRepo *repositories.EnrollmentRepository
	courseRepo     *repositories.CourseRepository
	userRepo       *repositories.UserRepository
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	enrollmentRepo *repositories.EnrollmentRepository,
	courseRepo *repositories.CourseRepository,
	userRepo *repositories.UserRepository,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		userRepo:       userRepo,
	}
}

// Enroll links a student to a course. The enrollment date is stamped by the
// database and never changes; enrolling twice fails with ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if _, err := s.userRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	// The unique constraint is the backstop for concurrent requests.
	_, lookupErr := s.enrollmentRepo.GetByStudentAndCourse(ctx, studentID, courseID)
	if err := enrollGuard(lookupErr); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{StudentID: studentID, CourseID: courseID}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// enrollGuard turns the duplicate-lookup outcome into the Enroll decision.
// A found enrollment is a conflict; only a missing one lets Enroll proceed.
func enrollGuard(lookupErr error) error {
	if lookupErr == nil {
		return apperrors.ErrAlreadyEnrolled
	}
	if !errors.Is(lookupErr, apperrors.ErrEnrollmentNotFound) {
		return lookupErr
	}
	return nil
}

// GetEnrollmentByID retrieves an enrollment with its student and course.
func (s *EnrollmentService) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	return s.enrollmentRepo.GetByID(ctx, id)
}

// ListEnrollments retrieves enrollments matching the filter.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, filter repositories.EnrollmentFilter) ([]*models.Enrollment, error) {
	return s.enrollmentRepo.List(ctx, filter)
}

// ListByStudentUser retrieves the enrollments of the student behind a user
// account and touches the student's activity timestamp.
func (s *EnrollmentService) ListByStudentUser(ctx context.Context, userID int64) ([]*models.Enrollment, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.List(ctx, repositories.EnrollmentFilter{StudentID: student.ID})
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.TouchStudentActivity(ctx, student.ID); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// Unenroll removes an enrollment; its attendance and grades go with it.
func (s *EnrollmentService) Unenroll(ctx context.Context, id int64) error {
	return s.enrollmentRepo.Delete(ctx, id)
}

// StudentOwnsEnrollment reports whether the student behind a user account
// owns the given enrollment.
func (s *EnrollmentService) StudentOwnsEnrollment(ctx context.Context, userID int64, enrollment *models.Enrollment) (bool, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return enrollment.StudentID == student.ID, nil
}
