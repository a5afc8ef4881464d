package services

import (
	"context"
	"strings"
	"time"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/repositories"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/auth"
	"github.com/edupoint/sis-backend/internal/pkg/export"
	"github.com/edupoint/sis-backend/internal/pkg/logger"
)

// UserService handles account provisioning, profiles and user listings.
type UserService struct {
	userRepo       *repositories.UserRepository
	departmentRepo *repositories.DepartmentRepository
	tokenRepo      *repositories.TokenRepository
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo *repositories.UserRepository,
	departmentRepo *repositories.DepartmentRepository,
	tokenRepo *repositories.TokenRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		tokenRepo:      tokenRepo,
	}
}

// NewUserInput carries the account fields shared by student and lecturer
// provisioning.
type NewUserInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	PhoneNumber  *string
	Address      *string
	DepartmentID *int64
}

func (s *UserService) validateNewUser(input NewUserInput) error {
	if strings.TrimSpace(input.Email) == "" {
		return apperrors.NewValidationError("email cannot be empty").WithField("email")
	}
	if len(input.Password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters").WithField("password")
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return apperrors.NewValidationError("first name cannot be empty").WithField("firstName")
	}
	if strings.TrimSpace(input.LastName) == "" {
		return apperrors.NewValidationError("last name cannot be empty").WithField("lastName")
	}
	return nil
}

func (s *UserService) buildUser(ctx context.Context, input NewUserInput, role models.RoleType) (*models.User, error) {
	if err := s.validateNewUser(input); err != nil {
		return nil, err
	}

	if input.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *input.DepartmentID); err != nil {
			return nil, err
		}
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Password:     hashed,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		Role:         role,
		DepartmentID: input.DepartmentID,
		IsStaff:      role != models.RoleStudent,
		IsActive:     true,
	}, nil
}

// CreateStudent provisions a student account with its profile row.
func (s *UserService) CreateStudent(ctx context.Context, input NewUserInput, registrationNo string, dateOfBirth *time.Time, emergencyContact *string) (*models.Student, error) {
	if strings.TrimSpace(registrationNo) == "" {
		return nil, apperrors.NewValidationError("registration number cannot be empty").WithField("registrationNo")
	}

	user, err := s.buildUser(ctx, input, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		RegistrationNo:   strings.TrimSpace(registrationNo),
		DateOfBirth:      dateOfBirth,
		EmergencyContact: emergencyContact,
	}
	if err := s.userRepo.CreateStudent(ctx, user, student); err != nil {
		return nil, err
	}
	student.User = user

	logger.Info().Int64("userId", user.ID).Str("registrationNo", student.RegistrationNo).Msg("Student account created")
	return student, nil
}

// CreateLecturer provisions a lecturer account with its profile row.
func (s *UserService) CreateLecturer(ctx context.Context, input NewUserInput) (*models.Lecturer, error) {
	user, err := s.buildUser(ctx, input, models.RoleLecturer)
	if err != nil {
		return nil, err
	}

	lecturer := &models.Lecturer{}
	if err := s.userRepo.CreateLecturer(ctx, user, lecturer); err != nil {
		return nil, err
	}
	lecturer.User = user

	logger.Info().Int64("userId", user.ID).Msg("Lecturer account created")
	return lecturer, nil
}

// CreateAdmin provisions an admin account. Used by seeding and by admins
// creating further admins.
func (s *UserService) CreateAdmin(ctx context.Context, input NewUserInput) (*models.User, error) {
	user, err := s.buildUser(ctx, input, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves one user.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

// GetStudentByID retrieves one student profile with its user.
func (s *UserService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.userRepo.GetStudentByID(ctx, id)
}

// GetStudentByUserID retrieves the student profile behind a user account.
func (s *UserService) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.userRepo.GetStudentByUserID(ctx, userID)
}

// ListUsersByRole retrieves a page of users holding one role.
func (s *UserService) ListUsersByRole(ctx context.Context, role models.RoleType, offset uint64, limit int) ([]*models.User, int64, error) {
	return s.userRepo.ListByRole(ctx, role, offset, limit)
}

// UpdateProfile updates a user's mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User) error {
	if strings.TrimSpace(user.FirstName) == "" {
		return apperrors.NewValidationError("first name cannot be empty").WithField("firstName")
	}
	if strings.TrimSpace(user.LastName) == "" {
		return apperrors.NewValidationError("last name cannot be empty").WithField("lastName")
	}
	return s.userRepo.UpdateProfile(ctx, user)
}

// DeactivateUser soft-deletes an account and revokes its refresh tokens.
func (s *UserService) DeactivateUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	return s.tokenRepo.RevokeUserTokens(ctx, id)
}

// LecturerDirectoryTable projects the lecturer directory into the export
// layout used by the directory download.
func (s *UserService) LecturerDirectoryTable(ctx context.Context) (export.Table, error) {
	rows, err := s.userRepo.ListLecturerDirectory(ctx)
	if err != nil {
		return export.Table{}, err
	}

	return BuildLecturerDirectoryTable(rows), nil
}

// BuildLecturerDirectoryTable renders directory rows into the export layout.
// Missing phone numbers, departments and course lists render as "-".
func BuildLecturerDirectoryTable(rows []repositories.LecturerDirectoryRow) export.Table {
	table := export.Table{Header: []string{"Name", "Email", "Phone", "Department", "Courses"}}
	for _, row := range rows {
		phone := "-"
		if row.PhoneNumber != nil && *row.PhoneNumber != "" {
			phone = *row.PhoneNumber
		}
		department := "-"
		if row.DepartmentName != nil && *row.DepartmentName != "" {
			department = *row.DepartmentName
		}
		courses := "-"
		if len(row.Courses) > 0 {
			courses = strings.Join(row.Courses, "; ")
		}
		table.Rows = append(table.Rows, []string{
			row.FullName,
			row.Email,
			phone,
			department,
			courses,
		})
	}

	return table
}
