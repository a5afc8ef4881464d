package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/edupoint/sis-backend/internal/app/models"
	appRepos "github.com/edupoint/sis-backend/internal/app/repositories"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@sis.local"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData creates default departments and the bootstrap admin
// account if they don't exist. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Departments/Admin)...")
	var finalErr error

	for _, name := range []string{"Computer Science", "Mathematics", "Physics"} {
		dept := &appModels.Department{Name: name}
		if err := departmentRepo.Create(ctx, dept); err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("department", name).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		return errors.Join(finalErr, err)
	}
	if exists {
		return finalErr
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Email:     defaultAdminEmail,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Administrator",
		Role:      appModels.RoleAdmin,
		IsStaff:   true,
		IsActive:  true,
	}
	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return errors.Join(finalErr, err)
	}

	lgr.Warn().Str("email", defaultAdminEmail).Msg("Default admin account created, change its password immediately")
	return finalErr
}
