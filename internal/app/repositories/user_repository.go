package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/dberrors"
)

const userColumns = `id, email, password, first_name, last_name, phone_number, address,
	role, department_id, is_staff, is_active, date_joined, last_login_at`

// UserRepository handles database operations for users and their
// student/lecturer profile rows.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Address,
		&user.Role,
		&user.DepartmentID,
		&user.IsStaff,
		&user.IsActive,
		&user.DateJoined,
		&user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a user row and returns its ID.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (email, password, first_name, last_name, phone_number, address,
			role, department_id, is_staff, is_active, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName,
		user.PhoneNumber, user.Address, user.Role, user.DepartmentID,
		user.IsStaff, user.IsActive, time.Now(),
	).Scan(&user.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return user.ID, nil
}

// CreateStudent creates a user with the STUDENT role and its profile row in
// one transaction.
func (r *UserRepository) CreateStudent(ctx context.Context, user *models.User, student *models.Student) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	user.Role = models.RoleStudent
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, phone_number, address,
			role, department_id, is_staff, is_active, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, TRUE, $9)
		RETURNING id`,
		user.Email, user.Password, user.FirstName, user.LastName,
		user.PhoneNumber, user.Address, user.Role, user.DepartmentID, time.Now(),
	).Scan(&user.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating student user: %w", err)
	}

	student.UserID = user.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO students (user_id, registration_no, date_of_birth, emergency_contact)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		student.UserID, student.RegistrationNo, student.DateOfBirth, student.EmergencyContact,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_registration_no_key") {
			return apperrors.ErrRegistrationNoAlreadyUsed
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}

	return tx.Commit(ctx)
}

// CreateLecturer creates a user with the LECTURER role and its profile row in
// one transaction.
func (r *UserRepository) CreateLecturer(ctx context.Context, user *models.User, lecturer *models.Lecturer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	user.Role = models.RoleLecturer
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, phone_number, address,
			role, department_id, is_staff, is_active, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, TRUE, $9)
		RETURNING id`,
		user.Email, user.Password, user.FirstName, user.LastName,
		user.PhoneNumber, user.Address, user.Role, user.DepartmentID, time.Now(),
	).Scan(&user.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating lecturer user: %w", err)
	}

	lecturer.UserID = user.ID
	err = tx.QueryRow(ctx,
		`INSERT INTO lecturers (user_id) VALUES ($1) RETURNING id`,
		lecturer.UserID,
	).Scan(&lecturer.ID)
	if err != nil {
		return fmt.Errorf("error creating lecturer profile: %w", err)
	}

	return tx.Commit(ctx)
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return user, nil
}

// EmailExists checks whether an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// ListByRole retrieves users with the given role, ordered by last then first
// name, with pagination.
func (r *UserRepository) ListByRole(ctx context.Context, role models.RoleType, offset uint64, limit int) ([]*models.User, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1 AND is_active`, role).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE role = $1 AND is_active
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3`, userColumns)

	rows, err := r.db.Query(ctx, query, role, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateProfile updates the mutable profile fields of a user.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, phone_number = $3, address = $4
		WHERE id = $5`,
		user.FirstName, user.LastName, user.PhoneNumber, user.Address, user.ID)
	if err != nil {
		return fmt.Errorf("error updating user profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// Deactivate soft-deletes a user by clearing the active flag. Accounts are
// never hard-deleted.
func (r *UserRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// RecordLogin stamps the last login time.
func (r *UserRepository) RecordLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error recording login: %w", err)
	}
	return nil
}

// GetStudentByUserID retrieves the student profile owned by a user.
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `
		SELECT id, user_id, registration_no, date_of_birth, emergency_contact, latest_activity
		FROM students
		WHERE user_id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&student.ID,
		&student.UserID,
		&student.RegistrationNo,
		&student.DateOfBirth,
		&student.EmergencyContact,
		&student.LatestActivity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetStudentByID retrieves a student profile with its user attached.
func (r *UserRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.registration_no, s.date_of_birth, s.emergency_contact, s.latest_activity,
			u.id, u.email, u.first_name, u.last_name, u.phone_number, u.address,
			u.role, u.department_id, u.is_active, u.date_joined
		FROM students s
		JOIN users u ON s.user_id = u.id
		WHERE s.id = $1
	`

	var student models.Student
	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.UserID,
		&student.RegistrationNo,
		&student.DateOfBirth,
		&student.EmergencyContact,
		&student.LatestActivity,
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Address,
		&user.Role,
		&user.DepartmentID,
		&user.IsActive,
		&user.DateJoined,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	student.User = &user
	return &student, nil
}

// GetLecturerByUserID retrieves the lecturer profile owned by a user.
func (r *UserRepository) GetLecturerByUserID(ctx context.Context, userID int64) (*models.Lecturer, error) {
	var lecturer models.Lecturer
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id FROM lecturers WHERE user_id = $1`, userID).Scan(
		&lecturer.ID,
		&lecturer.UserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLecturerNotFound
		}
		return nil, fmt.Errorf("error retrieving lecturer: %w", err)
	}

	return &lecturer, nil
}

// TouchStudentActivity stamps the latest activity time on a student profile.
func (r *UserRepository) TouchStudentActivity(ctx context.Context, studentID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE students SET latest_activity = $1 WHERE id = $2`, time.Now(), studentID)
	if err != nil {
		return fmt.Errorf("error updating student activity: %w", err)
	}
	return nil
}

// CountByRole counts active users per role for the admin dashboard.
func (r *UserRepository) CountByRole(ctx context.Context, role models.RoleType) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1 AND is_active`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users by role: %w", err)
	}
	return count, nil
}

// CountAll counts all active users.
func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// LecturerDirectoryRow is one row of the lecturer directory export.
type LecturerDirectoryRow struct {
	FullName       string
	Email          string
	PhoneNumber    *string
	DepartmentName *string
	Courses        []string
}

// ListLecturerDirectory returns the lecturer directory with department and
// taught-course names, ordered by last then first name.
func (r *UserRepository) ListLecturerDirectory(ctx context.Context) ([]LecturerDirectoryRow, error) {
	query := `
		SELECT TRIM(u.first_name || ' ' || u.last_name), u.email, u.phone_number, d.name,
			COALESCE(ARRAY_AGG(c.name ORDER BY c.name) FILTER (WHERE c.id IS NOT NULL), '{}')
		FROM lecturers l
		JOIN users u ON l.user_id = u.id
		LEFT JOIN departments d ON u.department_id = d.id
		LEFT JOIN course_lecturers cl ON cl.lecturer_id = l.id
		LEFT JOIN courses c ON cl.course_id = c.id
		WHERE u.is_active
		GROUP BY u.id, d.name
		ORDER BY u.last_name, u.first_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing lecturer directory: %w", err)
	}
	defer rows.Close()

	var directory []LecturerDirectoryRow
	for rows.Next() {
		var row LecturerDirectoryRow
		if err := rows.Scan(&row.FullName, &row.Email, &row.PhoneNumber, &row.DepartmentName, &row.Courses); err != nil {
			return nil, err
		}
		directory = append(directory, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return directory, nil
}
