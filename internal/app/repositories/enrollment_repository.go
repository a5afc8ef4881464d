package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/dberrors"
)

// EnrollmentFilter narrows List queries. Zero values are ignored.
type EnrollmentFilter struct {
	StudentID    int64
	CourseID     int64
	DepartmentID int64
}

// EnrollmentRepository handles database operations for the enrollment ledger
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an enrollment stamped with the current date. The unique
// (student, course) constraint detects duplicates; there is no pre-read.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id, date_enrolled)
		VALUES ($1, $2, CURRENT_DATE)
		RETURNING id, date_enrolled
	`

	err := r.db.QueryRow(ctx, query, enrollment.StudentID, enrollment.CourseID).Scan(
		&enrollment.ID,
		&enrollment.DateEnrolled,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_course_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByID retrieves an enrollment with its student (and user) and course.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.date_enrolled,
			s.registration_no, u.id, u.email, u.first_name, u.last_name,
			c.name, c.code, c.department_id
		FROM enrollments e
		JOIN students s ON e.student_id = s.id
		JOIN users u ON s.user_id = u.id
		JOIN courses c ON e.course_id = c.id
		WHERE e.id = $1
	`

	var enrollment models.Enrollment
	var student models.Student
	var user models.User
	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.DateEnrolled,
		&student.RegistrationNo,
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&course.Name,
		&course.Code,
		&course.DepartmentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	student.ID = enrollment.StudentID
	student.UserID = user.ID
	student.User = &user
	course.ID = enrollment.CourseID
	enrollment.Student = &student
	enrollment.Course = &course
	return &enrollment, nil
}

// List retrieves enrollments matching the filter, with students and courses
// attached, ordered by enrollment ID (the natural query order used by the
// attendance engine and exports).
func (r *EnrollmentRepository) List(ctx context.Context, filter EnrollmentFilter) ([]*models.Enrollment, error) {
	baseSelect := r.sb.Select(
		"DISTINCT e.id", "e.student_id", "e.course_id", "e.date_enrolled",
		"s.registration_no",
		"u.id", "u.email", "u.first_name", "u.last_name",
		"c.name", "c.code", "c.department_id",
	).
		From("enrollments e").
		Join("students s ON e.student_id = s.id").
		Join("users u ON s.user_id = u.id").
		Join("courses c ON e.course_id = c.id").
		OrderBy("e.id")

	whereCondition := squirrel.And{}
	if filter.StudentID > 0 {
		whereCondition = append(whereCondition, squirrel.Eq{"e.student_id": filter.StudentID})
	}
	if filter.CourseID > 0 {
		whereCondition = append(whereCondition, squirrel.Eq{"e.course_id": filter.CourseID})
	}
	if filter.DepartmentID > 0 {
		whereCondition = append(whereCondition, squirrel.Eq{"c.department_id": filter.DepartmentID})
	}
	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
	}

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var student models.Student
		var user models.User
		var course models.Course
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.DateEnrolled,
			&student.RegistrationNo,
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&course.Name,
			&course.Code,
			&course.DepartmentID,
		); err != nil {
			return nil, err
		}
		student.ID = enrollment.StudentID
		student.UserID = user.ID
		student.User = &user
		course.ID = enrollment.CourseID
		enrollment.Student = &student
		enrollment.Course = &course
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// GetByStudentAndCourse retrieves the enrollment linking a student to a course.
func (r *EnrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, course_id, date_enrolled
		FROM enrollments
		WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.DateEnrolled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// Delete removes the enrollment row directly; attendance and grades cascade.
// There is no richer unenroll workflow.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
