package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses and the
// course/lecturer assignment table.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (name, code, classroom, description, department_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		course.Name, course.Code, course.Classroom, course.Description, course.DepartmentID,
	).Scan(&course.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID with its department attached.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT c.id, c.name, c.code, c.classroom, c.description, c.department_id, d.name
		FROM courses c
		JOIN departments d ON c.department_id = d.id
		WHERE c.id = $1
	`

	var course models.Course
	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.Code,
		&course.Classroom,
		&course.Description,
		&course.DepartmentID,
		&department.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	department.ID = course.DepartmentID
	course.Department = &department
	return &course, nil
}

// GetAll retrieves all courses, optionally filtered by department.
func (r *CourseRepository) GetAll(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	query := `
		SELECT id, name, code, classroom, description, department_id
		FROM courses
	`
	args := []interface{}{}
	if departmentID > 0 {
		query += ` WHERE department_id = $1`
		args = append(args, departmentID)
	}
	query += ` ORDER BY code`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Code,
			&course.Classroom,
			&course.Description,
			&course.DepartmentID,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET name = $1, code = $2, classroom = $3, description = $4, department_id = $5
		WHERE id = $6`,
		course.Name, course.Code, course.Classroom, course.Description,
		course.DepartmentID, course.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course; its enrollments and their attendance cascade.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// AssignLecturer adds a lecturer to a course. Assigning twice is a no-op.
func (r *CourseRepository) AssignLecturer(ctx context.Context, courseID, lecturerID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO course_lecturers (course_id, lecturer_id)
		VALUES ($1, $2)
		ON CONFLICT (course_id, lecturer_id) DO NOTHING`,
		courseID, lecturerID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error assigning lecturer: %w", err)
	}
	return nil
}

// RemoveLecturer removes a lecturer from a course.
func (r *CourseRepository) RemoveLecturer(ctx context.Context, courseID, lecturerID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM course_lecturers WHERE course_id = $1 AND lecturer_id = $2`,
		courseID, lecturerID)
	if err != nil {
		return fmt.Errorf("error removing lecturer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetLecturers retrieves the lecturers assigned to a course with their users.
func (r *CourseRepository) GetLecturers(ctx context.Context, courseID int64) ([]models.Lecturer, error) {
	query := `
		SELECT l.id, l.user_id, u.email, u.first_name, u.last_name
		FROM course_lecturers cl
		JOIN lecturers l ON cl.lecturer_id = l.id
		JOIN users u ON l.user_id = u.id
		WHERE cl.course_id = $1
		ORDER BY u.last_name, u.first_name
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course lecturers: %w", err)
	}
	defer rows.Close()

	var lecturers []models.Lecturer
	for rows.Next() {
		var lecturer models.Lecturer
		var user models.User
		if err := rows.Scan(&lecturer.ID, &lecturer.UserID, &user.Email, &user.FirstName, &user.LastName); err != nil {
			return nil, err
		}
		user.ID = lecturer.UserID
		lecturer.User = &user
		lecturers = append(lecturers, lecturer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lecturers, nil
}

// GetByLecturer retrieves all courses taught by a lecturer.
func (r *CourseRepository) GetByLecturer(ctx context.Context, lecturerID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.name, c.code, c.classroom, c.description, c.department_id
		FROM course_lecturers cl
		JOIN courses c ON cl.course_id = c.id
		WHERE cl.lecturer_id = $1
		ORDER BY c.code
	`

	rows, err := r.db.Query(ctx, query, lecturerID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lecturer courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Code,
			&course.Classroom,
			&course.Description,
			&course.DepartmentID,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// LecturerTeaches reports whether the lecturer is assigned to the course.
func (r *CourseRepository) LecturerTeaches(ctx context.Context, courseID, lecturerID int64) (bool, error) {
	var teaches bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_lecturers WHERE course_id = $1 AND lecturer_id = $2)`,
		courseID, lecturerID).Scan(&teaches)
	if err != nil {
		return false, fmt.Errorf("error checking course assignment: %w", err)
	}
	return teaches, nil
}

// CountAll counts all courses for the admin dashboard.
func (r *CourseRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}
