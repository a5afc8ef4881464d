package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/dberrors"
)

// GradeRepository handles database operations for grades
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

// Upsert writes a grade for one subject within an enrollment. An existing
// grade for the same (enrollment, subject) pair is overwritten in place.
func (r *GradeRepository) Upsert(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (enrollment_id, subject_name, grade)
		VALUES ($1, $2, $3)
		ON CONFLICT (enrollment_id, subject_name)
		DO UPDATE SET grade = EXCLUDED.grade
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, grade.EnrollmentID, grade.SubjectName, grade.Grade).Scan(&grade.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEnrollmentNotFound
		}
		return fmt.Errorf("error upserting grade: %w", err)
	}

	return nil
}

// ListByEnrollment retrieves an enrollment's grades ordered by subject name.
func (r *GradeRepository) ListByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.Grade, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, enrollment_id, subject_name, grade
		FROM grades
		WHERE enrollment_id = $1
		ORDER BY subject_name`,
		enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		var grade models.Grade
		if err := rows.Scan(&grade.ID, &grade.EnrollmentID, &grade.SubjectName, &grade.Grade); err != nil {
			return nil, err
		}
		grades = append(grades, &grade)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// Delete removes one grade row.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
