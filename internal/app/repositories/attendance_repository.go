package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/db"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/dberrors"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceUpsertQuery = `
	INSERT INTO attendance (enrollment_id, date, session, status, remarks)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (enrollment_id, date, session)
	DO UPDATE SET status = EXCLUDED.status, remarks = EXCLUDED.remarks
	RETURNING id
`

// Upsert writes one attendance record. A record already present for the same
// (enrollment, date, session) is overwritten in place; marking is idempotent
// and re-marking is a correction, never an error.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.Attendance) error {
	err := r.db.QueryRow(ctx, attendanceUpsertQuery,
		record.EnrollmentID,
		record.Date,
		record.Session,
		record.Status,
		record.Remarks,
	).Scan(&record.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEnrollmentNotFound
		}
		return fmt.Errorf("error upserting attendance record: %w", err)
	}

	return nil
}

// BulkUpsert writes a batch of attendance records inside a single transaction
// and returns how many rows were written. Either the whole batch lands or
// none of it does.
func (r *AttendanceRepository) BulkUpsert(ctx context.Context, records []*models.Attendance) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	written := 0
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, record := range records {
			err := tx.QueryRow(ctx, attendanceUpsertQuery,
				record.EnrollmentID,
				record.Date,
				record.Session,
				record.Status,
				record.Remarks,
			).Scan(&record.ID)
			if err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrEnrollmentNotFound
				}
				return fmt.Errorf("error upserting attendance record: %w", err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return written, nil
}

// CountByEnrollment returns the present and total record counts for an
// enrollment. Percentages are computed from these integers by the caller.
func (r *AttendanceRepository) CountByEnrollment(ctx context.Context, enrollmentID int64) (present int, total int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*)
		FROM attendance
		WHERE enrollment_id = $1`,
		enrollmentID, models.StatusPresent).Scan(&present, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting attendance records: %w", err)
	}

	return present, total, nil
}

// ListByEnrollmentRange retrieves an enrollment's records with dates in
// [from, to], both inclusive, ordered by date then session.
func (r *AttendanceRepository) ListByEnrollmentRange(ctx context.Context, enrollmentID int64, from, to time.Time) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, enrollment_id, date, session, status, remarks
		FROM attendance
		WHERE enrollment_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, session`,
		enrollmentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance records: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// ListByCourseRange retrieves every record for a course with dates in
// [from, to], both inclusive. Used to build history matrices and exports
// covering the whole class.
func (r *AttendanceRepository) ListByCourseRange(ctx context.Context, courseID int64, from, to time.Time) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.enrollment_id, a.date, a.session, a.status, a.remarks
		FROM attendance a
		JOIN enrollments e ON a.enrollment_id = e.id
		WHERE e.course_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.enrollment_id, a.date, a.session`,
		courseID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing course attendance: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// ListByCourseDate retrieves a course's records for one date across sessions.
func (r *AttendanceRepository) ListByCourseDate(ctx context.Context, courseID int64, date time.Time) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.enrollment_id, a.date, a.session, a.status, a.remarks
		FROM attendance a
		JOIN enrollments e ON a.enrollment_id = e.id
		WHERE e.course_id = $1 AND a.date = $2
		ORDER BY a.enrollment_id, a.session`,
		courseID, date)
	if err != nil {
		return nil, fmt.Errorf("error listing course attendance: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// CountMarkedOnDate returns how many attendance rows exist for a date across
// all courses. Feeds the admin dashboard's "marked today" figure.
func (r *AttendanceRepository) CountMarkedOnDate(ctx context.Context, date time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM attendance WHERE date = $1`, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting attendance records: %w", err)
	}

	return count, nil
}

func scanAttendanceRows(rows pgx.Rows) ([]*models.Attendance, error) {
	var records []*models.Attendance
	for rows.Next() {
		var record models.Attendance
		if err := rows.Scan(
			&record.ID,
			&record.EnrollmentID,
			&record.Date,
			&record.Session,
			&record.Status,
			&record.Remarks,
		); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
