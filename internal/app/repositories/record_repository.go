package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/dberrors"
)

// RecordRepository handles database operations for achievements, disciplinary
// actions and notifications. All three are append-only logs.
type RecordRepository struct {
	db *pgxpool.Pool
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{db: db}
}

// CreateAchievement appends an achievement record for a student.
func (r *RecordRepository) CreateAchievement(ctx context.Context, achievement *models.StudentAchievement) error {
	query := `
		INSERT INTO student_achievements (student_id, title, description, date_awarded)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		achievement.StudentID,
		achievement.Title,
		achievement.Description,
		achievement.DateAwarded,
	).Scan(&achievement.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating achievement: %w", err)
	}

	return nil
}

// ListAchievements retrieves a student's achievements, most recent first.
func (r *RecordRepository) ListAchievements(ctx context.Context, studentID int64) ([]*models.StudentAchievement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, title, description, date_awarded
		FROM student_achievements
		WHERE student_id = $1
		ORDER BY date_awarded DESC, id DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing achievements: %w", err)
	}
	defer rows.Close()

	var achievements []*models.StudentAchievement
	for rows.Next() {
		var achievement models.StudentAchievement
		if err := rows.Scan(
			&achievement.ID,
			&achievement.StudentID,
			&achievement.Title,
			&achievement.Description,
			&achievement.DateAwarded,
		); err != nil {
			return nil, err
		}
		achievements = append(achievements, &achievement)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return achievements, nil
}

// CreateDisciplinaryAction appends a disciplinary record for a student.
func (r *RecordRepository) CreateDisciplinaryAction(ctx context.Context, action *models.DisciplinaryAction) error {
	query := `
		INSERT INTO disciplinary_actions (student_id, action, description, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		action.StudentID,
		action.Action,
		action.Description,
		action.Date,
	).Scan(&action.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating disciplinary action: %w", err)
	}

	return nil
}

// ListDisciplinaryActions retrieves a student's disciplinary records, most
// recent first.
func (r *RecordRepository) ListDisciplinaryActions(ctx context.Context, studentID int64) ([]*models.DisciplinaryAction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, action, description, date
		FROM disciplinary_actions
		WHERE student_id = $1
		ORDER BY date DESC, id DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing disciplinary actions: %w", err)
	}
	defer rows.Close()

	var actions []*models.DisciplinaryAction
	for rows.Next() {
		var action models.DisciplinaryAction
		if err := rows.Scan(
			&action.ID,
			&action.StudentID,
			&action.Action,
			&action.Description,
			&action.Date,
		); err != nil {
			return nil, err
		}
		actions = append(actions, &action)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return actions, nil
}

// CreateNotification records a message sent by a lecturer.
func (r *RecordRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (lecturer_id, message)
		VALUES ($1, $2)
		RETURNING id, is_read, created_at
	`

	err := r.db.QueryRow(ctx, query, notification.LecturerID, notification.Message).Scan(
		&notification.ID,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrLecturerNotFound
		}
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// ListNotifications retrieves a lecturer's notifications, most recent first.
func (r *RecordRepository) ListNotifications(ctx context.Context, lecturerID int64) ([]*models.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, lecturer_id, message, is_read, created_at
		FROM notifications
		WHERE lecturer_id = $1
		ORDER BY created_at DESC, id DESC`,
		lecturerID)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var notification models.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.LecturerID,
			&notification.Message,
			&notification.IsRead,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, &notification)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkNotificationsRead flags all of a lecturer's notifications as read.
func (r *RecordRepository) MarkNotificationsRead(ctx context.Context, lecturerID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE lecturer_id = $1`, lecturerID)
	if err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}

	return nil
}
