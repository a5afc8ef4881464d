package services

import (
	"context"
	"strings"
	"time"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/repositories"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
)

// RecordService handles grades, achievements, disciplinary actions and
// lecturer notifications.
type RecordService struct {
	gradeRepo      *repositories.GradeRepository
	recordRepo     *repositories.RecordRepository
	enrollmentRepo *repositories.EnrollmentRepository
	userRepo       *repositories.UserRepository
}

// NewRecordService creates a new record service instance
func NewRecordService(
	gradeRepo *repositories.GradeRepository,
	recordRepo *repositories.RecordRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	userRepo *repositories.UserRepository,
) *RecordService {
	return &RecordService{
		gradeRepo:      gradeRepo,
		recordRepo:     recordRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
	}
}

// RecordGrade writes a grade for one subject within an enrollment. A grade
// already recorded for the same subject is overwritten.
func (s *RecordService) RecordGrade(ctx context.Context, enrollmentID int64, subjectName, gradeValue string) (*models.Grade, error) {
	subjectName = strings.TrimSpace(subjectName)
	gradeValue = strings.TrimSpace(gradeValue)
	if subjectName == "" {
		return nil, apperrors.NewValidationError("subject name cannot be empty").WithField("subjectName")
	}
	if gradeValue == "" {
		return nil, apperrors.NewValidationError("grade cannot be empty").WithField("grade")
	}

	if _, err := s.enrollmentRepo.GetByID(ctx, enrollmentID); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		EnrollmentID: enrollmentID,
		SubjectName:  subjectName,
		Grade:        gradeValue,
	}
	if err := s.gradeRepo.Upsert(ctx, grade); err != nil {
		return nil, err
	}

	return grade, nil
}

// ListGrades retrieves an enrollment's grades.
func (s *RecordService) ListGrades(ctx context.Context, enrollmentID int64) ([]*models.Grade, error) {
	if _, err := s.enrollmentRepo.GetByID(ctx, enrollmentID); err != nil {
		return nil, err
	}
	return s.gradeRepo.ListByEnrollment(ctx, enrollmentID)
}

// DeleteGrade removes one grade from an enrollment. The enrollment scoping
// prevents deleting another enrollment's grade through a guessed ID.
func (s *RecordService) DeleteGrade(ctx context.Context, enrollmentID, gradeID int64) error {
	grades, err := s.ListGrades(ctx, enrollmentID)
	if err != nil {
		return err
	}
	for _, grade := range grades {
		if grade.ID == gradeID {
			return s.gradeRepo.Delete(ctx, gradeID)
		}
	}
	return apperrors.ErrGradeNotFound
}

// AddAchievement appends an achievement to a student's record.
func (s *RecordService) AddAchievement(ctx context.Context, studentID int64, title, description string, dateAwarded time.Time) (*models.StudentAchievement, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.NewValidationError("title cannot be empty").WithField("title")
	}
	if _, err := s.userRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}

	achievement := &models.StudentAchievement{
		StudentID:   studentID,
		Title:       strings.TrimSpace(title),
		Description: description,
		DateAwarded: dateAwarded,
	}
	if err := s.recordRepo.CreateAchievement(ctx, achievement); err != nil {
		return nil, err
	}

	return achievement, nil
}

// ListAchievements retrieves a student's achievements, most recent first.
func (s *RecordService) ListAchievements(ctx context.Context, studentID int64) ([]*models.StudentAchievement, error) {
	if _, err := s.userRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.recordRepo.ListAchievements(ctx, studentID)
}

// AddDisciplinaryAction appends a disciplinary record for a student.
func (s *RecordService) AddDisciplinaryAction(ctx context.Context, studentID int64, action, description string, date time.Time) (*models.DisciplinaryAction, error) {
	if strings.TrimSpace(action) == "" {
		return nil, apperrors.NewValidationError("action cannot be empty").WithField("action")
	}
	if _, err := s.userRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}

	record := &models.DisciplinaryAction{
		StudentID:   studentID,
		Action:      strings.TrimSpace(action),
		Description: description,
		Date:        date,
	}
	if err := s.recordRepo.CreateDisciplinaryAction(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// ListDisciplinaryActions retrieves a student's disciplinary records.
func (s *RecordService) ListDisciplinaryActions(ctx context.Context, studentID int64) ([]*models.DisciplinaryAction, error) {
	if _, err := s.userRepo.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.recordRepo.ListDisciplinaryActions(ctx, studentID)
}

// SendNotification records a message from the lecturer behind a user account.
func (s *RecordService) SendNotification(ctx context.Context, userID int64, message string) (*models.Notification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("message cannot be empty").WithField("message")
	}

	lecturer, err := s.userRepo.GetLecturerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	notification := &models.Notification{
		LecturerID: lecturer.UserID,
		Message:    strings.TrimSpace(message),
	}
	if err := s.recordRepo.CreateNotification(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// ListNotifications retrieves the notifications of the lecturer behind a
// user account, with the unread count.
func (s *RecordService) ListNotifications(ctx context.Context, userID int64) ([]*models.Notification, int, error) {
	lecturer, err := s.userRepo.GetLecturerByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	notifications, err := s.recordRepo.ListNotifications(ctx, lecturer.UserID)
	if err != nil {
		return nil, 0, err
	}

	unread := 0
	for _, notification := range notifications {
		if !notification.IsRead {
			unread++
		}
	}

	return notifications, unread, nil
}

// MarkNotificationsRead flags all notifications of the lecturer behind a
// user account as read.
func (s *RecordService) MarkNotificationsRead(ctx context.Context, userID int64) error {
	lecturer, err := s.userRepo.GetLecturerByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.recordRepo.MarkNotificationsRead(ctx, lecturer.UserID)
}
