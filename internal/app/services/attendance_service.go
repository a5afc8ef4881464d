package services

import (
	"context"
	"time"

	"github.com/edupoint/sis-backend/internal/app/auth"
	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/repositories"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/export"
	"github.com/edupoint/sis-backend/internal/pkg/logger"
)

// AttendanceService implements marking, aggregation and export of attendance.
type AttendanceService struct {
	attendanceRepo *repositories.AttendanceRepository
	enrollmentRepo *repositories.EnrollmentRepository
	courseRepo     *repositories.CourseRepository
	userRepo       *repositories.UserRepository
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(
	attendanceRepo *repositories.AttendanceRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	courseRepo *repositories.CourseRepository,
	userRepo *repositories.UserRepository,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		userRepo:       userRepo,
	}
}

// AuthorizeCourseAccess checks that the acting user may work with a course's
// attendance. Admins always may; lecturers only for courses they teach.
func (s *AttendanceService) AuthorizeCourseAccess(ctx context.Context, userID int64, role models.RoleType, courseID int64) error {
	if role == models.RoleAdmin {
		return nil
	}
	if !auth.Can(role, auth.ActionViewReports) {
		return apperrors.ErrPermissionDenied
	}

	lecturer, err := s.userRepo.GetLecturerByUserID(ctx, userID)
	if err != nil {
		return err
	}

	teaches, err := s.courseRepo.LecturerTeaches(ctx, courseID, lecturer.ID)
	if err != nil {
		return err
	}
	if !teaches {
		return apperrors.ErrPermissionDenied
	}

	return nil
}

// Mark records one attendance status. Re-marking the same (enrollment, date,
// session) overwrites the earlier record.
func (s *AttendanceService) Mark(ctx context.Context, enrollmentID int64, date time.Time, session, status string, remarks *string) (*models.Attendance, error) {
	if !models.IsValidAttendanceStatus(status) {
		return nil, apperrors.ErrInvalidAttendanceStatus
	}
	if !models.IsValidSession(session) {
		return nil, apperrors.ErrInvalidSession
	}

	record := &models.Attendance{
		EnrollmentID: enrollmentID,
		Date:         date,
		Session:      models.Session(session),
		Status:       models.AttendanceStatus(status),
		Remarks:      remarks,
	}
	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// MarkBulk records attendance for a whole course sitting in one transaction
// and returns the number of records written. Map entries with unrecognized
// statuses and enrollments missing from the map are skipped silently, so a
// partially filled register is a normal request, not an error.
func (s *AttendanceService) MarkBulk(ctx context.Context, courseID int64, date time.Time, session string, statuses map[int64]string) (int, error) {
	if !models.IsValidSession(session) {
		return 0, apperrors.ErrInvalidSession
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return 0, err
	}

	enrollments, err := s.enrollmentRepo.List(ctx, repositories.EnrollmentFilter{CourseID: courseID})
	if err != nil {
		return 0, err
	}

	records := BuildBulkRecords(enrollments, date, models.Session(session), statuses)

	written, err := s.attendanceRepo.BulkUpsert(ctx, records)
	if err != nil {
		return 0, err
	}

	logger.Info().
		Int64("courseId", courseID).
		Str("session", session).
		Int("written", written).
		Msg("Bulk attendance recorded")

	return written, nil
}

// Percentage returns an enrollment's attendance percentage, rounded to two
// decimals, with 0 for enrollments that have no records yet.
func (s *AttendanceService) Percentage(ctx context.Context, enrollmentID int64) (float64, error) {
	if _, err := s.enrollmentRepo.GetByID(ctx, enrollmentID); err != nil {
		return 0, err
	}

	present, total, err := s.attendanceRepo.CountByEnrollment(ctx, enrollmentID)
	if err != nil {
		return 0, err
	}

	return AttendancePercentage(present, total), nil
}

// History builds the per-student attendance matrix for a course over a day,
// Monday-aligned week or calendar month containing the reference date.
func (s *AttendanceService) History(ctx context.Context, courseID int64, period string, reference time.Time) ([]HistoryRow, time.Time, time.Time, error) {
	if !models.IsValidReportPeriod(period) {
		return nil, time.Time{}, time.Time{}, apperrors.ErrInvalidReportPeriod
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	from, to, err := PeriodRange(models.ReportPeriod(period), reference)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	enrollments, err := s.enrollmentRepo.List(ctx, repositories.EnrollmentFilter{CourseID: courseID})
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	records, err := s.attendanceRepo.ListByCourseRange(ctx, courseID, from, to)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	return BuildHistory(enrollments, records, from, to), from, to, nil
}

// ExportDaily projects one date's attendance for a course into a table ready
// for CSV or XLSX rendering, along with the course for filename purposes.
func (s *AttendanceService) ExportDaily(ctx context.Context, courseID int64, date time.Time) (export.Table, *models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return export.Table{}, nil, err
	}

	enrollments, err := s.enrollmentRepo.List(ctx, repositories.EnrollmentFilter{CourseID: courseID})
	if err != nil {
		return export.Table{}, nil, err
	}

	records, err := s.attendanceRepo.ListByCourseDate(ctx, courseID, date)
	if err != nil {
		return export.Table{}, nil, err
	}

	return BuildDailyExportTable(enrollments, records, date), course, nil
}

// AttendanceSummary totals an enrollment's records by outcome.
type AttendanceSummary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Total   int `json:"total"`
}

// StudentDetail returns an enrollment's attendance records, optionally
// filtered to a date range, together with a present/absent/total summary.
func (s *AttendanceService) StudentDetail(ctx context.Context, enrollmentID int64, from, to *time.Time) ([]*models.Attendance, AttendanceSummary, error) {
	if _, err := s.enrollmentRepo.GetByID(ctx, enrollmentID); err != nil {
		return nil, AttendanceSummary{}, err
	}

	rangeFrom := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeTo := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if from != nil {
		rangeFrom = *from
	}
	if to != nil {
		rangeTo = *to
	}
	if rangeTo.Before(rangeFrom) {
		return nil, AttendanceSummary{}, apperrors.ErrInvalidDate
	}

	records, err := s.attendanceRepo.ListByEnrollmentRange(ctx, enrollmentID, rangeFrom, rangeTo)
	if err != nil {
		return nil, AttendanceSummary{}, err
	}

	var summary AttendanceSummary
	for _, record := range records {
		summary.Total++
		switch record.Status {
		case models.StatusPresent:
			summary.Present++
		case models.StatusAbsent:
			summary.Absent++
		}
	}

	return records, summary, nil
}
