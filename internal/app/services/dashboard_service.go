package services

import (
	"context"
	"time"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/repositories"
)

// DashboardService aggregates the role-specific landing summaries.
type DashboardService struct {
	userRepo       *repositories.UserRepository
	courseRepo     *repositories.CourseRepository
	enrollmentRepo *repositories.EnrollmentRepository
	attendanceRepo *repositories.AttendanceRepository
	gradeRepo      *repositories.GradeRepository
	recordRepo     *repositories.RecordRepository
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(
	userRepo *repositories.UserRepository,
	courseRepo *repositories.CourseRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	attendanceRepo *repositories.AttendanceRepository,
	gradeRepo *repositories.GradeRepository,
	recordRepo *repositories.RecordRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		attendanceRepo: attendanceRepo,
		gradeRepo:      gradeRepo,
		recordRepo:     recordRepo,
	}
}

// AdminDashboard carries the admin landing counts.
type AdminDashboard struct {
	TotalStudents  int64 `json:"totalStudents"`
	TotalLecturers int64 `json:"totalLecturers"`
	TotalCourses   int64 `json:"totalCourses"`
	TotalUsers     int64 `json:"totalUsers"`
}

// AdminSummary counts the system's students, lecturers, courses and users.
func (s *DashboardService) AdminSummary(ctx context.Context) (*AdminDashboard, error) {
	students, err := s.userRepo.CountByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	lecturers, err := s.userRepo.CountByRole(ctx, models.RoleLecturer)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalStudents:  students,
		TotalLecturers: lecturers,
		TotalCourses:   courses,
		TotalUsers:     users,
	}, nil
}

// CourseRoster is one course's student list with attendance percentages.
type CourseRoster struct {
	Course            *models.Course  `json:"course"`
	Students          []RosterStudent `json:"students"`
	AverageAttendance float64         `json:"averageAttendance"`
}

// RosterStudent is one enrolled student with their attendance percentage.
type RosterStudent struct {
	Enrollment *models.Enrollment `json:"enrollment"`
	Percentage float64            `json:"percentage"`
}

// LecturerDashboard is the lecturer landing summary.
type LecturerDashboard struct {
	Courses     []CourseRoster `json:"courses"`
	MarkedToday int            `json:"markedToday"`
}

// LecturerSummary builds per-course rosters with attendance percentages for
// the lecturer behind a user account, plus today's marked count.
func (s *DashboardService) LecturerSummary(ctx context.Context, userID int64) (*LecturerDashboard, error) {
	lecturer, err := s.userRepo.GetLecturerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.GetByLecturer(ctx, lecturer.ID)
	if err != nil {
		return nil, err
	}

	dashboard := &LecturerDashboard{Courses: make([]CourseRoster, 0, len(courses))}
	for _, course := range courses {
		enrollments, err := s.enrollmentRepo.List(ctx, repositories.EnrollmentFilter{CourseID: course.ID})
		if err != nil {
			return nil, err
		}

		roster := CourseRoster{Course: course, Students: make([]RosterStudent, 0, len(enrollments))}
		var sum float64
		for _, enrollment := range enrollments {
			present, total, err := s.attendanceRepo.CountByEnrollment(ctx, enrollment.ID)
			if err != nil {
				return nil, err
			}
			percentage := AttendancePercentage(present, total)
			sum += percentage
			roster.Students = append(roster.Students, RosterStudent{Enrollment: enrollment, Percentage: percentage})
		}
		if len(enrollments) > 0 {
			roster.AverageAttendance = roundTwoDecimals(sum / float64(len(enrollments)))
		}
		dashboard.Courses = append(dashboard.Courses, roster)
	}

	today := time.Now()
	marked, err := s.attendanceRepo.CountMarkedOnDate(ctx, truncateToDay(today))
	if err != nil {
		return nil, err
	}
	dashboard.MarkedToday = marked

	return dashboard, nil
}

// StudentCourseSummary is one enrollment's grades and attendance percentage.
type StudentCourseSummary struct {
	Enrollment *models.Enrollment `json:"enrollment"`
	Grades     []*models.Grade    `json:"grades"`
	Percentage float64            `json:"percentage"`
}

// StudentDashboard is the student landing summary.
type StudentDashboard struct {
	Student             *models.Student              `json:"student"`
	Courses             []StudentCourseSummary       `json:"courses"`
	DisciplinaryActions []*models.DisciplinaryAction `json:"disciplinaryActions"`
}

// StudentSummary builds the course, grade and attendance overview for the
// student behind a user account, touching their activity timestamp.
func (s *DashboardService) StudentSummary(ctx context.Context, userID int64) (*StudentDashboard, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.List(ctx, repositories.EnrollmentFilter{StudentID: student.ID})
	if err != nil {
		return nil, err
	}

	dashboard := &StudentDashboard{Student: student, Courses: make([]StudentCourseSummary, 0, len(enrollments))}
	for _, enrollment := range enrollments {
		grades, err := s.gradeRepo.ListByEnrollment(ctx, enrollment.ID)
		if err != nil {
			return nil, err
		}
		present, total, err := s.attendanceRepo.CountByEnrollment(ctx, enrollment.ID)
		if err != nil {
			return nil, err
		}
		dashboard.Courses = append(dashboard.Courses, StudentCourseSummary{
			Enrollment: enrollment,
			Grades:     grades,
			Percentage: AttendancePercentage(present, total),
		})
	}

	actions, err := s.recordRepo.ListDisciplinaryActions(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	dashboard.DisciplinaryActions = actions

	if err := s.userRepo.TouchStudentActivity(ctx, student.ID); err != nil {
		return nil, err
	}

	return dashboard, nil
}
