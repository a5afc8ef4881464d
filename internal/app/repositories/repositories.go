package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	DepartmentRepository *DepartmentRepository
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
	AttendanceRepository *AttendanceRepository
	GradeRepository      *GradeRepository
	RecordRepository     *RecordRepository
	TokenRepository      *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		CourseRepository:     NewCourseRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		GradeRepository:      NewGradeRepository(db),
		RecordRepository:     NewRecordRepository(db),
		TokenRepository:      NewTokenRepository(db),
	}
}
