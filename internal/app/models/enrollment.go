package models

import "time"

// Enrollment links one student to one course. The (student, course) pair is
// unique and the enrollment date is set at creation and never updated.
type Enrollment struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	CourseID     int64     `json:"courseId" db:"course_id"`
	DateEnrolled time.Time `json:"dateEnrolled" db:"date_enrolled"`

	Student *Student `json:"student,omitempty"` // Relation, no db tag
	Course  *Course  `json:"course,omitempty"`  // Relation, no db tag
}
