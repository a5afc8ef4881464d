package models

import "time"

// Attendance is one recorded status for an enrollment on a date and session.
// The natural key (enrollment_id, date, session) is unique; records are
// written with upsert semantics and carry no further state transitions.
type Attendance struct {
	ID           int64            `json:"id" db:"id"`
	EnrollmentID int64            `json:"enrollmentId" db:"enrollment_id"`
	Date         time.Time        `json:"date" db:"date"`
	Session      Session          `json:"session" db:"session"`
	Status       AttendanceStatus `json:"status" db:"status"`
	Remarks      *string          `json:"remarks,omitempty" db:"remarks"`

	Enrollment *Enrollment `json:"enrollment,omitempty"` // Relation, no db tag
}
