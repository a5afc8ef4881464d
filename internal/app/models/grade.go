package models

// Grade records a grade value for one subject within an enrollment.
// The natural key is (enrollment_id, subject_name); writes use upsert
// semantics like attendance.
type Grade struct {
	ID           int64  `json:"id" db:"id"`
	EnrollmentID int64  `json:"enrollmentId" db:"enrollment_id"`
	SubjectName  string `json:"subjectName" db:"subject_name"`
	Grade        string `json:"grade" db:"grade"`

	Enrollment *Enrollment `json:"enrollment,omitempty"` // Relation, no db tag
}
