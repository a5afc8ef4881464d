package models

import "time"

// StudentAchievement is an append-only award record owned by a student.
type StudentAchievement struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	DateAwarded time.Time `json:"dateAwarded" db:"date_awarded"`
}

// DisciplinaryAction is an append-only disciplinary record owned by a student.
type DisciplinaryAction struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	Action      string    `json:"action" db:"action"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
}

// Notification is the audit record kept when a lecturer sends a message.
type Notification struct {
	ID         int64     `json:"id" db:"id"`
	LecturerID int64     `json:"lecturerId" db:"lecturer_id"`
	Message    string    `json:"message" db:"message"`
	IsRead     bool      `json:"isRead" db:"is_read"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
