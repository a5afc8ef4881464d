package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent  RoleType = "STUDENT"
	RoleLecturer RoleType = "LECTURER"
	RoleAdmin    RoleType = "ADMIN"
)

// AttendanceStatus is the status recorded for one enrollment on one session.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusExcused AttendanceStatus = "excused"
)

// StatusNotMarked is the display sentinel for dates with no attendance record.
// It is never persisted.
const StatusNotMarked = "not marked"

// IsValidAttendanceStatus reports whether s is a recognized status value.
// Unrecognized values are rejected before persistence, never coerced.
func IsValidAttendanceStatus(s string) bool {
	switch AttendanceStatus(s) {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}

// Session is a sub-day slot for which attendance is tracked independently.
type Session string

const (
	SessionMorning Session = "morning"
	SessionEvening Session = "evening"
)

// IsValidSession reports whether s is a recognized session value.
func IsValidSession(s string) bool {
	switch Session(s) {
	case SessionMorning, SessionEvening:
		return true
	}
	return false
}

// Sessions lists the session slots in display order.
var Sessions = []Session{SessionMorning, SessionEvening}

// ReportPeriod selects the calendar bucket for attendance history reports.
type ReportPeriod string

const (
	PeriodDay   ReportPeriod = "day"
	PeriodWeek  ReportPeriod = "week"
	PeriodMonth ReportPeriod = "month"
)

// IsValidReportPeriod reports whether p is a recognized period value.
func IsValidReportPeriod(p string) bool {
	switch ReportPeriod(p) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}
