package services

import (
	"math"
	"time"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/export"
	"github.com/edupoint/sis-backend/internal/pkg/helpers"
)

// The aggregation logic below is deliberately pure: it takes enrollments,
// records and an explicit date range, so reports can be unit tested without
// a database.

// PeriodRange resolves a report period and reference date to an inclusive
// [from, to] date range. Weeks are Monday-aligned; a month runs from its
// first day through the day before the first of the next month.
func PeriodRange(period models.ReportPeriod, reference time.Time) (time.Time, time.Time, error) {
	day := truncateToDay(reference)

	switch period {
	case models.PeriodDay:
		return day, day, nil
	case models.PeriodWeek:
		// time.Weekday numbers Sunday as 0; shift so Monday is the origin.
		offset := (int(day.Weekday()) + 6) % 7
		from := day.AddDate(0, 0, -offset)
		return from, from.AddDate(0, 0, 6), nil
	case models.PeriodMonth:
		from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		to := from.AddDate(0, 1, 0).AddDate(0, 0, -1)
		return from, to, nil
	}

	return time.Time{}, time.Time{}, apperrors.ErrInvalidReportPeriod
}

// DatesInRange expands an inclusive [from, to] range into its ordered days.
func DatesInRange(from, to time.Time) []time.Time {
	from = truncateToDay(from)
	to = truncateToDay(to)

	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// AttendancePercentage computes the present ratio as a percentage rounded to
// two decimals. An enrollment with no records reports 0, not an error.
func AttendancePercentage(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*10000) / 100
}

// SessionCell is one session's status within a history row, with the
// display sentinel substituted for missing records.
type SessionCell struct {
	Session models.Session `json:"session"`
	Status  string         `json:"status"`
}

// HistoryDay is one date's per-session statuses for one enrollment.
type HistoryDay struct {
	Date     time.Time     `json:"date"`
	Sessions []SessionCell `json:"sessions"`
}

// HistoryRow is one enrollment's ordered day-by-day attendance history.
type HistoryRow struct {
	Enrollment *models.Enrollment `json:"enrollment"`
	Days       []HistoryDay       `json:"days"`
}

type recordKey struct {
	enrollmentID int64
	date         string
	session      models.Session
}

// dayKey renders a date as its plain calendar day. Record dates scanned from
// DATE columns arrive as UTC midnight while reference dates carry the server
// zone; time.Time map keys compare location as well as instant, so slots are
// keyed on the formatted day instead.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func indexRecords(records []*models.Attendance) map[recordKey]*models.Attendance {
	index := make(map[recordKey]*models.Attendance, len(records))
	for _, record := range records {
		index[recordKey{record.EnrollmentID, dayKey(record.Date), record.Session}] = record
	}
	return index
}

// BuildHistory assembles the history matrix for a set of enrollments over an
// inclusive date range. Every (date, session) slot appears for every
// enrollment; slots with no record carry the "not marked" sentinel.
func BuildHistory(enrollments []*models.Enrollment, records []*models.Attendance, from, to time.Time) []HistoryRow {
	dates := DatesInRange(from, to)
	index := indexRecords(records)

	rows := make([]HistoryRow, 0, len(enrollments))
	for _, enrollment := range enrollments {
		days := make([]HistoryDay, 0, len(dates))
		for _, date := range dates {
			cells := make([]SessionCell, 0, len(models.Sessions))
			for _, session := range models.Sessions {
				status := models.StatusNotMarked
				if record, ok := index[recordKey{enrollment.ID, dayKey(date), session}]; ok {
					status = string(record.Status)
				}
				cells = append(cells, SessionCell{Session: session, Status: status})
			}
			days = append(days, HistoryDay{Date: date, Sessions: cells})
		}
		rows = append(rows, HistoryRow{Enrollment: enrollment, Days: days})
	}

	return rows
}

// BuildBulkRecords pairs a course's enrollments with a submitted status map.
// Enrollments absent from the map and entries with unrecognized statuses are
// skipped; map keys that match no enrollment never produce a record.
func BuildBulkRecords(enrollments []*models.Enrollment, date time.Time, session models.Session, statuses map[int64]string) []*models.Attendance {
	var records []*models.Attendance
	for _, enrollment := range enrollments {
		status, ok := statuses[enrollment.ID]
		if !ok || !models.IsValidAttendanceStatus(status) {
			continue
		}
		records = append(records, &models.Attendance{
			EnrollmentID: enrollment.ID,
			Date:         date,
			Session:      session,
			Status:       models.AttendanceStatus(status),
		})
	}
	return records
}

// BuildDailyExportTable projects one date's attendance into the export
// layout: one row per enrollment, in the order the enrollments were queried,
// with "not marked" for students without a record. Records for either
// session count; morning wins when both exist.
func BuildDailyExportTable(enrollments []*models.Enrollment, records []*models.Attendance, date time.Time) export.Table {
	index := indexRecords(records)
	day := dayKey(date)

	table := export.Table{Header: []string{"Student Name", "Email", "Status"}}
	for _, enrollment := range enrollments {
		status := models.StatusNotMarked
		for _, session := range models.Sessions {
			if record, ok := index[recordKey{enrollment.ID, day, session}]; ok {
				status = string(record.Status)
				break
			}
		}

		var name, email string
		if enrollment.Student != nil && enrollment.Student.User != nil {
			name = enrollment.Student.User.FullName()
			email = enrollment.Student.User.Email
		}
		table.Rows = append(table.Rows, []string{name, email, status})
	}

	return table
}

// ExportFilename builds the attendance export filename from the course code
// and date, e.g. "attendance_CS101_02-01-2006.csv".
func ExportFilename(courseCode string, date time.Time, extension string) string {
	return "attendance_" + courseCode + "_" + helpers.FormatDisplayDate(date) + "." + extension
}

func roundTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
