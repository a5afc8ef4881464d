package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodRange(t *testing.T) {
	tests := []struct {
		name      string
		period    models.ReportPeriod
		reference time.Time
		wantFrom  time.Time
		wantTo    time.Time
		wantErr   error
	}{
		{
			name:      "day keeps the reference date",
			period:    models.PeriodDay,
			reference: time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC),
			wantFrom:  date(2024, time.March, 15),
			wantTo:    date(2024, time.March, 15),
		},
		{
			name:      "week starts on Monday",
			period:    models.PeriodWeek,
			reference: date(2024, time.March, 14), // Thursday
			wantFrom:  date(2024, time.March, 11),
			wantTo:    date(2024, time.March, 17),
		},
		{
			name:      "week from a Sunday reference",
			period:    models.PeriodWeek,
			reference: date(2024, time.March, 17), // Sunday
			wantFrom:  date(2024, time.March, 11),
			wantTo:    date(2024, time.March, 17),
		},
		{
			name:      "week from a Monday reference",
			period:    models.PeriodWeek,
			reference: date(2024, time.March, 11),
			wantFrom:  date(2024, time.March, 11),
			wantTo:    date(2024, time.March, 17),
		},
		{
			name:      "month covers a leap February",
			period:    models.PeriodMonth,
			reference: date(2024, time.February, 10),
			wantFrom:  date(2024, time.February, 1),
			wantTo:    date(2024, time.February, 29),
		},
		{
			name:      "month covers December",
			period:    models.PeriodMonth,
			reference: date(2023, time.December, 31),
			wantFrom:  date(2023, time.December, 1),
			wantTo:    date(2023, time.December, 31),
		},
		{
			name:      "unknown period is rejected",
			period:    models.ReportPeriod("quarter"),
			reference: date(2024, time.March, 15),
			wantErr:   apperrors.ErrInvalidReportPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := PeriodRange(tt.period, tt.reference)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestDatesInRange(t *testing.T) {
	dates := DatesInRange(date(2024, time.February, 27), date(2024, time.March, 2))
	require.Len(t, dates, 5)
	assert.Equal(t, date(2024, time.February, 27), dates[0])
	assert.Equal(t, date(2024, time.February, 29), dates[2])
	assert.Equal(t, date(2024, time.March, 2), dates[4])

	single := DatesInRange(date(2024, time.March, 1), date(2024, time.March, 1))
	require.Len(t, single, 1)

	assert.Empty(t, DatesInRange(date(2024, time.March, 2), date(2024, time.March, 1)))
}

func TestAttendancePercentage(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		want    float64
	}{
		{name: "no records yields zero", present: 0, total: 0, want: 0},
		{name: "full attendance", present: 10, total: 10, want: 100},
		{name: "never present", present: 0, total: 8, want: 0},
		{name: "two thirds rounds to two decimals", present: 2, total: 3, want: 66.67},
		{name: "one third rounds down", present: 1, total: 3, want: 33.33},
		{name: "exact half", present: 1, total: 2, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttendancePercentage(tt.present, tt.total))
		})
	}
}

func testEnrollment(id int64, name, email string) *models.Enrollment {
	first := name
	return &models.Enrollment{
		ID: id,
		Student: &models.Student{
			User: &models.User{FirstName: first, LastName: "Doe", Email: email},
		},
	}
}

func TestBuildHistory(t *testing.T) {
	enrollments := []*models.Enrollment{
		testEnrollment(1, "Jane", "jane@example.com"),
		testEnrollment(2, "John", "john@example.com"),
	}
	day := date(2024, time.March, 11)
	records := []*models.Attendance{
		{EnrollmentID: 1, Date: day, Session: models.SessionMorning, Status: models.StatusPresent},
		{EnrollmentID: 1, Date: day.AddDate(0, 0, 1), Session: models.SessionEvening, Status: models.StatusLate},
	}

	rows := BuildHistory(enrollments, records, day, day.AddDate(0, 0, 1))
	require.Len(t, rows, 2)

	jane := rows[0]
	require.Len(t, jane.Days, 2)
	require.Len(t, jane.Days[0].Sessions, 2)
	assert.Equal(t, string(models.StatusPresent), jane.Days[0].Sessions[0].Status)
	assert.Equal(t, models.StatusNotMarked, jane.Days[0].Sessions[1].Status)
	assert.Equal(t, models.StatusNotMarked, jane.Days[1].Sessions[0].Status)
	assert.Equal(t, string(models.StatusLate), jane.Days[1].Sessions[1].Status)

	// No records at all: every slot carries the sentinel.
	john := rows[1]
	for _, d := range john.Days {
		for _, cell := range d.Sessions {
			assert.Equal(t, models.StatusNotMarked, cell.Status)
		}
	}
}

func TestBuildHistoryNonUTCReference(t *testing.T) {
	// Database DATE values scan as UTC midnight; the reference arrives in
	// whatever zone the server runs in. The same calendar day must match.
	eat := time.FixedZone("EAT", 3*60*60)
	reference := time.Date(2024, time.March, 11, 9, 30, 0, 0, eat)

	from, to, err := PeriodRange(models.PeriodDay, reference)
	require.NoError(t, err)

	enrollments := []*models.Enrollment{testEnrollment(1, "Jane", "jane@example.com")}
	records := []*models.Attendance{
		{EnrollmentID: 1, Date: date(2024, time.March, 11), Session: models.SessionMorning, Status: models.StatusPresent},
	}

	rows := BuildHistory(enrollments, records, from, to)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Days, 1)
	require.Len(t, rows[0].Days[0].Sessions, 2)
	assert.Equal(t, string(models.StatusPresent), rows[0].Days[0].Sessions[0].Status)
	assert.Equal(t, models.StatusNotMarked, rows[0].Days[0].Sessions[1].Status)
}

func TestBuildBulkRecords(t *testing.T) {
	enrollments := []*models.Enrollment{
		testEnrollment(1, "Jane", "jane@example.com"),
		testEnrollment(2, "John", "john@example.com"),
		testEnrollment(3, "Mary", "mary@example.com"),
	}
	day := date(2024, time.March, 11)

	statuses := map[int64]string{
		1:  string(models.StatusPresent),
		2:  "attended", // unrecognized, skipped
		99: string(models.StatusAbsent), // no such enrollment
	}

	records := BuildBulkRecords(enrollments, day, models.SessionMorning, statuses)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].EnrollmentID)
	assert.Equal(t, models.StatusPresent, records[0].Status)
	assert.Equal(t, models.SessionMorning, records[0].Session)
	assert.Equal(t, day, records[0].Date)

	// Enrollment 3 has no map entry at all and produces nothing either.
	assert.Empty(t, BuildBulkRecords(enrollments, day, models.SessionEvening, map[int64]string{}))
}

func TestBuildDailyExportTable(t *testing.T) {
	enrollments := []*models.Enrollment{
		testEnrollment(1, "Jane", "jane@example.com"),
		testEnrollment(2, "John", "john@example.com"),
		testEnrollment(3, "Mary", "mary@example.com"),
	}
	day := date(2024, time.March, 11)
	records := []*models.Attendance{
		// Both sessions recorded: the morning status wins.
		{EnrollmentID: 1, Date: day, Session: models.SessionMorning, Status: models.StatusPresent},
		{EnrollmentID: 1, Date: day, Session: models.SessionEvening, Status: models.StatusAbsent},
		{EnrollmentID: 2, Date: day, Session: models.SessionEvening, Status: models.StatusExcused},
		// Different date, must not leak into this day's export.
		{EnrollmentID: 3, Date: day.AddDate(0, 0, -1), Session: models.SessionMorning, Status: models.StatusPresent},
	}

	table := BuildDailyExportTable(enrollments, records, day)
	assert.Equal(t, []string{"Student Name", "Email", "Status"}, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"Jane Doe", "jane@example.com", "present"}, table.Rows[0])
	assert.Equal(t, []string{"John Doe", "john@example.com", "excused"}, table.Rows[1])
	assert.Equal(t, []string{"Mary Doe", "mary@example.com", "not marked"}, table.Rows[2])
}

func TestExportFilename(t *testing.T) {
	got := ExportFilename("CS101", date(2024, time.March, 5), "csv")
	assert.Equal(t, "attendance_CS101_05-03-2024.csv", got)

	got = ExportFilename("MATH201", date(2024, time.December, 25), "xlsx")
	assert.Equal(t, "attendance_MATH201_25-12-2024.xlsx", got)
}
