package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/sis-backend/internal/app/repositories"
)

func TestBuildLecturerDirectoryTable(t *testing.T) {
	phone := "+90 555 000 0000"
	department := "Computer Science"
	empty := ""

	rows := []repositories.LecturerDirectoryRow{
		{
			FullName:       "Jane Doe",
			Email:          "jane@example.com",
			PhoneNumber:    &phone,
			DepartmentName: &department,
			Courses:        []string{"Algorithms", "Operating Systems"},
		},
		{
			FullName: "John Doe",
			Email:    "john@example.com",
			// No phone, department or courses on record.
		},
		{
			FullName:       "Mary Doe",
			Email:          "mary@example.com",
			PhoneNumber:    &empty,
			DepartmentName: &empty,
		},
	}

	table := BuildLecturerDirectoryTable(rows)

	assert.Equal(t, []string{"Name", "Email", "Phone", "Department", "Courses"}, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"Jane Doe", "jane@example.com", phone, department, "Algorithms; Operating Systems"}, table.Rows[0])
	assert.Equal(t, []string{"John Doe", "john@example.com", "-", "-", "-"}, table.Rows[1])
	assert.Equal(t, []string{"Mary Doe", "mary@example.com", "-", "-", "-"}, table.Rows[2])
}

func TestBuildLecturerDirectoryTableEmpty(t *testing.T) {
	table := BuildLecturerDirectoryTable(nil)
	assert.Equal(t, []string{"Name", "Email", "Phone", "Department", "Courses"}, table.Header)
	assert.Empty(t, table.Rows)
}
