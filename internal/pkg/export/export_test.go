package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Header: []string{"Student Name", "Email", "Status"},
		Rows: [][]string{
			{"Jane Doe", "jane@example.com", "present"},
			{"John Doe", "john@example.com", "not marked"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Student Name", "Email", "Status"}, records[0])
	assert.Equal(t, []string{"Jane Doe", "jane@example.com", "present"}, records[1])
	assert.Equal(t, []string{"John Doe", "john@example.com", "not marked"}, records[2])
}

func TestWriteCSVEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Table{Header: []string{"Student Name", "Email", "Status"}}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Attendance", sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Student Name", "Email", "Status"}, rows[0])
	assert.Equal(t, []string{"John Doe", "john@example.com", "not marked"}, rows[2])

	// The excelize default sheet must not survive.
	idx, err := f.GetSheetIndex("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}
