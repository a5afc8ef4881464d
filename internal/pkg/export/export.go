// Package export renders row-oriented report data as downloadable files.
// The data is a pure projection prepared by the services; nothing here
// queries storage.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Table is a header row plus data rows, already formatted as display strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// WriteCSV writes the table as CSV to w.
func WriteCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the table as a single-sheet xlsx workbook to w.
func WriteXLSX(w io.Writer, sheetName string, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	// Drop the default sheet created by excelize
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	if err := writeXLSXRow(f, sheetName, 1, table.Header); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := writeXLSXRow(f, sheetName, i+2, row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeXLSXRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write sheet row: %w", err)
	}
	return nil
}
