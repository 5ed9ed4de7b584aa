package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet used for spreadsheet output.
const SheetName = "training_data"

// WriteError reports that the finished table could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write training table %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IsSpreadsheet reports whether path should be written as .xlsx rather than CSV.
func IsSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// Write persists the table to path: .xlsx via excelize, anything else as CSV.
func (t *Table) Write(path string) error {
	var err error
	if IsSpreadsheet(path) {
		err = t.WriteXLSX(path)
	} else {
		err = t.writeCSVFile(path)
	}
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func (t *Table) writeCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes the header and every row as comma separated values.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	return nil
}

// WriteXLSX writes the table to a single worksheet, keeping numeric cells numeric.
func (t *Table) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	cols := t.Columns()
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, row := range t.rows {
		values := make([]interface{}, len(cols))
		for i, c := range cols {
			values[i] = cellValue(row[c])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string, bool, int, int32, int64, uint, uint32, uint64:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		return cellValue(float64(x))
	default:
		return FormatValue(x)
	}
}
