package dataset

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Load reads a training table written by Write and returns its header and data rows.
// Rows are padded or truncated to the header width.
func Load(path string) ([]string, [][]string, error) {
	var (
		rows [][]string
		err  error
	)
	if IsSpreadsheet(path) {
		rows, err = loadXLSX(path)
	} else {
		rows, err = loadCSV(path)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no header row")
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		if len(r) < len(header) {
			padded := make([]string, len(header))
			copy(padded, r)
			r = padded
		}
		r = r[:len(header)]
		data = append(data, r)
	}
	return header, data, nil
}

func loadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

func loadXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}
