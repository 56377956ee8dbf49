package ingestion

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadExcel parses the first sheet of an uploaded .xlsx workbook into rows.
// The header row must carry Title and Description columns; QuestionN columns
// are optional.
func ReadExcel(r io.Reader) ([]Row, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	layout, ok := resolveColumns(records[0])
	if !ok {
		return nil, fmt.Errorf("workbook must have Title and Description columns")
	}

	var rows []Row
	for _, record := range records[1:] {
		row := layout.row(record)
		if strings.TrimSpace(row.Title) == "" || strings.TrimSpace(row.Description) == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
