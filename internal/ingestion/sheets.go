package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// sheetIDPatterns cover the Google Sheets URL shapes users paste: full
// spreadsheet URLs, legacy id= query strings, and bare /d/ links.
var sheetIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9-_]+)`),
	regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`),
}

// SheetFetchError is a failure to retrieve or parse one remote sheet. Scoped
// to that sheet only; other links in the same batch continue processing.
type SheetFetchError struct {
	URL   string
	Cause error
}

func (e *SheetFetchError) Error() string {
	return fmt.Sprintf("failed to fetch sheet %s: %v", e.URL, e.Cause)
}

func (e *SheetFetchError) Unwrap() error {
	return e.Cause
}

// ExtractSheetID pulls the spreadsheet ID out of a Google Sheets URL.
func ExtractSheetID(url string) (string, bool) {
	for _, p := range sheetIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// SheetFetcher retrieves publicly shared Google Sheets via their CSV export
// endpoint. The short timeout keeps one unreachable sheet from stalling a
// whole batch request.
type SheetFetcher struct {
	client *http.Client
}

// NewSheetFetcher returns a fetcher with the standard 10s timeout.
func NewSheetFetcher() *SheetFetcher {
	return &SheetFetcher{client: &http.Client{Timeout: 10 * time.Second}}
}

// Fetch downloads a sheet's first tab as CSV and parses it into rows. The
// sheet must be shared as "anyone with the link can view" and carry Title
// and Description columns.
func (f *SheetFetcher) Fetch(sheetURL string) ([]Row, error) {
	sheetID, ok := ExtractSheetID(sheetURL)
	if !ok {
		return nil, &SheetFetchError{URL: sheetURL, Cause: fmt.Errorf("could not extract spreadsheet ID")}
	}

	exportURL := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", sheetID)
	resp, err := f.client.Get(exportURL)
	if err != nil {
		return nil, &SheetFetchError{URL: sheetURL, Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &SheetFetchError{URL: sheetURL, Cause: fmt.Errorf("export returned status %d, is the sheet publicly shared?", resp.StatusCode)}
	}

	rows, err := parseCSV(resp.Body)
	if err != nil {
		return nil, &SheetFetchError{URL: sheetURL, Cause: err}
	}
	return rows, nil
}

func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	layout, ok := resolveColumns(header)
	if !ok {
		return nil, fmt.Errorf("sheet must have Title and Description columns")
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet row: %w", err)
		}
		row := layout.row(record)
		if strings.TrimSpace(row.Title) == "" || strings.TrimSpace(row.Description) == "" {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no valid rows found, sheet needs Title and Description data")
	}
	return rows, nil
}
