// Package ingestion turns uploaded spreadsheets and remote sheet links into
// batch job rows. Rows need a Title and a Description column; QuestionN
// columns are optional and collected in numeric order.
package ingestion

import (
	"strconv"
	"strings"

	"github.com/easyhired/resumer/internal/types"
)

// Row is one raw spreadsheet row before job construction.
type Row struct {
	Title       string
	Description string
	Questions   []string
}

// safeTitleMax caps slug length so per-row folder names stay manageable.
const safeTitleMax = 100

// SafeTitle converts a job title into a filesystem-safe slug: alphanumerics,
// dash, underscore, and dot survive, spaces become underscores, everything
// else is dropped. Two different titles can collide on the same slug; later
// rows then overwrite earlier ones, which is an accepted risk.
func SafeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	slug := strings.Trim(b.String(), "_")
	if len(slug) > safeTitleMax {
		slug = slug[:safeTitleMax]
	}
	return slug
}

// BuildJobs converts raw rows into batch jobs, skipping rows missing a title
// or description. Row numbers are 1-based over the input sequence, so a
// skipped row still consumes its number and errors map back to the
// spreadsheet.
func BuildJobs(rows []Row) []types.BatchJob {
	var jobs []types.BatchJob
	for i, row := range rows {
		title := strings.TrimSpace(row.Title)
		description := strings.TrimSpace(row.Description)
		if title == "" || description == "" {
			continue
		}

		questions := make([]string, 0, len(row.Questions))
		for _, q := range row.Questions {
			if q = strings.TrimSpace(q); q != "" {
				questions = append(questions, q)
			}
		}

		safe := SafeTitle(title)
		rowNumber := i + 1
		jobs = append(jobs, types.BatchJob{
			RowNumber:   rowNumber,
			Title:       title,
			Description: StripHTML(description),
			Questions:   questions,
			SafeTitle:   safe,
			FilePrefix:  safe + "_" + strconv.Itoa(rowNumber),
		})
	}
	return jobs
}
