package ingestion

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var questionNumber = regexp.MustCompile(`\d+`)

// columnLayout resolves the Title/Description/QuestionN columns from a
// header row, case-insensitively. Question columns are ordered by their
// numeric suffix, so Question2 in column A still follows Question1.
type columnLayout struct {
	title       int
	description int
	questions   []int
}

func resolveColumns(header []string) (columnLayout, bool) {
	layout := columnLayout{title: -1, description: -1}
	type questionCol struct {
		index int
		order int
	}
	var qcols []questionCol

	for i, name := range header {
		name = strings.TrimSpace(name)
		lower := strings.ToLower(name)
		switch {
		case lower == "title":
			layout.title = i
		case lower == "description":
			layout.description = i
		case strings.HasPrefix(lower, "question") && lower != "question":
			order := 999
			if m := questionNumber.FindString(lower); m != "" {
				if n, err := strconv.Atoi(m); err == nil {
					order = n
				}
			}
			qcols = append(qcols, questionCol{index: i, order: order})
		}
	}

	sort.Slice(qcols, func(a, b int) bool { return qcols[a].order < qcols[b].order })
	for _, q := range qcols {
		layout.questions = append(layout.questions, q.index)
	}
	return layout, layout.title >= 0 && layout.description >= 0
}

func cell(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func (c columnLayout) row(record []string) Row {
	row := Row{
		Title:       cell(record, c.title),
		Description: cell(record, c.description),
	}
	for _, qi := range c.questions {
		if q := cell(record, qi); q != "" {
			row.Questions = append(row.Questions, q)
		}
	}
	return row
}
