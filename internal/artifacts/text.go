package artifacts

import (
	"sort"
	"strings"

	"github.com/easyhired/resumer/internal/types"
)

// ToText converts a tailored resume into a plain-text rendition, one section
// per block. Contact lines are sorted by key so output is deterministic.
func ToText(doc *types.Resume) string {
	var lines []string

	lines = append(lines, doc.Name)
	if doc.Headline != "" {
		lines = append(lines, doc.Headline)
	}

	keys := make([]string, 0, len(doc.Contact))
	for k := range doc.Contact {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, k+": "+doc.Contact[k])
	}

	lines = append(lines, "----")
	lines = append(lines, "SUMMARY", doc.Summary, "")

	if len(doc.References) > 0 {
		lines = append(lines, "PROFESSIONAL REFERENCES")
		for _, ref := range doc.References {
			lines = append(lines, ref.Name+" - Link: "+ref.Link)
		}
		lines = append(lines, "")
	}

	lines = append(lines, "EXPERIENCE")
	for _, exp := range doc.Experience {
		lines = append(lines, exp.Title+" at "+exp.Company)
		if exp.Period != "" {
			lines = append(lines, exp.Period)
		}
		if len(exp.Skills) > 0 {
			lines = append(lines, "Skills: "+strings.Join(exp.Skills, ", "))
		}
		if exp.Summary != "" {
			lines = append(lines, exp.Summary)
		}
		for _, h := range exp.Highlights {
			lines = append(lines, "• "+h)
		}
		lines = append(lines, "")
	}

	lines = append(lines, "EDUCATION")
	for _, edu := range doc.Education.Items {
		lines = append(lines, edu.Degree+" - "+edu.University)
		if edu.Period != "" {
			lines = append(lines, edu.Period)
		}
		if edu.Description != "" {
			lines = append(lines, edu.Description)
		}
	}

	return strings.Join(lines, "\n")
}
