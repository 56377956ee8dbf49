package postprocess

import "regexp"

// quantifiedPattern matches any token that makes a bullet read as measured:
// digits, percent/currency signs, spelled-out magnitudes, or time units.
var quantifiedPattern = regexp.MustCompile(`(?i)\d|%|\$|€|£|\bpercent\b|\b(?:hundred|thousand|million|billion|dozen)s?\b|\b(?:hour|day|week|month|quarter|year)s?\b`)

// UnquantifiedHighlights returns every highlight bullet lacking a numeric,
// percentage, currency, time-unit, or count token. Detection only: numbers
// cannot be fabricated locally, so no corrective rewrite is attempted.
// Callers may log the result to flag bullets worth a manual pass.
func UnquantifiedHighlights(doc *Document) []string {
	var flagged []string
	for _, entry := range doc.Experience {
		for _, h := range entry.Highlights {
			if !quantifiedPattern.MatchString(h) {
				flagged = append(flagged, h)
			}
		}
	}
	return flagged
}
