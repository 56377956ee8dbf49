package tailoring

import (
	"regexp"
	"strings"
)

// domainKeywords maps job-title substrings to the canonical role domain.
// Checked in order; multi-word entries come first so "full stack" beats any
// single-word match inside it.
var domainKeywords = []struct {
	keyword string
	domain  string
}{
	{"full stack", "Full Stack"},
	{"full-stack", "Full Stack"},
	{"shopify", "Shopify"},
	{"android", "Android"},
	{"ios", "iOS"},
	{"react", "React"},
	{"angular", "Angular"},
	{"vue", "Vue"},
	{"node", "Node"},
	{"python", "Python"},
	{"java", "Java"},
	{"frontend", "Frontend"},
	{"backend", "Backend"},
	{"devops", "DevOps"},
	{"cloud", "Cloud"},
}

var seniorityPrefixes = []string{"Senior", "Lead", "Principal", "Staff", "Junior", "Mid-level", "Mid"}

// InferDomain derives the role domain from an extracted job title. Known
// technology keywords win; otherwise the title minus its seniority prefixes
// is used as-is. An empty result means no domain could be inferred.
func InferDomain(jobTitle string) string {
	lower := strings.ToLower(jobTitle)
	for _, entry := range domainKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.domain
		}
	}

	words := strings.Fields(jobTitle)
	kept := words[:0]
	for _, w := range words {
		if !isSeniorityPrefix(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func isSeniorityPrefix(word string) bool {
	for _, p := range seniorityPrefixes {
		if strings.EqualFold(word, p) {
			return true
		}
	}
	return false
}

var yearsPattern = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*year`)

// fallbackHeadline builds a deterministic headline when generation fails:
// "<title> | <N>+ Years of Experience" using the year count parsed from the
// template summary, or the bare title when no count is found.
func fallbackHeadline(jobTitle, templateSummary string) string {
	m := yearsPattern.FindStringSubmatch(templateSummary)
	if m == nil {
		return jobTitle
	}
	return jobTitle + " | " + m[1] + "+ Years of Experience"
}

const headlineMaxLen = 80

// normalizeHeadline enforces the headline contract on model output: it must
// start with the literal job title and stay within the length cap. Overlong
// output is truncated at a word boundary.
func normalizeHeadline(headline, jobTitle string) string {
	if !strings.Contains(strings.ToLower(headline), strings.ToLower(jobTitle)) {
		headline = jobTitle + " | " + headline
	}
	if len(headline) <= headlineMaxLen {
		return headline
	}
	truncated := headline[:headlineMaxLen]
	if idx := strings.LastIndex(truncated, " "); idx > len(jobTitle) {
		truncated = truncated[:idx]
	}
	return strings.TrimRight(truncated, " |,-")
}
