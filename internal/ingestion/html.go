package ingestion

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagPattern = regexp.MustCompile(`(?i)<\s*(p|div|br|ul|li|span|h[1-6]|strong|em|b|i)\b`)

// looksLikeHTML reports whether a pasted job description carries markup
// worth stripping. Plain text with a stray angle bracket is left alone.
func looksLikeHTML(text string) bool {
	return htmlTagPattern.MatchString(text)
}

// StripHTML flattens an HTML job description to plain text. Job boards hand
// users rich-text postings; the prompts work better without the markup.
// Non-HTML input and unparseable input pass through unchanged.
func StripHTML(description string) string {
	if !looksLikeHTML(description) {
		return description
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return description
	}
	text := doc.Text()
	// Collapse the whitespace runs left behind by removed tags.
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
