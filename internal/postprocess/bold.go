package postprocess

import "regexp"

var markdownBold = regexp.MustCompile(`\*\*(.+?)\*\*`)

// NormalizeBold converts every markdown **bold** span in the document to an
// HTML <strong> tag, non-greedily so adjacent spans stay separate. The
// renderer only understands <strong>, and models occasionally slip back into
// markdown despite prompt instructions. Must run after every other pass so
// no later substitution can reintroduce asterisks.
func NormalizeBold(doc *Document) {
	doc.VisitStrings(func(s string) string {
		return markdownBold.ReplaceAllString(s, "<strong>$1</strong>")
	})
}
