// Package postprocess applies deterministic corrective passes to a tailored
// resume after generation. The model is not reliably guaranteed to satisfy
// structural and stylistic invariants (career-progression ordering, verb
// diversity, inline-markup conventions), so each pass enforces one of them.
// Every pass is idempotent: running the full chain twice produces no further
// changes.
package postprocess

import (
	"strings"
	"unicode"

	"github.com/easyhired/resumer/internal/types"
)

// Document is the tailored resume the passes operate on.
type Document = types.Resume

// Context carries the upstream-computed inputs the passes need.
type Context struct {
	// Headline overwrites the document headline when non-empty.
	Headline string
	// Domain is the role specialization inferred from the job title
	// ("Shopify", "Full Stack"). May be empty; career-progression
	// enforcement then derives it from the most recent title.
	Domain string
	// HardSkills are the ATS keywords extracted from the job description,
	// backfilled into the skills structure when missing.
	HardSkills []string
}

// Apply runs every corrective pass in its required order. Bold normalization
// runs last so any markdown markup introduced earlier is still caught.
func Apply(doc *Document, pctx Context) {
	InjectHeadline(doc, pctx.Headline)
	RepairAddress(doc)
	EnforceCareerProgression(doc, pctx.Domain)
	BackfillSkills(doc, pctx.HardSkills)
	RepairVerbRepetition(doc)
	RepairDuplicateWords(doc)
	ReplaceBuzzwords(doc)
	NormalizeBold(doc)
}

// InjectHeadline unconditionally overwrites the headline when one was
// computed upstream.
func InjectHeadline(doc *Document, headline string) {
	if headline != "" {
		doc.Headline = headline
	}
}

// matchCase reshapes replacement to mirror the capitalization of the token
// it replaces: all-caps stays all-caps, a leading capital is preserved.
func matchCase(original, replacement string) string {
	if original == strings.ToUpper(original) && strings.ContainsFunc(original, unicode.IsLetter) {
		return strings.ToUpper(replacement)
	}
	first := []rune(original)
	if len(first) > 0 && unicode.IsUpper(first[0]) {
		runes := []rune(replacement)
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	}
	return replacement
}

// correctionTargets returns pointers to every prose field the text passes
// rewrite, in document order: the top-level summary, then each experience
// entry's summary followed by its highlights.
func correctionTargets(doc *Document) []*string {
	targets := []*string{&doc.Summary}
	for i := range doc.Experience {
		targets = append(targets, &doc.Experience[i].Summary)
		for j := range doc.Experience[i].Highlights {
			targets = append(targets, &doc.Experience[i].Highlights[j])
		}
	}
	return targets
}
