package postprocess

import (
	"regexp"
	"strings"
)

// buzzwordReplacements maps recruiting clichés to neutral phrasing. Applied
// in order across all prose fields, case-insensitively, matching whole
// words/phrases only.
var buzzwordReplacements = []struct {
	phrase      string
	replacement string
}{
	{"self-starter", "proactive professional"},
	{"attention to detail", "meticulous approach"},
	{"detail-oriented", "meticulous"},
	{"team player", "collaborative contributor"},
	{"go-getter", "driven professional"},
	{"think outside the box", "apply creative solutions"},
	{"results-driven", "outcome-focused"},
	{"hard-working", "dedicated"},
	{"go above and beyond", "exceed expectations"},
	{"synergy", "alignment"},
}

var buzzwordPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(buzzwordReplacements))
	for i, b := range buzzwordReplacements {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(b.phrase) + `\b`)
	}
	return patterns
}()

// skillBuzzwords are stripped outright from soft-skill listings rather than
// replaced.
var skillBuzzwords = map[string]bool{
	"team player":     true,
	"self-starter":    true,
	"go-getter":       true,
	"hard worker":     true,
	"hard-working":    true,
	"results-driven":  true,
	"detail-oriented": true,
	"people person":   true,
}

const softSkillsCategory = "Soft Skills"

// ReplaceBuzzwords rewrites clichés in the summary, experience summaries,
// and highlights, preserving the capitalization of each match, then strips
// known buzzword entries from the skills structure. An emptied Soft Skills
// category is removed entirely.
func ReplaceBuzzwords(doc *Document) {
	for _, t := range correctionTargets(doc) {
		for i, pattern := range buzzwordPatterns {
			replacement := buzzwordReplacements[i].replacement
			*t = pattern.ReplaceAllStringFunc(*t, func(match string) string {
				return matchCase(match, replacement)
			})
		}
	}
	stripSkillBuzzwords(doc)
}

func stripSkillBuzzwords(doc *Document) {
	if doc.Skills.IsCategorized() {
		entries, ok := doc.Skills.Categories[softSkillsCategory]
		if !ok {
			return
		}
		kept := entries[:0]
		for _, entry := range entries {
			if !skillBuzzwords[strings.ToLower(strings.TrimSpace(entry))] {
				kept = append(kept, entry)
			}
		}
		if len(kept) == 0 {
			doc.Skills.RemoveCategory(softSkillsCategory)
			return
		}
		doc.Skills.Categories[softSkillsCategory] = kept
		return
	}

	kept := doc.Skills.Flat[:0]
	for _, entry := range doc.Skills.Flat {
		if !skillBuzzwords[strings.ToLower(strings.TrimSpace(entry))] {
			kept = append(kept, entry)
		}
	}
	doc.Skills.Flat = kept
}
