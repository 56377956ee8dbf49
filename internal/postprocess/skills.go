package postprocess

import "strings"

// atsCategory is where backfilled keywords land on categorized skill sets.
const atsCategory = "Technologies"

// BackfillSkills injects every extracted hard skill the document does not
// already carry. Presence is a case-insensitive substring match in either
// direction, so "React" is satisfied by an existing "React Native" and
// "Amazon Web Services" is satisfied by "AWS (Amazon Web Services)".
// Categorized skill sets gain missing entries under the Technologies
// category; flat lists get them appended.
func BackfillSkills(doc *Document, hardSkills []string) {
	for _, skill := range hardSkills {
		skill = strings.TrimSpace(skill)
		if skill == "" || skillPresent(doc, skill) {
			continue
		}
		if doc.Skills.IsCategorized() {
			doc.Skills.AddToCategory(atsCategory, skill)
		} else {
			doc.Skills.Flat = append(doc.Skills.Flat, skill)
		}
	}
}

func skillPresent(doc *Document, skill string) bool {
	want := strings.ToLower(skill)
	for _, existing := range doc.Skills.All() {
		have := strings.ToLower(strings.TrimSpace(existing))
		if have == "" {
			continue
		}
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return true
		}
	}
	return false
}
