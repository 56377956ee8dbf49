package postprocess

import "strings"

// seniorityMarkers are the qualifiers that make a title read as senior-level.
var seniorityMarkers = []string{"Senior", "Lead", "Principal", "Staff"}

// strippablePrefixes additionally covers the junior/mid qualifiers removed
// when canonicalizing interior titles or deriving a domain.
var strippablePrefixes = []string{"Senior", "Lead", "Principal", "Staff", "Junior", "Mid-level", "Mid"}

// EnforceCareerProgression rewrites experience titles into a three-tier
// ladder keyed by list position: entry 0 (most recent) is senior-level, the
// last entry (oldest) is entry-level, and everything in between is mid-level
// with no seniority qualifier. Resumes with fewer than two entries are left
// untouched.
func EnforceCareerProgression(doc *Document, domain string) {
	if len(doc.Experience) < 2 {
		return
	}

	if domain == "" {
		domain = stripQualifiers(doc.Experience[0].Title)
	}
	base := baseTitle(domain)

	if !containsAnyMarker(doc.Experience[0].Title, seniorityMarkers) {
		doc.Experience[0].Title = "Senior " + base
	}

	// Only the four senior-level markers are stripped here: "Junior" is a
	// legitimate qualifier for the oldest entry.
	last := len(doc.Experience) - 1
	cleaned := stripMarkers(doc.Experience[last].Title)
	if domain != "" && !containsFold(cleaned, domain) {
		if len(doc.Experience) == 2 {
			doc.Experience[last].Title = base
		} else {
			doc.Experience[last].Title = "Junior " + base
		}
	} else {
		doc.Experience[last].Title = cleaned
	}

	for i := 1; i < last; i++ {
		cleaned := stripQualifiers(doc.Experience[i].Title)
		if domain != "" && !containsFold(cleaned, domain) {
			doc.Experience[i].Title = base
		} else {
			doc.Experience[i].Title = cleaned
		}
	}
}

// baseTitle canonicalizes a domain into a full role title.
func baseTitle(domain string) string {
	if domain == "" {
		return "Developer"
	}
	if containsFold(domain, "Developer") || containsFold(domain, "Engineer") {
		return domain
	}
	return domain + " Developer"
}

// stripQualifiers removes every seniority/junior/mid qualifier word from a
// title and collapses the remaining whitespace.
func stripQualifiers(title string) string {
	return stripWords(title, strippablePrefixes)
}

// stripMarkers removes only the senior-level markers.
func stripMarkers(title string) string {
	return stripWords(title, seniorityMarkers)
}

func stripWords(title string, drop []string) string {
	words := strings.Fields(title)
	kept := words[:0]
	for _, w := range words {
		if !wordIn(w, drop) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func wordIn(word string, set []string) bool {
	for _, q := range set {
		if strings.EqualFold(word, q) {
			return true
		}
	}
	return false
}

func containsAnyMarker(title string, markers []string) bool {
	for _, m := range markers {
		for _, w := range strings.Fields(title) {
			if strings.EqualFold(w, m) {
				return true
			}
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
