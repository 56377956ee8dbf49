package postprocess

import (
	"regexp"
	"sort"
	"strings"
)

// verbSynonyms maps each tracked resume verb to its replacement rotation.
// None of the alternatives is itself a tracked verb, so a substitution can
// never push another verb over the cap.
var verbSynonyms = map[string][]string{
	"analyzed":     {"assessed", "evaluated", "examined", "investigated"},
	"built":        {"assembled", "engineered", "constructed", "forged"},
	"collaborated": {"partnered", "cooperated", "teamed", "liaised"},
	"created":      {"authored", "devised", "established", "formed"},
	"delivered":    {"shipped", "provided", "completed", "furnished"},
	"designed":     {"architected", "modeled", "planned", "shaped"},
	"developed":    {"engineered", "crafted", "constructed", "produced"},
	"implemented":  {"deployed", "executed", "integrated", "instituted"},
	"improved":     {"enhanced", "optimized", "refined", "strengthened"},
	"increased":    {"boosted", "grew", "raised", "expanded"},
	"launched":     {"released", "introduced", "unveiled", "initiated"},
	"led":          {"headed", "spearheaded", "guided", "drove"},
	"maintained":   {"sustained", "supported", "preserved", "upheld"},
	"managed":      {"directed", "oversaw", "supervised", "orchestrated"},
	"reduced":      {"decreased", "cut", "minimized", "lowered"},
	"worked":       {"operated", "contributed", "served", "engaged"},
}

// trackedVerbs is the deterministic iteration order over verbSynonyms.
var trackedVerbs = func() []string {
	verbs := make([]string, 0, len(verbSynonyms))
	for v := range verbSynonyms {
		verbs = append(verbs, v)
	}
	// Map order is random; fix it so repeated runs substitute identically.
	sort.Strings(verbs)
	return verbs
}()

var verbPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(verbSynonyms))
	for v := range verbSynonyms {
		patterns[v] = regexp.MustCompile(`(?i)\b` + v + `\b`)
	}
	return patterns
}()

// RepairVerbRepetition caps every tracked verb at two whole-word occurrences
// across the document's prose (top summary, experience summaries, and
// highlights, in that order). The first two occurrences are kept; each
// further one is replaced with the next alternative from the verb's synonym
// rotation, preserving the capitalization of the replaced token.
func RepairVerbRepetition(doc *Document) {
	targets := correctionTargets(doc)
	for _, verb := range trackedVerbs {
		pattern := verbPatterns[verb]

		total := 0
		for _, t := range targets {
			total += len(pattern.FindAllStringIndex(*t, -1))
		}
		if total <= 2 {
			continue
		}

		synonyms := verbSynonyms[verb]
		seen := 0
		for _, t := range targets {
			*t = pattern.ReplaceAllStringFunc(*t, func(match string) string {
				seen++
				if seen <= 2 {
					return match
				}
				return matchCase(match, synonyms[(seen-3)%len(synonyms)])
			})
		}
	}
}

var wordPattern = regexp.MustCompile(`[A-Za-z][A-Za-z'-]*`)

// duplicateAlternatives covers common non-verb words that models tend to
// repeat within a single bullet. Verbs fall back to verbSynonyms. No
// alternative may appear as a key in this map or in verbSynonyms; an emitted
// replacement must never itself trigger a substitution on a later pass.
var duplicateAlternatives = map[string][]string{
	"application": {"product", "tool"},
	"customer":    {"client", "user"},
	"customers":   {"clients", "users"},
	"data":        {"information", "metrics"},
	"development": {"engineering", "implementation"},
	"experience":  {"expertise", "background"},
	"performance": {"efficiency", "throughput"},
	"process":     {"workflow", "procedure"},
	"project":     {"initiative", "effort"},
	"solution":    {"approach", "offering"},
	"system":      {"platform", "infrastructure"},
	"team":        {"group", "crew"},
}

// duplicateStopwords are function words exempt from duplicate detection.
// Words shorter than four letters are skipped outright, so only the longer
// function words need listing.
var duplicateStopwords = map[string]bool{
	"about": true, "after": true, "also": true, "before": true,
	"between": true, "both": true, "each": true, "from": true,
	"have": true, "into": true, "more": true, "most": true,
	"other": true, "over": true, "such": true, "than": true,
	"that": true, "their": true, "them": true, "then": true,
	"these": true, "they": true, "this": true, "those": true,
	"when": true, "where": true, "which": true, "while": true,
	"will": true, "with": true, "would": true, "your": true,
}

// RepairDuplicateWords catches "X and X" duplication inside one sentence:
// within each experience summary or highlight, any word (four letters or
// longer, not a stopword) repeated after its first occurrence is swapped for
// a synonym when one is known. Operates per-string, independently of the
// resume-wide verb cap.
func RepairDuplicateWords(doc *Document) {
	for i := range doc.Experience {
		doc.Experience[i].Summary = repairDuplicatesIn(doc.Experience[i].Summary)
		for j := range doc.Experience[i].Highlights {
			doc.Experience[i].Highlights[j] = repairDuplicatesIn(doc.Experience[i].Highlights[j])
		}
	}
}

func repairDuplicatesIn(text string) string {
	seen := map[string]int{}
	return wordPattern.ReplaceAllStringFunc(text, func(word string) string {
		norm := strings.ToLower(word)
		if len(norm) < 4 || duplicateStopwords[norm] {
			return word
		}
		seen[norm]++
		if seen[norm] == 1 {
			return word
		}
		alts, ok := duplicateAlternatives[norm]
		if !ok {
			alts, ok = verbSynonyms[norm]
		}
		if !ok {
			return word
		}
		return matchCase(word, alts[(seen[norm]-2)%len(alts)])
	})
}
