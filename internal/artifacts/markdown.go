package artifacts

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/easyhired/resumer/internal/types"
)

//go:embed templates/*.md
var sectionTemplates embed.FS

func loadSection(name string) string {
	data, err := sectionTemplates.ReadFile("templates/" + name)
	if err != nil {
		// Templates are embedded; a missing one is a programming error.
		panic(fmt.Sprintf("missing section template %s: %v", name, err))
	}
	return string(data)
}

func fill(template string, values map[string]string) string {
	for key, value := range values {
		template = strings.ReplaceAll(template, "{{"+key+"}}", value)
	}
	return template
}

// ToMarkdown converts a tailored resume into the styled markdown rendition
// used for PDF generation. Sections are assembled from embedded fragment
// templates; the skills section is intentionally omitted from the rendered
// document.
func ToMarkdown(doc *types.Resume) string {
	return fill(loadSection("resume.md"), map[string]string{
		"top_section":         topSection(doc),
		"summary_section":     fill(loadSection("summary_section.md"), map[string]string{"summary": doc.Summary}),
		"references_section":  referencesSection(doc),
		"experiences_section": experiencesSection(doc),
		"education_section":   educationSection(doc),
	})
}

func topSection(doc *types.Resume) string {
	headline := ""
	if doc.Headline != "" {
		headline = fill(loadSection("headline_section.md"), map[string]string{"headline": doc.Headline})
	}
	location := ""
	if loc := doc.Contact["location"]; loc != "" {
		location = fill(loadSection("location_section.md"), map[string]string{"location": loc})
	}
	return fill(loadSection("top_section.md"), map[string]string{
		"name":             doc.Name,
		"headline_section": headline,
		"location_section": location,
		"contacts":         contactLinks(doc.Contact),
	})
}

// contactLinks renders every non-location contact entry as an anchor whose
// display text drops the mailto:/tel: scheme. Entries are sorted by key for
// deterministic output.
func contactLinks(contact map[string]string) string {
	keys := make([]string, 0, len(contact))
	for k := range contact {
		if k != "location" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	links := make([]string, 0, len(keys))
	for _, k := range keys {
		value := contact[k]
		display := strings.TrimPrefix(strings.TrimPrefix(value, "mailto:"), "tel:")
		links = append(links, fmt.Sprintf(`<a href="%s">%s</a>`, value, display))
	}
	return strings.Join(links, " • ")
}

func referencesSection(doc *types.Resume) string {
	if len(doc.References) == 0 {
		return ""
	}
	item := loadSection("reference_item.md")
	var items strings.Builder
	for _, ref := range doc.References {
		link := ref.Link
		if link == "" {
			link = "#"
		}
		items.WriteString(fill(item, map[string]string{
			"name": ref.Name,
			"text": ref.Text,
			"link": link,
		}))
	}
	return fill(loadSection("references_section.md"), map[string]string{"references": items.String()})
}

func experiencesSection(doc *types.Resume) string {
	item := loadSection("experience_item.md")
	highlightItem := loadSection("experience_highlight_item.md")
	highlightsWrap := loadSection("experience_highlights.md")

	var entries strings.Builder
	for _, exp := range doc.Experience {
		company, location := splitCompanyLocation(exp.Company)
		from, to := splitPeriod(exp.Period)

		highlights := ""
		if len(exp.Highlights) > 0 {
			var bullet strings.Builder
			for _, h := range exp.Highlights {
				if strings.TrimSpace(h) == "" {
					continue
				}
				bullet.WriteString(fill(highlightItem, map[string]string{"highlight": h}))
			}
			if bullet.Len() > 0 {
				highlights = fill(highlightsWrap, map[string]string{"highlights": bullet.String()})
			}
		}

		entries.WriteString(fill(item, map[string]string{
			"position":     exp.Title,
			"company_name": company,
			"location":     location,
			"from":         from,
			"to":           to,
			"description":  exp.Summary,
			"skills":       strings.Join(exp.Skills, ", "),
			"highlights":   highlights,
		}))
		entries.WriteString("\n")
	}
	return fill(loadSection("experiences_section.md"), map[string]string{"experiences": entries.String()})
}

func educationSection(doc *types.Resume) string {
	if len(doc.Education.Items) == 0 {
		return ""
	}
	template := loadSection("education_section.md")
	var sections strings.Builder
	for _, edu := range doc.Education.Items {
		sections.WriteString(fill(template, map[string]string{
			"degree":      edu.Degree,
			"university":  edu.University,
			"period":      edu.Period,
			"description": edu.Description,
		}))
	}
	return sections.String()
}

// splitCompanyLocation separates "Acme Corp (Berlin, Germany)" into the
// company name and its parenthetical location.
func splitCompanyLocation(company string) (string, string) {
	open := strings.Index(company, "(")
	if open < 0 || !strings.Contains(company[open:], ")") {
		return company, ""
	}
	name := strings.TrimSpace(company[:open])
	location := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(company[open+1:]), ")"))
	return name, location
}

// splitPeriod separates a "<from> - <to>" period into its halves. Periods
// without a dash land entirely in from.
func splitPeriod(period string) (string, string) {
	from, to, found := strings.Cut(period, "-")
	if !found {
		return strings.TrimSpace(period), ""
	}
	return strings.TrimSpace(from), strings.TrimSpace(to)
}
