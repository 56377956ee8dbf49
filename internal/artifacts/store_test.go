package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyhired/resumer/internal/types"
)

func sampleDoc() *types.Resume {
	var doc types.Resume
	err := json.Unmarshal([]byte(`{
		"name": "Michael Chen",
		"headline": "Senior Shopify Developer | 10+ Years of Experience",
		"contact": {"email": "mailto:m@example.com", "phone": "tel:+6512345678", "location": "Singapore, Singapore"},
		"summary": "Builds storefronts.",
		"experience": [
			{"title": "Senior Shopify Developer", "company": "Acme (Berlin, Germany)",
			 "period": "2020 - Present", "summary": "Led the storefront team.",
			 "skills": ["Liquid", "Go"], "highlights": ["Cut page load by 40%"]}
		],
		"education": {"degree": "BSc Computer Science", "university": "NUS", "period": "2009 - 2012",
		              "description": "Focus on distributed systems."},
		"skills": ["Liquid", "Go"],
		"references": [{"name": "Jane Doe", "link": "https://example.com/jane"}]
	}`), &doc)
	if err != nil {
		panic(err)
	}
	return &doc
}

func TestToText(t *testing.T) {
	text := ToText(sampleDoc())

	assert.True(t, strings.HasPrefix(text, "Michael Chen\n"))
	assert.Contains(t, text, "email: mailto:m@example.com")
	assert.Contains(t, text, "----")
	assert.Contains(t, text, "SUMMARY\nBuilds storefronts.")
	assert.Contains(t, text, "PROFESSIONAL REFERENCES\nJane Doe - Link: https://example.com/jane")
	assert.Contains(t, text, "Senior Shopify Developer at Acme (Berlin, Germany)")
	assert.Contains(t, text, "Skills: Liquid, Go")
	assert.Contains(t, text, "• Cut page load by 40%")
	assert.Contains(t, text, "EDUCATION\nBSc Computer Science - NUS")
}

func TestToMarkdown(t *testing.T) {
	md := ToMarkdown(sampleDoc())

	assert.Contains(t, md, "Michael Chen")
	assert.Contains(t, md, "Senior Shopify Developer | 10+ Years of Experience")
	// Contact schemes are stripped from display text but kept in the href.
	assert.Contains(t, md, `<a href="mailto:m@example.com">m@example.com</a>`)
	assert.Contains(t, md, `<a href="tel:+6512345678">+6512345678</a>`)
	// Parenthetical company location is split out.
	assert.Contains(t, md, "<strong>Acme</strong> Berlin, Germany")
	assert.Contains(t, md, "2020 – Present")
	assert.Contains(t, md, "- Cut page load by 40%")
	assert.Contains(t, md, "<strong>BSc Computer Science</strong> - NUS")
	// The rendered document carries no skills section.
	assert.NotContains(t, md, "## Skills")
}

func TestToMarkdown_OmitsEmptySections(t *testing.T) {
	doc := sampleDoc()
	doc.References = nil
	doc.Headline = ""
	md := ToMarkdown(doc)

	assert.NotContains(t, md, "Professional References")
	assert.NotContains(t, md, "{{")
}

func TestSplitHelpers(t *testing.T) {
	company, location := splitCompanyLocation("Acme Corp (Berlin, Germany)")
	assert.Equal(t, "Acme Corp", company)
	assert.Equal(t, "Berlin, Germany", location)

	company, location = splitCompanyLocation("Initech")
	assert.Equal(t, "Initech", company)
	assert.Equal(t, "", location)

	from, to := splitPeriod("2020 - Present")
	assert.Equal(t, "2020", from)
	assert.Equal(t, "Present", to)

	from, to = splitPeriod("2020")
	assert.Equal(t, "2020", from)
	assert.Equal(t, "", to)
}

func TestStore_SaveTailoredResume(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.SaveTailoredResume(sampleDoc())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "tailored_resume_"))
	assert.True(t, strings.HasSuffix(path, ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var round types.Resume
	require.NoError(t, json.Unmarshal(data, &round))
	assert.Equal(t, "Michael Chen", round.Name)
}

func TestStore_SaveRawDiagnostic(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.SaveRawDiagnostic("not json at all")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not json at all", string(data))
}

func TestStore_StampsAreUnique(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.SaveRawDiagnostic("a")
	require.NoError(t, err)
	b, err := store.SaveRawDiagnostic("b")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
