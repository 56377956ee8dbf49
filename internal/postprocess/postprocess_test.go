package postprocess

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyhired/resumer/internal/types"
)

func testDocument() *Document {
	return &Document{
		Name:    "Michael Chen",
		Contact: map[string]string{"email": "m@example.com", "location": "Singapore"},
		Summary: "Developed web platforms for a decade.",
		Experience: []types.ExperienceEntry{
			{
				Title:      "Full Stack Developer",
				Company:    "Acme",
				Period:     "2021 - Present",
				Summary:    "Developed the checkout platform.",
				Highlights: []string{"Developed a payments service handling 2M requests/day"},
			},
			{
				Title:      "Senior Developer",
				Company:    "Initech",
				Period:     "2018 - 2021",
				Summary:    "Developed internal tools.",
				Highlights: []string{"Developed dashboards used by 40 analysts"},
			},
			{
				Title:      "Lead Engineer",
				Company:    "Globex",
				Period:     "2015 - 2018",
				Summary:    "Maintained the build system.",
				Highlights: []string{"Cut build times by 60%"},
			},
		},
		Skills: types.NewCategorizedSkills(
			[]string{"Languages", "Soft Skills"},
			map[string][]string{
				"Languages":   {"Go", "TypeScript"},
				"Soft Skills": {"Team Player", "Communication"},
			},
		),
	}
}

func TestEnforceCareerProgression_Ladder(t *testing.T) {
	doc := testDocument()
	EnforceCareerProgression(doc, "Shopify")

	titles := []string{doc.Experience[0].Title, doc.Experience[1].Title, doc.Experience[2].Title}
	assert.Equal(t, "Senior Shopify Developer", titles[0])
	assert.Equal(t, "Shopify Developer", titles[1])
	assert.Equal(t, "Junior Shopify Developer", titles[2])

	markers := []string{"Senior", "Lead", "Principal", "Staff"}
	assert.True(t, containsAnyMarker(titles[0], markers))
	for _, title := range titles[1:] {
		assert.False(t, containsAnyMarker(title, markers), title)
	}
}

func TestEnforceCareerProgression_TwoEntries(t *testing.T) {
	doc := testDocument()
	doc.Experience = doc.Experience[:2]
	EnforceCareerProgression(doc, "iOS")

	assert.Equal(t, "Senior iOS Developer", doc.Experience[0].Title)
	// With exactly two entries the oldest gets the bare base title.
	assert.Equal(t, "iOS Developer", doc.Experience[1].Title)
}

func TestEnforceCareerProgression_DomainDerivedFromFirstTitle(t *testing.T) {
	doc := testDocument()
	EnforceCareerProgression(doc, "")

	// Entry 0's title already reads "Full Stack Developer"; with qualifiers
	// stripped it becomes the domain.
	assert.Equal(t, "Senior Full Stack Developer", doc.Experience[0].Title)
	assert.Equal(t, "Full Stack Developer", doc.Experience[1].Title)
	assert.Equal(t, "Junior Full Stack Developer", doc.Experience[2].Title)
}

func TestEnforceCareerProgression_SingleEntryUntouched(t *testing.T) {
	doc := testDocument()
	doc.Experience = doc.Experience[:1]
	EnforceCareerProgression(doc, "Shopify")
	assert.Equal(t, "Full Stack Developer", doc.Experience[0].Title)
}

func TestEnforceCareerProgression_DomainAlreadyEngineer(t *testing.T) {
	doc := testDocument()
	EnforceCareerProgression(doc, "DevOps Engineer")
	assert.Equal(t, "Senior DevOps Engineer", doc.Experience[0].Title)
	assert.Equal(t, "DevOps Engineer", doc.Experience[1].Title)
}

func TestRepairAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty becomes placeholder", "", "City, State/Province, Country"},
		{"single token gains one suffix", "Singapore", "Singapore, Country"},
		{"complete value untouched", "Berlin, Germany", "Berlin, Germany"},
		{"placeholder is stable", "City, State/Province, Country", "City, State/Province, Country"},
		{"empty component dropped", "Berlin, ", "Berlin, Country"},
		{"tiny comma value becomes placeholder", "a,b", "City, State/Province, Country"},
		{"only commas becomes placeholder", " , ", "City, State/Province, Country"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument()
			doc.Contact["location"] = tt.in
			RepairAddress(doc)
			assert.Equal(t, tt.want, doc.Contact["location"])
			assert.True(t, IsCompleteAddress(doc.Contact["location"]))

			RepairAddress(doc)
			assert.Equal(t, tt.want, doc.Contact["location"])
		})
	}
}

func TestRepairAddress_MissingContactMap(t *testing.T) {
	doc := &Document{}
	RepairAddress(doc)
	assert.Equal(t, AddressPlaceholder, doc.Contact["location"])
}

func TestIsCompleteAddress(t *testing.T) {
	assert.True(t, IsCompleteAddress("Berlin, Germany"))
	assert.False(t, IsCompleteAddress(""))
	assert.False(t, IsCompleteAddress("Singapore"))
	assert.False(t, IsCompleteAddress("a,b"))
}

func TestBackfillSkills(t *testing.T) {
	doc := testDocument()
	BackfillSkills(doc, []string{"Go", "Shopify Liquid", "TypeScript (TS)", "Kubernetes"})

	// "Go" and "TypeScript" already present (substring match, both ways).
	techs := doc.Skills.Categories["Technologies"]
	assert.Equal(t, []string{"Shopify Liquid", "Kubernetes"}, techs)
	assert.Contains(t, doc.Skills.Order, "Technologies")
}

func TestBackfillSkills_FlatList(t *testing.T) {
	doc := testDocument()
	doc.Skills = types.NewFlatSkills("Go", "React Native")
	BackfillSkills(doc, []string{"React", "GraphQL"})

	// "React" matches the existing "React Native" by substring.
	assert.Equal(t, []string{"Go", "React Native", "GraphQL"}, doc.Skills.Flat)
}

func TestRepairVerbRepetition_CapsAtTwo(t *testing.T) {
	doc := testDocument()
	RepairVerbRepetition(doc)

	corpus := doc.Summary
	for _, e := range doc.Experience {
		corpus += " " + e.Summary + " " + strings.Join(e.Highlights, " ")
	}
	for verb := range verbSynonyms {
		count := verbPatterns[verb].FindAllStringIndex(corpus, -1)
		assert.LessOrEqual(t, len(count), 2, verb)
	}

	// First two occurrences survive, later ones rotate through synonyms.
	assert.Contains(t, doc.Summary, "Developed")
	assert.Contains(t, doc.Experience[0].Summary, "Developed")
	assert.Contains(t, doc.Experience[0].Highlights[0], "Engineered")
	assert.Contains(t, doc.Experience[1].Summary, "Crafted")
}

func TestRepairVerbRepetition_UnderCapUntouched(t *testing.T) {
	doc := testDocument()
	doc.Summary = "Led one team. Led another team."
	doc.Experience = nil
	RepairVerbRepetition(doc)
	assert.Equal(t, "Led one team. Led another team.", doc.Summary)
}

func TestRepairDuplicateWords(t *testing.T) {
	doc := testDocument()
	doc.Experience[0].Highlights[0] = "Improved the team and improved delivery"
	RepairDuplicateWords(doc)
	assert.Equal(t, "Improved the team and enhanced delivery", doc.Experience[0].Highlights[0])
}

func TestRepairDuplicateWords_ReplacementsNeverRetrigger(t *testing.T) {
	doc := testDocument()
	doc.Experience[0].Highlights[0] = "Shipped the application, scaled the application, rebuilt the application as a solution"

	RepairDuplicateWords(doc)
	repaired := doc.Experience[0].Highlights[0]
	assert.Equal(t, "Shipped the application, scaled the product, rebuilt the tool as a solution", repaired)

	// Emitted replacements are not trigger words, so a second pass is a no-op.
	RepairDuplicateWords(doc)
	assert.Equal(t, repaired, doc.Experience[0].Highlights[0])
}

func TestSynonymRotations_ContainNoTriggerWords(t *testing.T) {
	for word, alts := range duplicateAlternatives {
		for _, alt := range alts {
			_, isDupTrigger := duplicateAlternatives[alt]
			_, isTrackedVerb := verbSynonyms[alt]
			assert.False(t, isDupTrigger || isTrackedVerb, "%s -> %s", word, alt)
		}
	}
	for verb, alts := range verbSynonyms {
		for _, alt := range alts {
			_, isDupTrigger := duplicateAlternatives[alt]
			_, isTrackedVerb := verbSynonyms[alt]
			assert.False(t, isDupTrigger || isTrackedVerb, "%s -> %s", verb, alt)
		}
	}
}

func TestRepairDuplicateWords_SkipsStopwordsAndShortWords(t *testing.T) {
	doc := testDocument()
	doc.Experience[0].Summary = "Worked with the team and with the platform"
	RepairDuplicateWords(doc)
	assert.Equal(t, "Worked with the team and with the platform", doc.Experience[0].Summary)
}

func TestReplaceBuzzwords(t *testing.T) {
	doc := testDocument()
	doc.Summary = "Self-starter with great attention to detail."
	ReplaceBuzzwords(doc)
	assert.Equal(t, "Proactive professional with great meticulous approach.", doc.Summary)
}

func TestReplaceBuzzwords_StripsSoftSkills(t *testing.T) {
	doc := testDocument()
	ReplaceBuzzwords(doc)
	assert.Equal(t, []string{"Communication"}, doc.Skills.Categories["Soft Skills"])

	// Category disappears when every entry is a buzzword.
	doc.Skills.Categories["Soft Skills"] = []string{"Team Player", "Go-Getter"}
	ReplaceBuzzwords(doc)
	_, ok := doc.Skills.Categories["Soft Skills"]
	assert.False(t, ok)
	assert.NotContains(t, doc.Skills.Order, "Soft Skills")
}

func TestNormalizeBold(t *testing.T) {
	doc := testDocument()
	doc.Summary = "Expert in **Go** and **React**."
	doc.Experience[0].Highlights[0] = "Shipped **two** releases"
	NormalizeBold(doc)

	assert.Equal(t, "Expert in <strong>Go</strong> and <strong>React</strong>.", doc.Summary)
	assert.Equal(t, "Shipped <strong>two</strong> releases", doc.Experience[0].Highlights[0])

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "**")
}

func TestUnquantifiedHighlights(t *testing.T) {
	doc := testDocument()
	doc.Experience[0].Highlights = append(doc.Experience[0].Highlights, "Improved reliability of the platform")
	flagged := UnquantifiedHighlights(doc)
	require.Len(t, flagged, 1)
	assert.Equal(t, "Improved reliability of the platform", flagged[0])
}

func TestApply_Idempotent(t *testing.T) {
	doc := testDocument()
	doc.Summary = "**Self-starter** who developed platforms."
	doc.Contact["location"] = ""
	pctx := Context{
		Headline:   "Shopify Developer | 10+ Years of Experience",
		Domain:     "Shopify",
		HardSkills: []string{"Shopify Liquid", "GraphQL"},
	}

	Apply(doc, pctx)
	first, err := json.Marshal(doc)
	require.NoError(t, err)

	Apply(doc, pctx)
	second, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestApply_OrderAndInvariants(t *testing.T) {
	doc := testDocument()
	doc.Contact["location"] = ""
	Apply(doc, Context{Headline: "Senior Developer | Cloud Native", Domain: "Full Stack"})

	assert.Equal(t, "Senior Developer | Cloud Native", doc.Headline)
	assert.Equal(t, AddressPlaceholder, doc.Contact["location"])
	assert.Contains(t, doc.Experience[0].Title, "Senior")

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "**")
}
