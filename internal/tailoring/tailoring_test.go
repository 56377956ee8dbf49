package tailoring

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyhired/resumer/internal/artifacts"
	"github.com/easyhired/resumer/internal/llm"
	"github.com/easyhired/resumer/internal/types"
)

const mainResponse = "Here is your tailored resume:\n```json\n{\n" +
	`  "name": "Michael Chen",
  "contact": {"email": "m@example.com", "location": "Singapore"},
  "summary": "**Shopify** expert who developed storefronts.",
  "experience": [
    {"title": "Developer", "company": "Acme", "period": "2020 - Present",
     "summary": "Led storefront work.", "highlights": ["Cut load time by 40%"]},
    {"title": "Senior Developer", "company": "Initech", "period": "2016 - 2020",
     "summary": "Built tools.", "highlights": ["Automated 12 workflows"]}
  ],
  "education": {"degree": "BSc Computer Science", "university": "NUS"},
  "skills": {"Languages": ["Go"]}
}` + "\n```\n"

// scriptedGen routes prompts to canned responses by recognizing each
// sub-call's prompt text.
type scriptedGen struct {
	responses map[string]llm.Result
	failures  map[string]error
	prompts   []string
}

func classify(prompt string) string {
	switch {
	case strings.Contains(prompt, "Extract the exact job title"):
		return "title"
	case strings.Contains(prompt, "resume headline"):
		return "headline"
	case strings.Contains(prompt, "ATS analyst"):
		return "skills"
	case strings.Contains(prompt, "education requirements"):
		return "education"
	default:
		return "main"
	}
}

func (g *scriptedGen) Generate(_ context.Context, prompt string) (llm.Result, error) {
	key := classify(prompt)
	g.prompts = append(g.prompts, key)
	if err, ok := g.failures[key]; ok {
		return llm.Result{}, err
	}
	return g.responses[key], nil
}

func defaultGen() *scriptedGen {
	return &scriptedGen{
		responses: map[string]llm.Result{
			"title":     {Text: "Senior Shopify Developer\n"},
			"headline":  {Text: "Senior Shopify Developer | Storefront Specialist"},
			"skills":    {Text: `{"hard_skills":["Shopify Liquid","GraphQL"],"soft_skills":["Communication"],"keywords":["ecommerce"],"required_technologies":["Shopify"],"preferred_technologies":[]}`},
			"education": {Text: `{"education_level":"Bachelor's degree","degree_type":"Computer Science","is_required":true,"notes":""}`},
			"main":      {Text: mainResponse},
		},
		failures: map[string]error{},
	}
}

func templateResume() *types.Resume {
	return &types.Resume{
		Name:    "Michael Chen",
		Contact: map[string]string{"email": "m@example.com", "location": "Singapore"},
		Summary: "Full stack developer with 8+ years of experience.",
		Experience: []types.ExperienceEntry{
			{Title: "Full Stack Developer", Company: "Acme"},
		},
	}
}

func newTailorer(t *testing.T, gen llm.Generator) *Tailorer {
	t.Helper()
	store, err := artifacts.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewTailorer(gen, store, zerolog.Nop())
}

func TestTailor_HappyPath(t *testing.T) {
	gen := defaultGen()
	tailorer := newTailorer(t, gen)

	res, err := tailorer.Tailor(context.Background(), "We need a Shopify developer.", templateResume())
	require.NoError(t, err)

	assert.Equal(t, "Senior Shopify Developer", res.JobTitle)
	assert.Equal(t, "Shopify", res.Domain)
	assert.Equal(t, "Senior Shopify Developer | Storefront Specialist", res.Headline)
	assert.Equal(t, []string{"Shopify Liquid", "GraphQL"}, res.Analysis.HardSkills)
	assert.False(t, res.CreditExhausted)

	// Post-processing ran: headline injected, markdown bold normalized,
	// career ladder enforced, address completed, ATS skills backfilled.
	doc := res.Document
	assert.Equal(t, res.Headline, doc.Headline)
	assert.Contains(t, doc.Summary, "<strong>Shopify</strong>")
	assert.NotContains(t, doc.Summary, "**")
	assert.Contains(t, doc.Experience[0].Title, "Senior")
	assert.NotContains(t, strings.ToLower(doc.Experience[1].Title), "senior")
	assert.Equal(t, "Singapore, Country", doc.Contact["location"])
	assert.Contains(t, doc.Skills.Categories["Technologies"], "Shopify Liquid")

	// The document was persisted.
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Michael Chen")

	// Five generation calls in pipeline order.
	assert.Equal(t, []string{"title", "headline", "skills", "education", "main"}, gen.prompts)
}

func TestTailor_TitleFailureIsNonFatal(t *testing.T) {
	gen := defaultGen()
	gen.failures["title"] = errors.New("backend down")
	tailorer := newTailorer(t, gen)

	res, err := tailorer.Tailor(context.Background(), "job", templateResume())
	require.NoError(t, err)

	assert.Equal(t, "", res.JobTitle)
	// An empty title disables headline generation entirely.
	assert.Equal(t, "", res.Headline)
	assert.NotContains(t, gen.prompts, "headline")
}

func TestTailor_HeadlineFallbackUsesTemplateYears(t *testing.T) {
	gen := defaultGen()
	gen.failures["headline"] = errors.New("backend down")
	tailorer := newTailorer(t, gen)

	res, err := tailorer.Tailor(context.Background(), "job", templateResume())
	require.NoError(t, err)
	assert.Equal(t, "Senior Shopify Developer | 8+ Years of Experience", res.Headline)
}

func TestTailor_SkillsAndEducationFailuresDegrade(t *testing.T) {
	gen := defaultGen()
	gen.failures["skills"] = errors.New("backend down")
	gen.failures["education"] = errors.New("backend down")
	tailorer := newTailorer(t, gen)

	res, err := tailorer.Tailor(context.Background(), "job", templateResume())
	require.NoError(t, err)
	assert.True(t, res.Analysis.IsEmpty())
}

func TestTailor_UnparseableMainResponse(t *testing.T) {
	gen := defaultGen()
	gen.responses["main"] = llm.Result{Text: "I am sorry, I cannot produce JSON today."}
	tailorer := newTailorer(t, gen)

	_, err := tailorer.Tailor(context.Background(), "job", templateResume())
	require.Error(t, err)

	var tailErr *TailoringError
	require.ErrorAs(t, err, &tailErr)
	data, readErr := os.ReadFile(tailErr.RawPath)
	require.NoError(t, readErr)
	assert.Equal(t, "I am sorry, I cannot produce JSON today.", string(data))
}

func TestTailor_MainGenerationFailureIsFatal(t *testing.T) {
	gen := defaultGen()
	gen.failures["main"] = &llm.GenerationError{Detail: "all backends exhausted"}
	tailorer := newTailorer(t, gen)

	_, err := tailorer.Tailor(context.Background(), "job", templateResume())
	require.Error(t, err)
	var genErr *llm.GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestTailor_PropagatesCreditExhaustion(t *testing.T) {
	gen := defaultGen()
	gen.responses["main"] = llm.Result{Text: mainResponse, CreditExhausted: true}
	tailorer := newTailorer(t, gen)

	res, err := tailorer.Tailor(context.Background(), "job", templateResume())
	require.NoError(t, err)
	assert.True(t, res.CreditExhausted)
}

func TestInferDomain(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Senior Shopify Developer", "Shopify"},
		{"Full Stack Engineer", "Full Stack"},
		{"Full-Stack Engineer", "Full Stack"},
		{"iOS Developer", "iOS"},
		{"Lead DevOps Engineer", "DevOps"},
		{"Senior Platform Architect", "Platform Architect"},
		{"Senior", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferDomain(tt.title), tt.title)
	}
}

func TestNormalizeHeadline(t *testing.T) {
	// Missing title gets it prepended.
	got := normalizeHeadline("Storefront Specialist", "Shopify Developer")
	assert.Equal(t, "Shopify Developer | Storefront Specialist", got)

	// Title already present is kept as-is.
	got = normalizeHeadline("Shopify Developer | Expert", "Shopify Developer")
	assert.Equal(t, "Shopify Developer | Expert", got)

	// Overlong output is truncated at a word boundary within 80 chars.
	long := "Shopify Developer | " + strings.Repeat("very ", 20) + "qualified"
	got = normalizeHeadline(long, "Shopify Developer")
	assert.LessOrEqual(t, len(got), 80)
	assert.True(t, strings.HasPrefix(got, "Shopify Developer | "))
}

func TestFallbackHeadline(t *testing.T) {
	assert.Equal(t, "Dev | 8+ Years of Experience", fallbackHeadline("Dev", "engineer with 8+ years of experience"))
	assert.Equal(t, "Dev | 10+ Years of Experience", fallbackHeadline("Dev", "10 years in the field"))
	assert.Equal(t, "Dev", fallbackHeadline("Dev", "no numbers here"))
}

func TestEducationMismatch(t *testing.T) {
	template := &types.Resume{}
	require.NoError(t, template.Education.UnmarshalJSON([]byte(`{"degree":"Bachelor of Science","university":"NUS"}`)))

	req := &types.EducationRequirement{EducationLevel: "Master's degree required"}
	assert.True(t, educationMismatch(req, template))

	req = &types.EducationRequirement{EducationLevel: "Bachelor's degree"}
	assert.False(t, educationMismatch(req, template))

	// Holding an advanced degree clears the mismatch.
	var withMasters types.Resume
	require.NoError(t, withMasters.Education.UnmarshalJSON([]byte(`[{"degree":"Bachelor of Science"},{"degree":"Master of Computing"}]`)))
	assert.False(t, educationMismatch(req, &withMasters))
	req = &types.EducationRequirement{EducationLevel: "Advanced degree preferred"}
	assert.False(t, educationMismatch(req, &withMasters))
}
