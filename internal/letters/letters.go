// Package letters generates the auxiliary application documents: cover
// letters and answers to application questions, both grounded in the
// tailored resume.
package letters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/easyhired/resumer/internal/llm"
	"github.com/easyhired/resumer/internal/prompts"
	"github.com/easyhired/resumer/internal/types"
)

// Generator produces letter and Q&A content through the model gateway.
type Generator struct {
	gen llm.Generator
	log zerolog.Logger
}

// NewGenerator wires a letters generator.
func NewGenerator(gen llm.Generator, logger zerolog.Logger) *Generator {
	return &Generator{
		gen: gen,
		log: logger.With().Str("component", "letters").Logger(),
	}
}

// CoverLetter generates a markdown cover letter for the job, using the
// tailored resume as the source of truth.
func (g *Generator) CoverLetter(ctx context.Context, doc *types.Resume, jobDescription string) (string, error) {
	resumeJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode resume for cover letter: %w", err)
	}
	prompt := prompts.Format(prompts.MustGet("letters.json", "cover-letter"), map[string]string{
		"JobDescription": jobDescription,
		"ResumeJSON":     string(resumeJSON),
	})
	res, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("cover letter generation failed: %w", err)
	}
	return strings.TrimSpace(res.Text), nil
}

// QuestionAnswers answers each application question in order. The returned
// slice is positionally aligned with questions; a failure on any single
// question fails the whole set so the caller records one row error instead
// of shipping a partial document.
func (g *Generator) QuestionAnswers(ctx context.Context, questions []string, jobDescription string, doc *types.Resume) ([]string, error) {
	resumeJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume for question answers: %w", err)
	}

	template := prompts.MustGet("letters.json", "question-answer")
	answers := make([]string, 0, len(questions))
	for i, question := range questions {
		prompt := prompts.Format(template, map[string]string{
			"JobDescription": jobDescription,
			"ResumeJSON":     string(resumeJSON),
			"Question":       question,
		})
		res, err := g.gen.Generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("failed to answer question %d: %w", i+1, err)
		}
		answers = append(answers, strings.TrimSpace(res.Text))
	}
	return answers, nil
}

// BuildQuestionsMarkdown combines questions and their answers into a single
// document: one ##-level section per question, an ### Answer subsection, and
// a horizontal rule between entries. Extra answers beyond the question count
// are ignored; missing answers render empty.
func BuildQuestionsMarkdown(questions, answers []string) string {
	var b strings.Builder
	b.WriteString("# Application Questions\n\n")
	for i, question := range questions {
		fmt.Fprintf(&b, "## Question %d\n\n%s\n\n### Answer\n\n", i+1, question)
		if i < len(answers) {
			b.WriteString(answers[i])
		}
		b.WriteString("\n\n---\n\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
