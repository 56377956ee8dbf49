// Package tailoring implements the single-job unit of work: it orchestrates
// prompt construction, generation through the model gateway, JSON extraction,
// and the deterministic post-processing passes.
package tailoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/easyhired/resumer/internal/llm"
	"github.com/easyhired/resumer/internal/parsing"
	"github.com/easyhired/resumer/internal/postprocess"
	"github.com/easyhired/resumer/internal/prompts"
	"github.com/easyhired/resumer/internal/types"
)

// DocumentStore persists pipeline outputs. Implemented by artifacts.Store.
type DocumentStore interface {
	SaveTailoredResume(doc *types.Resume) (string, error)
	SaveRawDiagnostic(raw string) (string, error)
}

// Result bundles a successful tailoring run.
type Result struct {
	Document *types.Resume
	Path     string

	JobTitle string
	Domain   string
	Headline string
	Analysis *types.SkillsAnalysis

	// CreditExhausted is true when any generation call during this run fell
	// back because of a credit/quota failure on the primary backend.
	CreditExhausted bool
}

// Tailorer runs the tailoring pipeline against an injected generator and
// document store.
type Tailorer struct {
	gen   llm.Generator
	store DocumentStore
	log   zerolog.Logger
}

// NewTailorer wires a pipeline instance.
func NewTailorer(gen llm.Generator, store DocumentStore, logger zerolog.Logger) *Tailorer {
	return &Tailorer{
		gen:   gen,
		store: store,
		log:   logger.With().Str("component", "tailoring").Logger(),
	}
}

// Tailor transforms a template resume against a job description. Every
// auxiliary extraction degrades to a documented default on failure; the only
// hard failures are a fully exhausted gateway on the main call and an
// unparseable main response, the latter returned as *TailoringError with the
// raw output preserved on disk.
func (t *Tailorer) Tailor(ctx context.Context, jobDescription string, template *types.Resume) (*Result, error) {
	res := &Result{}

	res.JobTitle = t.extractJobTitle(ctx, jobDescription, res)
	res.Domain = InferDomain(res.JobTitle)
	res.Headline = t.generateHeadline(ctx, jobDescription, res.JobTitle, template.Summary, res)
	res.Analysis = t.extractSkills(ctx, jobDescription, res)
	eduReq := t.extractEducation(ctx, jobDescription, res)

	addressOK := postprocess.IsCompleteAddress(template.Contact["location"])
	eduMismatch := educationMismatch(eduReq, template)

	t.log.Info().
		Str("job_title", res.JobTitle).
		Str("domain", res.Domain).
		Bool("address_ok", addressOK).
		Bool("education_mismatch", eduMismatch).
		Int("hard_skills", len(res.Analysis.HardSkills)).
		Msg("starting main tailoring call")

	prompt, err := t.buildTailoringPrompt(jobDescription, template, res, addressOK, eduMismatch)
	if err != nil {
		return nil, err
	}

	gen, err := t.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("tailoring generation failed: %w", err)
	}
	res.CreditExhausted = res.CreditExhausted || gen.CreditExhausted

	payload := parsing.ExtractJSONBlock(gen.Text)
	doc, err := parsing.ParseResume(payload)
	if err != nil {
		rawPath, saveErr := t.store.SaveRawDiagnostic(gen.Text)
		if saveErr != nil {
			t.log.Error().Err(saveErr).Msg("failed to persist raw diagnostic")
		}
		return nil, &TailoringError{RawPath: rawPath, Cause: err}
	}

	postprocess.Apply(doc, postprocess.Context{
		Headline:   res.Headline,
		Domain:     res.Domain,
		HardSkills: res.Analysis.HardSkills,
	})
	if flagged := postprocess.UnquantifiedHighlights(doc); len(flagged) > 0 {
		t.log.Debug().Int("count", len(flagged)).Msg("highlights left unquantified")
	}

	path, err := t.store.SaveTailoredResume(doc)
	if err != nil {
		return nil, err
	}

	res.Document = doc
	res.Path = path
	return res, nil
}

// extractJobTitle asks the model for the literal job title. Non-fatal: any
// failure falls back to an empty title, disabling title-derived steps.
func (t *Tailorer) extractJobTitle(ctx context.Context, jobDescription string, res *Result) string {
	prompt := prompts.Format(prompts.MustGet("tailoring.json", "extract-job-title"), map[string]string{
		"JobDescription": jobDescription,
	})
	gen, err := t.gen.Generate(ctx, prompt)
	if err != nil {
		t.log.Warn().Err(err).Msg("job title extraction failed, continuing without title")
		return ""
	}
	res.CreditExhausted = res.CreditExhausted || gen.CreditExhausted
	return parsing.CleanLine(gen.Text)
}

// generateHeadline produces the "<title> | <qualification>" line. Failure
// falls back to a deterministic headline derived from the template summary.
func (t *Tailorer) generateHeadline(ctx context.Context, jobDescription, jobTitle, templateSummary string, res *Result) string {
	if jobTitle == "" {
		return ""
	}
	prompt := prompts.Format(prompts.MustGet("tailoring.json", "generate-headline"), map[string]string{
		"JobDescription": jobDescription,
		"JobTitle":       jobTitle,
		"Summary":        templateSummary,
	})
	gen, err := t.gen.Generate(ctx, prompt)
	if err != nil {
		t.log.Warn().Err(err).Msg("headline generation failed, using fallback")
		return fallbackHeadline(jobTitle, templateSummary)
	}
	res.CreditExhausted = res.CreditExhausted || gen.CreditExhausted
	headline := parsing.CleanLine(gen.Text)
	if headline == "" {
		return fallbackHeadline(jobTitle, templateSummary)
	}
	return normalizeHeadline(headline, jobTitle)
}

// extractSkills pulls the ATS skill lists. Never fails: generation or parse
// errors degrade to an all-empty analysis.
func (t *Tailorer) extractSkills(ctx context.Context, jobDescription string, res *Result) *types.SkillsAnalysis {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "extract-skills"), map[string]string{
		"JobDescription": jobDescription,
	})
	gen, err := t.gen.Generate(ctx, prompt)
	if err != nil {
		t.log.Warn().Err(err).Msg("skills extraction failed, continuing with empty analysis")
		return parsing.ParseSkillsAnalysis("")
	}
	res.CreditExhausted = res.CreditExhausted || gen.CreditExhausted
	return parsing.ParseSkillsAnalysis(gen.Text)
}

// extractEducation pulls the education requirement. Never fails: errors
// degrade to the "Not specified / Any / not required" default.
func (t *Tailorer) extractEducation(ctx context.Context, jobDescription string, res *Result) *types.EducationRequirement {
	prompt := prompts.Format(prompts.MustGet("analysis.json", "extract-education"), map[string]string{
		"JobDescription": jobDescription,
	})
	gen, err := t.gen.Generate(ctx, prompt)
	if err != nil {
		t.log.Warn().Err(err).Msg("education extraction failed, using default requirement")
		return types.DefaultEducationRequirement()
	}
	res.CreditExhausted = res.CreditExhausted || gen.CreditExhausted
	return parsing.ParseEducationRequirement(gen.Text)
}

func (t *Tailorer) buildTailoringPrompt(jobDescription string, template *types.Resume, res *Result, addressOK, eduMismatch bool) (string, error) {
	templateJSON, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode template resume: %w", err)
	}

	addressNote := ""
	if !addressOK {
		addressNote = "NOTE: The contact location is incomplete. Keep it exactly as provided - it is completed deterministically after generation, do not invent one.\n"
	}
	educationNote := ""
	if eduMismatch {
		educationNote = "NOTE: The job asks for an advanced degree the candidate does not hold. Append one clause to the summary explaining how hands-on experience compensates.\n"
	}

	return prompts.Format(prompts.MustGet("tailoring.json", "tailor-resume"), map[string]string{
		"JobDescription":        jobDescription,
		"JobTitle":              res.JobTitle,
		"Domain":                res.Domain,
		"Headline":              res.Headline,
		"AddressNote":           addressNote,
		"EducationNote":         educationNote,
		"HardSkills":            strings.Join(res.Analysis.HardSkills, ", "),
		"SoftSkills":            strings.Join(res.Analysis.SoftSkills, ", "),
		"Keywords":              strings.Join(res.Analysis.Keywords, ", "),
		"RequiredTechnologies":  strings.Join(res.Analysis.RequiredTechnologies, ", "),
		"PreferredTechnologies": strings.Join(res.Analysis.PreferredTechnologies, ", "),
		"ResumeJSON":            string(templateJSON),
	}), nil
}
