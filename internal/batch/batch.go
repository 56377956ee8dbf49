// Package batch fans the tailoring pipeline out across many job rows with
// bounded parallelism, per-row failure isolation, and artifact aggregation
// into a zip-ready staging tree.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/easyhired/resumer/internal/letters"
	"github.com/easyhired/resumer/internal/tailoring"
	"github.com/easyhired/resumer/internal/types"
)

// DefaultConcurrency caps parallel rows. Chosen to respect upstream LLM
// provider rate limits and local CPU pressure from PDF rendering.
const DefaultConcurrency = 3

// ErrNoArtifacts is returned when a non-empty batch produced zero files,
// distinguishing total failure from partial success with row errors.
var ErrNoArtifacts = errors.New("batch produced no artifacts")

// Pipeline is the single-row tailoring entry point.
type Pipeline interface {
	Tailor(ctx context.Context, jobDescription string, template *types.Resume) (*tailoring.Result, error)
}

// LetterGenerator produces the auxiliary documents for a row.
type LetterGenerator interface {
	CoverLetter(ctx context.Context, doc *types.Resume, jobDescription string) (string, error)
	QuestionAnswers(ctx context.Context, questions []string, jobDescription string, doc *types.Resume) ([]string, error)
}

// DocRenderer renders documents and markdown to PDF bytes.
type DocRenderer interface {
	RenderResume(ctx context.Context, doc *types.Resume) ([]byte, error)
	RenderMarkdown(ctx context.Context, markdown string) ([]byte, error)
}

// Orchestrator runs batch jobs through the pipeline.
type Orchestrator struct {
	pipeline Pipeline
	letters  LetterGenerator
	renderer DocRenderer
	limit    int64
	log      zerolog.Logger
}

// NewOrchestrator wires a batch orchestrator. A limit below 1 falls back to
// DefaultConcurrency.
func NewOrchestrator(pipeline Pipeline, letters LetterGenerator, renderer DocRenderer, limit int, logger zerolog.Logger) *Orchestrator {
	if limit < 1 {
		limit = DefaultConcurrency
	}
	return &Orchestrator{
		pipeline: pipeline,
		letters:  letters,
		renderer: renderer,
		limit:    int64(limit),
		log:      logger.With().Str("component", "batch").Logger(),
	}
}

// Result is a batch outcome plus the staging tree the archive is built from.
type Result struct {
	types.BatchResult
	StagingDir string
}

// Run processes every job concurrently under the concurrency cap. Each row
// works on its own clone of the template and writes into its own safe-title
// folder under both outputDir (durable) and a fresh staging tree, so
// concurrent rows never contend on a path. Row failures of any kind are
// recorded as RowErrors and never abort siblings; Run only fails outright
// when a non-empty input produced zero files.
func (o *Orchestrator) Run(ctx context.Context, jobs []types.BatchJob, template *types.Resume, outputDir string) (*Result, error) {
	staging, err := os.MkdirTemp("", "batch_staging_")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	result := &Result{StagingDir: staging}

	sem := semaphore.NewWeighted(o.limit)
	var mu sync.Mutex
	var g errgroup.Group

	for _, job := range jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			result.Errors = append(result.Errors, types.RowError{
				Row: job.RowNumber, Title: job.Title, Error: err.Error(),
			})
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			defer sem.Release(1)

			files, rowErr := o.processRow(ctx, job, template, outputDir, staging)
			mu.Lock()
			defer mu.Unlock()
			result.Files = append(result.Files, files...)
			if rowErr != nil {
				o.log.Warn().Int("row", job.RowNumber).Str("title", job.Title).
					Err(rowErr).Msg("row failed")
				result.Errors = append(result.Errors, types.RowError{
					Row: job.RowNumber, Title: job.Title, Error: rowErr.Error(),
				})
			}
			return nil
		})
	}
	// Row errors are aggregated, never returned, so Wait cannot fail.
	_ = g.Wait()

	o.log.Info().Int("rows", len(jobs)).Int("files", len(result.Files)).
		Int("errors", len(result.Errors)).Msg("batch finished")

	if len(jobs) > 0 && len(result.Files) == 0 {
		return result, ErrNoArtifacts
	}
	return result, nil
}

// processRow runs one row to completion. It returns every file produced
// before the first failure, so a late-step error (like question answering)
// still contributes the earlier artifacts.
func (o *Orchestrator) processRow(ctx context.Context, job types.BatchJob, template *types.Resume, outputDir, staging string) (files []types.GeneratedFile, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row panicked: %v", r)
		}
	}()

	jobDir := filepath.Join(outputDir, job.SafeTitle)
	stagingDir := filepath.Join(staging, job.SafeTitle)
	for _, dir := range []string{jobDir, stagingDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create row folder: %w", err)
		}
	}

	res, err := o.pipeline.Tailor(ctx, job.Description, template.Clone())
	if err != nil {
		return nil, err
	}
	doc := res.Document

	// Resume PDF.
	resumePDF, err := o.renderer.RenderResume(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render resume PDF: %w", err)
	}
	f, err := writeRowFile(types.FileResume, job, jobDir, stagingDir, resumePDFName(doc.Name), resumePDF)
	if err != nil {
		return nil, err
	}
	files = append(files, f)

	// Cover letter, markdown plus PDF.
	letter, err := o.letters.CoverLetter(ctx, doc, job.Description)
	if err != nil {
		return files, err
	}
	f, err = writeRowFile(types.FileCoverLetter, job, jobDir, stagingDir, job.FilePrefix+"_cover_letter.md", []byte(letter))
	if err != nil {
		return files, err
	}
	files = append(files, f)
	letterPDF, err := o.renderer.RenderMarkdown(ctx, letter)
	if err != nil {
		return files, fmt.Errorf("failed to render cover letter PDF: %w", err)
	}
	f, err = writeRowFile(types.FileCoverLetter, job, jobDir, stagingDir, job.FilePrefix+"_cover_letter.pdf", letterPDF)
	if err != nil {
		return files, err
	}
	files = append(files, f)

	// Question answers, one combined document.
	if len(job.Questions) > 0 {
		qFiles, qErr := o.processQuestions(ctx, job, doc, jobDir, stagingDir)
		files = append(files, qFiles...)
		if qErr != nil {
			return files, qErr
		}
	}
	return files, nil
}

func (o *Orchestrator) processQuestions(ctx context.Context, job types.BatchJob, doc *types.Resume, jobDir, stagingDir string) ([]types.GeneratedFile, error) {
	answers, err := o.letters.QuestionAnswers(ctx, job.Questions, job.Description, doc)
	if err != nil {
		return nil, err
	}
	markdown := letters.BuildQuestionsMarkdown(job.Questions, answers)

	var files []types.GeneratedFile
	f, err := writeRowFile(types.FileQuestion, job, jobDir, stagingDir, job.FilePrefix+"_questions.md", []byte(markdown))
	if err != nil {
		return files, err
	}
	files = append(files, f)

	pdf, err := o.renderer.RenderMarkdown(ctx, markdown)
	if err != nil {
		return files, fmt.Errorf("failed to render questions PDF: %w", err)
	}
	f, err = writeRowFile(types.FileQuestion, job, jobDir, stagingDir, job.FilePrefix+"_questions.pdf", pdf)
	if err != nil {
		return files, err
	}
	return append(files, f), nil
}
