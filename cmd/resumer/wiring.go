package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/easyhired/resumer/internal/artifacts"
	"github.com/easyhired/resumer/internal/batch"
	"github.com/easyhired/resumer/internal/config"
	"github.com/easyhired/resumer/internal/letters"
	"github.com/easyhired/resumer/internal/llm"
	"github.com/easyhired/resumer/internal/observability"
	"github.com/easyhired/resumer/internal/rendering"
	"github.com/easyhired/resumer/internal/server"
	"github.com/easyhired/resumer/internal/tailoring"
)

// components is the fully wired pipeline shared by all commands.
type components struct {
	cfg      *config.Config
	log      zerolog.Logger
	gateway  *llm.Gateway
	store    *artifacts.Store
	built    *artifacts.Store
	tailorer *tailoring.Tailorer
	letters  *letters.Generator
	renderer *rendering.ChromeRenderer
	orch     *batch.Orchestrator
}

// buildComponents loads configuration and wires every pipeline component.
// Backends are registered in failover order: Gemini primary, OpenAI fallback.
func buildComponents(ctx context.Context) (*components, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := observability.NewLogger(cfg.IsDevelopment())

	var backends []llm.Backend
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiBackend(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini backend: %w", err)
		}
		backends = append(backends, gemini)
	}
	if cfg.OpenAIAPIKey != "" {
		openai, err := llm.NewOpenAIBackend(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize openai backend: %w", err)
		}
		backends = append(backends, openai)
	}
	gateway := llm.NewGateway(logger, backends...)

	store, err := artifacts.NewStore(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	built, err := artifacts.NewStore(cfg.BuiltResumeDir)
	if err != nil {
		return nil, err
	}

	tailorer := tailoring.NewTailorer(gateway, store, logger)
	letterGen := letters.NewGenerator(gateway, logger)
	renderer := rendering.NewChromeRenderer()
	orch := batch.NewOrchestrator(tailorer, letterGen, renderer, cfg.BatchMaxConcurrency, logger)

	return &components{
		cfg:      cfg,
		log:      logger,
		gateway:  gateway,
		store:    store,
		built:    built,
		tailorer: tailorer,
		letters:  letterGen,
		renderer: renderer,
		orch:     orch,
	}, nil
}

// loadTemplate resolves and loads a template by name through the template
// store, applying the same default and normalization as the HTTP API.
func (c *components) loadTemplate(name string) (*server.TemplateStore, string, error) {
	templates, err := server.NewTemplateStore(c.cfg.TemplatesDir)
	if err != nil {
		return nil, "", err
	}
	resolved, ok := templates.Normalize(name)
	if !ok {
		return nil, "", fmt.Errorf("template %q not found, available: %v", name, templates.Names())
	}
	return templates, resolved, nil
}
