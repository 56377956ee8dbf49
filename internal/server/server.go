// Package server exposes the tailoring pipeline and batch orchestrator over
// HTTP: signin, single and batch tailoring, template listing, and artifact
// downloads.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/easyhired/resumer/internal/artifacts"
	"github.com/easyhired/resumer/internal/batch"
	"github.com/easyhired/resumer/internal/config"
	"github.com/easyhired/resumer/internal/ingestion"
)

// GatewayStatus is what the status endpoint needs from the model gateway.
type GatewayStatus interface {
	BackendNames() []string
	CreditExhausted() bool
}

// Server wires the HTTP API over the pipeline components.
type Server struct {
	cfg        *config.Config
	log        zerolog.Logger
	gateway    GatewayStatus
	pipeline   batch.Pipeline
	letters    batch.LetterGenerator
	renderer   batch.DocRenderer
	orch       *batch.Orchestrator
	store      *artifacts.Store
	builtStore *artifacts.Store
	fetcher    *ingestion.SheetFetcher
	templates  *TemplateStore
	users      *UserStore
	tokens     *TokenIssuer
	validate   *validator.Validate

	httpServer *http.Server
}

// Deps carries the constructed components the server serves.
type Deps struct {
	Gateway    GatewayStatus
	Pipeline   batch.Pipeline
	Letters    batch.LetterGenerator
	Renderer   batch.DocRenderer
	Orch       *batch.Orchestrator
	Store      *artifacts.Store
	BuiltStore *artifacts.Store
	Fetcher    *ingestion.SheetFetcher
	Templates  *TemplateStore
	Users      *UserStore
}

// New builds the server and its routes.
func New(cfg *config.Config, deps Deps, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		log:        logger.With().Str("component", "server").Logger(),
		gateway:    deps.Gateway,
		pipeline:   deps.Pipeline,
		letters:    deps.Letters,
		renderer:   deps.Renderer,
		orch:       deps.Orch,
		store:      deps.Store,
		builtStore: deps.BuiltStore,
		fetcher:    deps.Fetcher,
		templates:  deps.Templates,
		users:      deps.Users,
		tokens:     NewTokenIssuer(cfg.SecretKey, cfg.TokenExpiry),
		validate:   validator.New(),
	}
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.routes(),
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("POST /signin", s.handleSignin)
	mux.HandleFunc("GET /api-status", s.requireAuth(s.handleAPIStatus))
	mux.HandleFunc("GET /templates", s.requireAuth(s.handleTemplates))
	mux.HandleFunc("POST /tailor-resume", s.requireAuth(s.handleTailorResume))
	mux.HandleFunc("POST /tailor-resume-batch", s.requireAuth(s.handleTailorBatch))
	mux.HandleFunc("POST /tailor-resume-batch-google-sheets", s.requireAuth(s.handleTailorBatchSheets))
	mux.HandleFunc("GET /cover-letter/content/{filename}", s.requireAuth(s.handleCoverLetterContent))
	mux.HandleFunc("GET /download/resume/{filename}", s.handleDownloadResume)
	mux.HandleFunc("GET /download/cover-letter/{filename}", s.handleDownloadCoverLetter)
	mux.HandleFunc("GET /download/batch/{filename}", s.handleDownloadBatch)
	return mux
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info().Msg("shutting down http server")
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "resumer API is running"})
}
