package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/easyhired/resumer/internal/ingestion"
	"github.com/easyhired/resumer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for signin, resume tailoring, batch processing, and artifact downloads.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := buildComponents(ctx)
	if err != nil {
		return err
	}

	templates, err := server.NewTemplateStore(c.cfg.TemplatesDir)
	if err != nil {
		return err
	}
	users, err := server.LoadUsers(c.cfg.UsersFile)
	if err != nil {
		return err
	}

	srv := server.New(c.cfg, server.Deps{
		Gateway:    c.gateway,
		Pipeline:   c.tailorer,
		Letters:    c.letters,
		Renderer:   c.renderer,
		Orch:       c.orch,
		Store:      c.store,
		BuiltStore: c.built,
		Fetcher:    ingestion.NewSheetFetcher(),
		Templates:  templates,
		Users:      users,
	}, c.log)

	return srv.Start(ctx)
}
