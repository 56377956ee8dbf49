package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/easyhired/resumer/internal/artifacts"
	"github.com/easyhired/resumer/internal/batch"
	"github.com/easyhired/resumer/internal/ingestion"
)

var (
	batchFile     string
	batchSheetURL string
	batchTemplate string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Tailor resumes for every row of a spreadsheet",
	Long:  `Process a whole spreadsheet of job postings: each row with a Title and Description gets a tailored resume, cover letter, and question answers, collected into a zip archive.`,
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "Path to an .xlsx workbook of jobs")
	batchCmd.Flags().StringVar(&batchSheetURL, "sheet-url", "", "Publicly shared Google Sheets URL")
	batchCmd.Flags().StringVar(&batchTemplate, "template", "", "Template resume name (default template when omitted)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if (batchFile == "") == (batchSheetURL == "") {
		return fmt.Errorf("exactly one of --file or --sheet-url is required")
	}

	c, err := buildComponents(ctx)
	if err != nil {
		return err
	}
	templates, name, err := c.loadTemplate(batchTemplate)
	if err != nil {
		return err
	}
	template, err := templates.Load(name)
	if err != nil {
		return err
	}

	var rows []ingestion.Row
	if batchFile != "" {
		f, err := os.Open(filepath.Clean(batchFile))
		if err != nil {
			return fmt.Errorf("failed to open workbook: %w", err)
		}
		defer f.Close()
		rows, err = ingestion.ReadExcel(f)
		if err != nil {
			return err
		}
	} else {
		rows, err = ingestion.NewSheetFetcher().Fetch(batchSheetURL)
		if err != nil {
			return err
		}
	}

	jobs := ingestion.BuildJobs(rows)
	if len(jobs) == 0 {
		return fmt.Errorf("no rows with both Title and Description found")
	}

	result, err := c.orch.Run(ctx, jobs, template, c.store.Root())
	if result != nil && result.StagingDir != "" {
		defer os.RemoveAll(result.StagingDir)
	}
	if err != nil {
		return err
	}

	zipPath := filepath.Join(c.store.Root(), fmt.Sprintf("batch_results_%s.zip", artifacts.Stamp()))
	if err := batch.BuildArchive(result.StagingDir, zipPath); err != nil {
		return err
	}

	fmt.Printf("Processed %d rows: %d files, %d errors\n", len(jobs), len(result.Files), len(result.Errors))
	for _, rowErr := range result.Errors {
		fmt.Printf("  row %d (%s): %s\n", rowErr.Row, rowErr.Title, rowErr.Error)
	}
	fmt.Printf("Archive: %s\n", zipPath)
	return nil
}
