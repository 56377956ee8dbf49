package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/easyhired/resumer/internal/artifacts"
)

var (
	tailorJobFile  string
	tailorTemplate string
	tailorNoPDF    bool
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor the template resume to a single job description",
	Long:  `Run the tailoring pipeline once: read a job description from a file (or stdin), tailor the template resume against it, and write the tailored JSON, a PDF resume, and a cover letter to the output directories.`,
	RunE:  runTailor,
}

func init() {
	tailorCmd.Flags().StringVar(&tailorJobFile, "job-file", "", "File containing the job description (stdin when omitted)")
	tailorCmd.Flags().StringVar(&tailorTemplate, "template", "", "Template resume name (default template when omitted)")
	tailorCmd.Flags().BoolVar(&tailorNoPDF, "no-pdf", false, "Skip PDF rendering, write only the tailored JSON")
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	jobDescription, err := readJobDescription(tailorJobFile)
	if err != nil {
		return err
	}

	c, err := buildComponents(ctx)
	if err != nil {
		return err
	}
	templates, name, err := c.loadTemplate(tailorTemplate)
	if err != nil {
		return err
	}
	template, err := templates.Load(name)
	if err != nil {
		return err
	}

	res, err := c.tailorer.Tailor(ctx, jobDescription, template)
	if err != nil {
		return err
	}
	fmt.Printf("Tailored resume: %s\n", res.Path)

	if tailorNoPDF {
		return nil
	}

	pdf, err := c.renderer.RenderResume(ctx, res.Document)
	if err != nil {
		return fmt.Errorf("failed to render resume PDF: %w", err)
	}
	pdfPath, err := c.built.SaveBytes(fmt.Sprintf("tailored_resume_%s.pdf", artifacts.Stamp()), pdf)
	if err != nil {
		return err
	}
	fmt.Printf("Resume PDF: %s\n", pdfPath)

	letter, err := c.letters.CoverLetter(ctx, res.Document, jobDescription)
	if err != nil {
		return fmt.Errorf("failed to generate cover letter: %w", err)
	}
	letterPath, err := c.store.SaveBytes(fmt.Sprintf("cover_letter_%s.md", artifacts.Stamp()), []byte(letter))
	if err != nil {
		return err
	}
	fmt.Printf("Cover letter: %s\n", letterPath)

	return nil
}

func readJobDescription(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read job description from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read job file: %w", err)
	}
	return string(data), nil
}
