package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/easyhired/resumer/internal/artifacts"
	"github.com/easyhired/resumer/internal/batch"
	"github.com/easyhired/resumer/internal/ingestion"
	"github.com/easyhired/resumer/internal/types"
)

// maxUploadBytes caps uploaded workbook size.
const maxUploadBytes = 32 << 20

func (s *Server) handleTailorBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()
	if filepath.Ext(header.Filename) != ".xlsx" {
		writeError(w, http.StatusBadRequest, "file must be an .xlsx workbook")
		return
	}

	templateName, ok := s.resolveTemplate(w, r, r.FormValue("template"))
	if !ok {
		return
	}

	rows, err := ingestion.ReadExcel(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read workbook: %v", err))
		return
	}
	jobs := ingestion.BuildJobs(rows)
	if len(jobs) == 0 {
		writeError(w, http.StatusBadRequest, "workbook has no rows with both Title and Description")
		return
	}

	s.runBatch(w, r, jobs, templateName, nil)
}

type sheetsBatchRequest struct {
	SheetURLs []string `json:"sheet_urls" validate:"required,min=1"`
	Template  string   `json:"template"`
}

func (s *Server) handleTailorBatchSheets(w http.ResponseWriter, r *http.Request) {
	var req sheetsBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "sheet_urls must contain at least one URL")
		return
	}

	templateName, ok := s.resolveTemplate(w, r, req.Template)
	if !ok {
		return
	}

	// One unreachable sheet becomes a row-level error; the other sheets
	// still run.
	var rows []ingestion.Row
	var sheetErrors []types.RowError
	for _, sheetURL := range req.SheetURLs {
		fetched, err := s.fetcher.Fetch(sheetURL)
		if err != nil {
			s.log.Warn().Err(err).Str("url", sheetURL).Msg("sheet fetch failed")
			sheetErrors = append(sheetErrors, types.RowError{Title: sheetURL, Error: err.Error()})
			continue
		}
		rows = append(rows, fetched...)
	}

	jobs := ingestion.BuildJobs(rows)
	if len(jobs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"detail": "no valid rows found in the provided sheets",
			"errors": sheetErrors,
		})
		return
	}

	s.runBatch(w, r, jobs, templateName, sheetErrors)
}

// runBatch executes the orchestrator over prepared jobs and responds with the
// archive URL, the per-row files, and any accumulated errors.
func (s *Server) runBatch(w http.ResponseWriter, r *http.Request, jobs []types.BatchJob, templateName string, priorErrors []types.RowError) {
	template, err := s.templates.Load(templateName)
	if err != nil {
		s.log.Error().Err(err).Str("template", templateName).Msg("template load failed")
		writeError(w, http.StatusInternalServerError, "failed to load template")
		return
	}

	result, err := s.orch.Run(r.Context(), jobs, template, s.store.Root())
	if result != nil && result.StagingDir != "" {
		defer os.RemoveAll(result.StagingDir)
	}
	if err != nil {
		if errors.Is(err, batch.ErrNoArtifacts) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"detail": "no artifacts were generated, every row failed",
				"errors": append(priorErrors, result.Errors...),
			})
			return
		}
		s.log.Error().Err(err).Msg("batch run failed")
		writeError(w, http.StatusInternalServerError, "batch processing failed")
		return
	}

	zipName := fmt.Sprintf("batch_results_%s.zip", artifacts.Stamp())
	zipPath := filepath.Join(s.store.Root(), zipName)
	if err := batch.BuildArchive(result.StagingDir, zipPath); err != nil {
		s.log.Error().Err(err).Msg("archive build failed")
		writeError(w, http.StatusInternalServerError, "failed to build result archive")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"zip_url":  "/download/batch/" + zipName,
		"template": templateName,
		"rows":     len(jobs),
		"files":    result.Files,
		"errors":   append(priorErrors, result.Errors...),
	})
}
