package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/easyhired/resumer/internal/artifacts"
)

// creditNotification is surfaced to clients when the primary backend ran out
// of credits mid-request and the gateway switched to the fallback.
const creditNotification = "Your Gemini credits have been used up. To ensure uninterrupted service, we've automatically switched to OpenAI for this request. Consider topping up your credits."

type signinRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "name and password are required")
		return
	}

	user, ok := s.users.Authenticate(req.Name, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "incorrect name or password")
		return
	}
	token, err := s.tokens.Issue(user.Name)
	if err != nil {
		s.log.Error().Err(err).Msg("token signing failed")
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":     token,
		"token_type":       "bearer",
		"admin":            user.Admin,
		"allowed_template": user.AllowedTemplate,
	})
}

func (s *Server) handleAPIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"backends":         s.gateway.BackendNames(),
		"credit_exhausted": s.gateway.CreditExhausted(),
	})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"templates": s.templates.Names(),
		"default":   DefaultTemplate,
	})
}

// resolveTemplate normalizes the requested template name and enforces the
// caller's template permission, writing the error response itself on failure.
func (s *Server) resolveTemplate(w http.ResponseWriter, r *http.Request, requested string) (string, bool) {
	name, ok := s.templates.Normalize(requested)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("template %q not found", requested))
		return "", false
	}
	user := userFrom(r)
	if !canUseTemplate(user, name) {
		allowed := DefaultTemplate
		if user != nil && user.AllowedTemplate != "" {
			allowed = fmt.Sprintf("%s, %s", DefaultTemplate, user.AllowedTemplate)
		}
		writeError(w, http.StatusForbidden, fmt.Sprintf("you do not have permission to use template %q, allowed templates: %s", name, allowed))
		return "", false
	}
	return name, true
}

type tailorRequest struct {
	JobDescription  string   `json:"job_description" validate:"required"`
	Template        string   `json:"template"`
	CoverLetterOnly bool     `json:"cover_letter_only"`
	ReturnJSON      bool     `json:"return_json"`
	Questions       []string `json:"questions"`
}

type answeredQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (s *Server) handleTailorResume(w http.ResponseWriter, r *http.Request) {
	var req tailorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "job_description is required")
		return
	}

	templateName, ok := s.resolveTemplate(w, r, req.Template)
	if !ok {
		return
	}
	template, err := s.templates.Load(templateName)
	if err != nil {
		s.log.Error().Err(err).Str("template", templateName).Msg("template load failed")
		writeError(w, http.StatusInternalServerError, "failed to load template")
		return
	}

	ctx := r.Context()
	res, err := s.pipeline.Tailor(ctx, req.JobDescription, template)
	if err != nil {
		s.log.Error().Err(err).Msg("tailoring failed")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("tailoring failed: %v", err))
		return
	}

	response := map[string]any{
		"job_title": res.JobTitle,
		"template":  templateName,
	}

	if !req.CoverLetterOnly {
		pdf, err := s.renderer.RenderResume(ctx, res.Document)
		if err != nil {
			s.log.Error().Err(err).Msg("resume rendering failed")
			writeError(w, http.StatusInternalServerError, "failed to render resume PDF")
			return
		}
		filename := fmt.Sprintf("tailored_resume_%s.pdf", artifacts.Stamp())
		if _, err := s.builtStore.SaveBytes(filename, pdf); err != nil {
			s.log.Error().Err(err).Msg("resume pdf write failed")
			writeError(w, http.StatusInternalServerError, "failed to save resume PDF")
			return
		}
		response["resume_url"] = "/download/resume/" + filename
	}

	letter, err := s.letters.CoverLetter(ctx, res.Document, req.JobDescription)
	if err != nil {
		s.log.Error().Err(err).Msg("cover letter generation failed")
		writeError(w, http.StatusInternalServerError, "failed to generate cover letter")
		return
	}
	letterStamp := artifacts.Stamp()
	mdName := fmt.Sprintf("cover_letter_%s.md", letterStamp)
	if _, err := s.store.SaveBytes(mdName, []byte(letter)); err != nil {
		s.log.Error().Err(err).Msg("cover letter write failed")
		writeError(w, http.StatusInternalServerError, "failed to save cover letter")
		return
	}
	letterPDF, err := s.renderer.RenderMarkdown(ctx, letter)
	if err != nil {
		s.log.Error().Err(err).Msg("cover letter rendering failed")
		writeError(w, http.StatusInternalServerError, "failed to render cover letter PDF")
		return
	}
	pdfName := fmt.Sprintf("cover_letter_%s.pdf", letterStamp)
	if _, err := s.store.SaveBytes(pdfName, letterPDF); err != nil {
		s.log.Error().Err(err).Msg("cover letter pdf write failed")
		writeError(w, http.StatusInternalServerError, "failed to save cover letter PDF")
		return
	}
	response["cover_letter_url"] = "/download/cover-letter/" + pdfName
	response["cover_letter_markdown"] = mdName

	if len(req.Questions) > 0 {
		answers, err := s.letters.QuestionAnswers(ctx, req.Questions, req.JobDescription, res.Document)
		if err != nil {
			s.log.Error().Err(err).Msg("question answering failed")
			writeError(w, http.StatusInternalServerError, "failed to answer application questions")
			return
		}
		answered := make([]answeredQuestion, len(answers))
		for i, answer := range answers {
			answered[i] = answeredQuestion{Question: req.Questions[i], Answer: answer}
		}
		response["answers"] = answered
	}

	if req.ReturnJSON {
		response["json_path"] = res.Path
		textPath, err := s.store.SaveTextRendition(res.Document)
		if err != nil {
			s.log.Error().Err(err).Msg("text rendition write failed")
		} else {
			response["text_path"] = textPath
		}
		markdownPath, err := s.store.SaveMarkdownRendition(res.Document)
		if err != nil {
			s.log.Error().Err(err).Msg("markdown rendition write failed")
		} else {
			response["markdown_path"] = markdownPath
		}
	}

	if res.CreditExhausted {
		response["notification"] = creditNotification
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleCoverLetterContent(w http.ResponseWriter, r *http.Request) {
	filename, ok := safeFilename(r.PathValue("filename"))
	if !ok || !strings.HasSuffix(filename, ".md") {
		writeError(w, http.StatusBadRequest, "invalid filename")
		return
	}
	data, err := os.ReadFile(filepath.Join(s.store.Root(), filename))
	if err != nil {
		writeError(w, http.StatusNotFound, "cover letter not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"filename": filename,
		"content":  string(data),
	})
}

func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, s.builtStore.Root(), "application/pdf")
}

func (s *Server) handleDownloadCoverLetter(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, s.store.Root(), "application/pdf")
}

func (s *Server) handleDownloadBatch(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, s.store.Root(), "application/zip")
}

// serveArtifact streams one file from an artifact directory. Filenames are
// flat: anything resembling a path is rejected before touching the
// filesystem.
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, dir, contentType string) {
	filename, ok := safeFilename(r.PathValue("filename"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid filename")
		return
	}
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	disposition := "attachment"
	if r.URL.Query().Get("mode") == "inline" {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	http.ServeFile(w, r, path)
}

func safeFilename(name string) (string, bool) {
	if name == "" ||
		strings.ContainsAny(name, "/\\") ||
		strings.Contains(name, "..") {
		return "", false
	}
	return name, true
}
