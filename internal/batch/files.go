package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/easyhired/resumer/internal/types"
)

const resumeFilenameMax = 50

// resumePDFName derives the resume filename from the candidate name,
// stripped to alphanumerics and capped so the full filename stays within 50
// characters.
func resumePDFName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		cleaned = "resume"
	}
	const suffix = "_resume.pdf"
	if len(cleaned) > resumeFilenameMax-len(suffix) {
		cleaned = cleaned[:resumeFilenameMax-len(suffix)]
	}
	return cleaned + suffix
}

// writeRowFile writes content into the row's durable folder, mirrors it into
// staging, and returns the GeneratedFile record pointing at both.
func writeRowFile(fileType types.FileType, job types.BatchJob, jobDir, stagingDir, filename string, content []byte) (types.GeneratedFile, error) {
	path := filepath.Join(jobDir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return types.GeneratedFile{}, fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := os.WriteFile(filepath.Join(stagingDir, filename), content, 0o644); err != nil {
		return types.GeneratedFile{}, fmt.Errorf("failed to stage %s: %w", filename, err)
	}
	return types.GeneratedFile{
		Type:     fileType,
		Title:    job.Title,
		Folder:   job.SafeTitle,
		Filename: filename,
		Path:     path,
		ZipPath:  job.SafeTitle + "/" + filename,
	}, nil
}
