// Package artifacts persists pipeline outputs to the file-based output
// directory: tailored-resume JSON, derived text and markdown renditions, and
// raw diagnostic dumps for unparseable model responses.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/easyhired/resumer/internal/types"
)

// Store writes artifacts under a single output directory.
type Store struct {
	root string
}

// NewStore creates the output directory if needed and returns a store
// rooted at it.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the output directory path.
func (s *Store) Root() string {
	return s.root
}

// stamp returns a filename-safe identifier. The short uuid suffix keeps
// concurrent batch rows from colliding within the same second.
func Stamp() string {
	return time.Now().Format("20060102_150405") + "_" + uuid.NewString()[:8]
}

// SaveTailoredResume persists the tailored document as indented JSON and
// returns its path.
func (s *Store) SaveTailoredResume(doc *types.Resume) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tailored resume: %w", err)
	}
	path := filepath.Join(s.root, fmt.Sprintf("tailored_resume_%s.json", Stamp()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write tailored resume: %w", err)
	}
	return path, nil
}

// SaveRawDiagnostic persists an unparseable model response verbatim so the
// failure can be inspected, and returns its path.
func (s *Store) SaveRawDiagnostic(raw string) (string, error) {
	path := filepath.Join(s.root, fmt.Sprintf("tailored_resume_raw_%s.txt", Stamp()))
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		return "", fmt.Errorf("failed to write raw diagnostic: %w", err)
	}
	return path, nil
}

// SaveTextRendition persists the plain-text rendition of the document.
func (s *Store) SaveTextRendition(doc *types.Resume) (string, error) {
	path := filepath.Join(s.root, fmt.Sprintf("tailored_resume_text_%s.txt", Stamp()))
	if err := os.WriteFile(path, []byte(ToText(doc)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write text rendition: %w", err)
	}
	return path, nil
}

// SaveMarkdownRendition persists the markdown rendition of the document.
func (s *Store) SaveMarkdownRendition(doc *types.Resume) (string, error) {
	path := filepath.Join(s.root, fmt.Sprintf("tailored_resume_markdown_%s.md", Stamp()))
	if err := os.WriteFile(path, []byte(ToMarkdown(doc)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write markdown rendition: %w", err)
	}
	return path, nil
}

// SaveBytes writes pre-rendered content (PDF bytes, archive bytes) under the
// given filename and returns the full path.
func (s *Store) SaveBytes(filename string, data []byte) (string, error) {
	path := filepath.Join(s.root, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", filename, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return path, nil
}
