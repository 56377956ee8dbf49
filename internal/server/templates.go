package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/easyhired/resumer/internal/types"
)

// DefaultTemplate is the template used when a request names none.
const DefaultTemplate = "michael"

// templateSchema enforces field presence on template files at load time.
// Content is not otherwise constrained; the pipeline handles shape variance.
const templateSchema = `{
	"type": "object",
	"required": ["name", "contact", "summary", "experience"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"contact": {"type": "object"},
		"summary": {"type": "string"},
		"experience": {"type": "array"}
	}
}`

// TemplateStore serves the baseline resume templates from disk. Template
// names are the file base names without extension, matched
// case-insensitively.
type TemplateStore struct {
	dir   string
	names []string
}

// NewTemplateStore scans the template directory and validates every
// template against the structural schema.
func NewTemplateStore(dir string) (*TemplateStore, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan template directory %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no templates found in %s", dir)
	}

	schema := gojsonschema.NewStringLoader(templateSchema)
	var names []string
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", path, err)
		}
		result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to validate template %s: %w", path, err)
		}
		if !result.Valid() {
			return nil, fmt.Errorf("template %s is invalid: %v", path, result.Errors())
		}
		names = append(names, strings.TrimSuffix(filepath.Base(path), ".json"))
	}
	return &TemplateStore{dir: dir, names: names}, nil
}

// Names lists the available template names.
func (t *TemplateStore) Names() []string {
	return append([]string(nil), t.names...)
}

// Normalize resolves a requested template name case-insensitively to the
// on-disk name. An empty request resolves to the default template.
func (t *TemplateStore) Normalize(requested string) (string, bool) {
	requested = strings.TrimSuffix(strings.TrimSpace(requested), ".json")
	if requested == "" {
		requested = DefaultTemplate
	}
	for _, name := range t.names {
		if strings.EqualFold(name, requested) {
			return name, true
		}
	}
	return "", false
}

// Load reads a template resume by its normalized name.
func (t *TemplateStore) Load(name string) (*types.Resume, error) {
	data, err := os.ReadFile(filepath.Join(t.dir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	var resume types.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return &resume, nil
}

// canUseTemplate enforces template permissions: admins use anything, other
// users get the default template plus their explicitly allowed one.
func canUseTemplate(user *User, name string) bool {
	if user == nil {
		return false
	}
	if user.Admin || strings.EqualFold(name, DefaultTemplate) {
		return true
	}
	return strings.EqualFold(user.AllowedTemplate, name)
}
