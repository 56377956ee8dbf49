package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTemplate = `{
	"name": "Michael Example",
	"contact": {"email": "michael@example.com", "location": "Berlin, Germany"},
	"summary": "Senior engineer with broad product experience.",
	"experience": []
}`

func writeTemplateDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestNewTemplateStore_ValidatesTemplates(t *testing.T) {
	dir := writeTemplateDir(t, map[string]string{
		"michael.json": validTemplate,
		"custom.json":  validTemplate,
	})
	store, err := NewTemplateStore(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"michael", "custom"}, store.Names())
}

func TestNewTemplateStore_RejectsMissingFields(t *testing.T) {
	dir := writeTemplateDir(t, map[string]string{
		"broken.json": `{"name": "No Summary", "contact": {}, "experience": []}`,
	})
	_, err := NewTemplateStore(dir)
	assert.ErrorContains(t, err, "invalid")
}

func TestNewTemplateStore_EmptyDir(t *testing.T) {
	_, err := NewTemplateStore(t.TempDir())
	assert.ErrorContains(t, err, "no templates")
}

func TestTemplateStore_Normalize(t *testing.T) {
	dir := writeTemplateDir(t, map[string]string{"michael.json": validTemplate})
	store, err := NewTemplateStore(dir)
	require.NoError(t, err)

	name, ok := store.Normalize("")
	require.True(t, ok)
	assert.Equal(t, "michael", name, "empty request resolves to the default")

	name, ok = store.Normalize("MICHAEL.json")
	require.True(t, ok)
	assert.Equal(t, "michael", name)

	_, ok = store.Normalize("unknown")
	assert.False(t, ok)
}

func TestTemplateStore_Load(t *testing.T) {
	dir := writeTemplateDir(t, map[string]string{"michael.json": validTemplate})
	store, err := NewTemplateStore(dir)
	require.NoError(t, err)

	resume, err := store.Load("michael")
	require.NoError(t, err)
	assert.Equal(t, "Michael Example", resume.Name)
	assert.Equal(t, "Berlin, Germany", resume.Contact["location"])
}

func TestCanUseTemplate(t *testing.T) {
	admin := &User{Name: "alice", Admin: true}
	restricted := &User{Name: "bob", AllowedTemplate: "custom"}
	plain := &User{Name: "carol"}

	assert.True(t, canUseTemplate(admin, "anything"))
	assert.True(t, canUseTemplate(restricted, DefaultTemplate))
	assert.True(t, canUseTemplate(restricted, "Custom"))
	assert.False(t, canUseTemplate(restricted, "other"))
	assert.True(t, canUseTemplate(plain, DefaultTemplate))
	assert.False(t, canUseTemplate(plain, "custom"))
	assert.False(t, canUseTemplate(nil, DefaultTemplate))
}
