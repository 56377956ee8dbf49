package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SECRET_KEY", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.BatchMaxConcurrency)
	assert.Equal(t, 30*time.Minute, cfg.TokenExpiry)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "resume_templates", cfg.TemplatesDir)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BATCH_MAX_CONCURRENCY", "5")
	t.Setenv("PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.BatchMaxConcurrency)
	assert.Equal(t, 9000, cfg.Port)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("SECRET_KEY", "s")

	_, err := Load()
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "SECRET_KEY")
}

func TestLoad_RejectsBadConcurrency(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BATCH_MAX_CONCURRENCY", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "BATCH_MAX_CONCURRENCY")
}
