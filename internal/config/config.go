// Package config loads service configuration from the environment. Values
// come from process env vars, with .env files loaded by the CLI entry point
// before this package reads them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the full service configuration.
type Config struct {
	// Model backends. At least one API key must be set.
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	// Auth.
	SecretKey   string
	TokenExpiry time.Duration

	// Batch processing.
	BatchMaxConcurrency int

	// Paths.
	OutputDir      string
	BuiltResumeDir string
	TemplatesDir   string
	UsersFile      string

	// HTTP.
	Port        int
	Environment string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         getEnv("GEMINI_MODEL", ""),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         getEnv("OPENAI_MODEL", ""),
		SecretKey:           os.Getenv("SECRET_KEY"),
		OutputDir:           getEnv("OUTPUT_DIR", "output"),
		BuiltResumeDir:      getEnv("BUILT_RESUME_DIR", "built_resume"),
		TemplatesDir:        getEnv("TEMPLATES_DIR", "resume_templates"),
		UsersFile:           getEnv("USERS_FILE", "users.json"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		TokenExpiry:         30 * time.Minute,
		BatchMaxConcurrency: 3,
	}

	if v := os.Getenv("BATCH_MAX_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BATCH_MAX_CONCURRENCY: %v", err)
		}
		cfg.BatchMaxConcurrency = n
	}

	if v := os.Getenv("TOKEN_EXPIRY_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_EXPIRY_MINUTES: %v", err)
		}
		cfg.TokenExpiry = time.Duration(n) * time.Minute
	}

	cfg.Port = 8000
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = n
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.GeminiAPIKey == "" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("at least one of GEMINI_API_KEY or OPENAI_API_KEY must be set")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required but not set")
	}
	if c.BatchMaxConcurrency < 1 {
		return fmt.Errorf("BATCH_MAX_CONCURRENCY must be at least 1, got: %d", c.BatchMaxConcurrency)
	}
	if c.TokenExpiry < time.Minute {
		return fmt.Errorf("TOKEN_EXPIRY_MINUTES must be at least 1 minute")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// IsDevelopment reports whether the service runs in a development
// environment, which switches logging to human-readable console output.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
