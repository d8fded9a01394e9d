package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormLogger "gorm.io/gorm/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, envs := range envBindings {
		for _, name := range envs {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Empty(t, cfg.AI.Model, "the gateway picks the provider default")
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "none", cfg.Telemetry.Exporter)
	assert.Equal(t, 5*time.Minute, cfg.Prompts.CacheTTL)
	assert.Equal(t, gormLogger.Warn, cfg.Database.GormLogLevel())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REACT_APP_GEMINI_API_KEY", "AIza-legacy")
	t.Setenv("AI_MODEL", "gemini-1.5-pro")
	t.Setenv("PROMPT_CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://briefy.app ,")
	t.Setenv("DB_LOG_LEVEL", "silent")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "AIza-legacy", cfg.APIKey())
	assert.Equal(t, "gemini-1.5-pro", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.Prompts.CacheTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://briefy.app"}, cfg.HTTP.Origins())
	assert.Equal(t, gormLogger.Silent, cfg.Database.GormLogLevel())
}

func TestLoad_PrimaryGeminiKeyWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "AIza-primary")
	t.Setenv("REACT_APP_GEMINI_API_KEY", "AIza-legacy")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "AIza-primary", cfg.APIKey())
}

func TestLoad_YAMLFileAndEnvPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "briefy.yaml")
	yaml := "ai:\n  provider: openai\n  openai_key: sk-file\nhttp:\n  addr: \":9090\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("HTTP_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "sk-file", cfg.APIKey())
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDiagnostics(t *testing.T) {
	cfg := &Config{AI: AIConfig{Provider: "gemini"}}

	diags := cfg.Diagnostics(false)
	require.Len(t, diags, 3)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "gemini")

	cfg.AI.GeminiKey = "AIza-x"
	cfg.Database.URL = "postgres://localhost/briefy"
	cfg.HTTP.JWTSecret = "secret"
	assert.Empty(t, cfg.Diagnostics(false))

	cfg.AI.GeminiKey = ""
	assert.Empty(t, cfg.Diagnostics(true))
}
