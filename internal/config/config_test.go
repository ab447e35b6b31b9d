package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-formatter/internal/usecase"
)

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "APP_PASSWORD", "GOOGLE_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY",
		"AI_SERVICE_URL", "CHROME_PATH",
		"RESUME_SERVER_PORT", "RESUME_AUTH_PASSWORD", "RESUME_LOG_LEVEL", "RESUME_LOG_FORMAT",
		"RESUME_EXTRACTION_STRATEGY", "RESUME_EXTRACTION_NATIVE_FALLBACK", "RESUME_AI_PROVIDER",
		"RESUME_AI_GEMINI_API_KEY", "RESUME_AI_ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, usecase.StrategyLocal, cfg.Extraction.Strategy)
	assert.False(t, cfg.Extraction.NativeFallback)
	assert.Equal(t, 50, cfg.Extraction.MinBytes)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, 0.1, cfg.AI.Temperature)
	assert.Equal(t, "http://ai-service:8000", cfg.AI.Service.URL)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionMaxAge())
	assert.Equal(t, 10*1024*1024, cfg.BodyLimit())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	env := map[string]string{
		"PORT":                              "8080",
		"APP_PASSWORD":                      "hunter2",
		"GEMINI_API_KEY":                    "gemini-key",
		"ANTHROPIC_API_KEY":                 "anthropic-key",
		"CHROME_PATH":                       "/usr/bin/chromium",
		"RESUME_LOG_LEVEL":                  "debug",
		"RESUME_EXTRACTION_STRATEGY":        "native",
		"RESUME_EXTRACTION_NATIVE_FALLBACK": "true",
		"RESUME_AI_PROVIDER":                "anthropic",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "hunter2", cfg.Auth.Password)
	assert.Equal(t, "hunter2", cfg.Auth.SessionSecret, "secret defaults to the password")
	assert.Equal(t, "gemini-key", cfg.AI.Gemini.APIKey)
	assert.Equal(t, "anthropic-key", cfg.AI.Anthropic.APIKey)
	assert.Equal(t, "/usr/bin/chromium", cfg.Render.ChromePath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, usecase.StrategyNative, cfg.Extraction.Strategy)
	assert.True(t, cfg.Extraction.NativeFallback)
	assert.Equal(t, ProviderAnthropic, cfg.AI.Provider)
}

func TestLoad_PrefixedVariableWins(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("GOOGLE_API_KEY", "legacy")
	t.Setenv("RESUME_AI_GEMINI_API_KEY", "prefixed")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.AI.Gemini.APIKey)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
log:
  format: json
extraction:
  min_bytes: 80
ai:
  provider: service
  service:
    url: http://localhost:9000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := load(v)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 80, cfg.Extraction.MinBytes)
	assert.Equal(t, ProviderService, cfg.AI.Provider)
	assert.Equal(t, "http://localhost:9000", cfg.AI.Service.URL)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"log level":  {"RESUME_LOG_LEVEL": "loud"},
		"log format": {"RESUME_LOG_FORMAT": "xml"},
		"strategy":   {"RESUME_EXTRACTION_STRATEGY": "ocr"},
		"provider":   {"RESUME_AI_PROVIDER": "openai"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearTestEnvVars(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
