package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "FRONTEND_URL", "LOG_LEVEL", "GIN_MODE", "LLM_PROVIDER",
		"GROQ_API_KEY", "GROQ_BASE_URL", "GROQ_MODEL",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
		"HUGGINGFACE_API_KEY", "HUGGINGFACE_MODEL_URL", "IMAGE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, "GROQ_API_KEY", cfg.LLM.APIKeyEnv)
	assert.Equal(t, 60*time.Second, cfg.Image.Timeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []string{"GROQ_API_KEY", "HUGGINGFACE_API_KEY"}, cfg.MissingCredentials())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("HUGGINGFACE_API_KEY", "hf")
	t.Setenv("IMAGE_TIMEOUT", "90s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant", cfg.LLM.APIKey)
	assert.Equal(t, 90*time.Second, cfg.Image.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 0, len(cfg.MissingCredentials()))
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMAGE_TIMEOUT", "soon")
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("OPENAI_API_KEY", "sk")
	t.Setenv("LLM_PROVIDER", "openai")

	cfg := FromEnv()

	assert.Equal(t, 60*time.Second, cfg.Image.Timeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []string{"HUGGINGFACE_API_KEY"}, cfg.MissingCredentials())
}
