package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort         = "3000"
	defaultProvider     = "groq"
	defaultImageTimeout = 60 * time.Second
)

type Config struct {
	Port        string
	FrontendURL string
	LogLevel    slog.Level
	GinMode     string

	LLM   LLMConfig
	Image ImageConfig
}

type LLMConfig struct {
	Provider string
	APIKey   string
	// APIKeyEnv names the variable APIKey was read from.
	APIKeyEnv string
	BaseURL   string
	Model     string
}

type ImageConfig struct {
	APIKey   string
	ModelURL string
	Timeout  time.Duration
}

// Load reads .env (if present) and the process environment. Missing
// credentials are not an error; see MissingCredentials.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}
	return FromEnv()
}

func FromEnv() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", defaultPort),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		LogLevel:    parseLevel(os.Getenv("LOG_LEVEL")),
		GinMode:     os.Getenv("GIN_MODE"),
		Image: ImageConfig{
			APIKey:   os.Getenv("HUGGINGFACE_API_KEY"),
			ModelURL: os.Getenv("HUGGINGFACE_MODEL_URL"),
			Timeout:  getDuration("IMAGE_TIMEOUT", defaultImageTimeout),
		},
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", defaultProvider))
	cfg.LLM = LLMConfig{Provider: provider}

	switch provider {
	case "openai":
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
		cfg.LLM.BaseURL = os.Getenv("OPENAI_BASE_URL")
		cfg.LLM.Model = os.Getenv("OPENAI_MODEL")
	case "anthropic":
		cfg.LLM.APIKeyEnv = "ANTHROPIC_API_KEY"
		cfg.LLM.Model = os.Getenv("ANTHROPIC_MODEL")
	default:
		cfg.LLM.APIKeyEnv = "GROQ_API_KEY"
		cfg.LLM.BaseURL = os.Getenv("GROQ_BASE_URL")
		cfg.LLM.Model = os.Getenv("GROQ_MODEL")
	}
	cfg.LLM.APIKey = os.Getenv(cfg.LLM.APIKeyEnv)

	return cfg
}

// MissingCredentials lists the unset API key variables needed by the
// configured providers.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.LLM.APIKey == "" {
		missing = append(missing, c.LLM.APIKeyEnv)
	}
	if c.Image.APIKey == "" {
		missing = append(missing, "HUGGINGFACE_API_KEY")
	}
	return missing
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if raw == "" {
		return slog.LevelInfo
	}
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}
