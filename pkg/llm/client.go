package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sectorlens/internal/model"
)

const (
	temperature = 0.7
	maxTokens   = 50
)

const sectorPrompt = `What is the highest performing economic sector in %s? Give a concise answer (1-3 words) with just the sector name, nothing else. For example: "Technology", "Agriculture", "Tourism", etc.`

var ErrMissingAPIKey = errors.New("api key is not configured")

type Client interface {
	LookupSector(ctx context.Context, country string) (*model.SectorResult, error)
	Provider() string
}

// Options configures a provider client. Empty BaseURL and Model fall back to
// the provider defaults.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

func NewClient(provider string, opts Options) (Client, error) {
	switch strings.ToLower(provider) {
	case "", ProviderGroq:
		return NewGroqClient(opts), nil
	case ProviderOpenAI:
		return NewOpenAIClient(opts), nil
	case ProviderAnthropic:
		return NewAnthropicClient(opts), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}

// UpstreamError describes a failed sector lookup. StatusCode is zero when no
// HTTP response was received.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func buildSectorPrompt(country string) string {
	return fmt.Sprintf(sectorPrompt, country)
}

func missingKeyError(provider, envVar string) *UpstreamError {
	return &UpstreamError{
		Provider: provider,
		Message:  envVar + " is not set in environment variables",
		Err:      ErrMissingAPIKey,
	}
}

func emptyAnswerError(provider string) *UpstreamError {
	return &UpstreamError{
		Provider: provider,
		Message:  "no sector in response from " + provider,
	}
}

// cleanSectorLabel trims the model answer down to the bare label. Any
// non-empty text is accepted as a sector.
func cleanSectorLabel(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimSuffix(content, ".")
	content = strings.Trim(content, "\"'`")
	return strings.TrimSpace(content)
}

// errorMessageFromBody pulls the provider message out of a JSON error body,
// which is either {"error":{"message":...}} or {"message":...}.
func errorMessageFromBody(raw string) string {
	if raw == "" {
		return ""
	}

	var body struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return ""
	}
	if body.Error.Message != "" {
		return body.Error.Message
	}
	return body.Message
}
