package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"sectorlens/internal/model"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1/"
	groqDefaultModel = "llama-3.3-70b-versatile"
)

// OpenAIClient talks to any OpenAI-compatible chat completion API. Groq is
// served by the same client with a different base URL.
type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	provider  string
	apiKeyEnv string
	hasKey    bool
}

func NewGroqClient(opts Options) *OpenAIClient {
	if opts.BaseURL == "" {
		opts.BaseURL = groqBaseURL
	}
	if opts.Model == "" {
		opts.Model = groqDefaultModel
	}
	return newOpenAICompatible("Groq", "GROQ_API_KEY", opts)
}

func NewOpenAIClient(opts Options) *OpenAIClient {
	if opts.Model == "" {
		opts.Model = string(openai.ChatModelGPT4oMini)
	}
	return newOpenAICompatible("OpenAI", "OPENAI_API_KEY", opts)
}

func newOpenAICompatible(provider, apiKeyEnv string, opts Options) *OpenAIClient {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := openai.NewClient(reqOpts...)
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModel(opts.Model),
		provider:  provider,
		apiKeyEnv: apiKeyEnv,
		hasKey:    opts.APIKey != "",
	}
}

func (c *OpenAIClient) Provider() string {
	return c.provider
}

func (c *OpenAIClient) LookupSector(ctx context.Context, country string) (*model.SectorResult, error) {
	if !c.hasKey {
		return nil, missingKeyError(c.provider, c.apiKeyEnv)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildSectorPrompt(country)),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return nil, c.upstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, emptyAnswerError(c.provider)
	}

	sector := cleanSectorLabel(resp.Choices[0].Message.Content)
	if sector == "" {
		return nil, emptyAnswerError(c.provider)
	}

	return &model.SectorResult{
		Sector:    sector,
		Provider:  c.provider,
		ModelUsed: string(c.model),
	}, nil
}

func (c *OpenAIClient) upstreamError(err error) *UpstreamError {
	ue := &UpstreamError{Provider: c.provider, Message: err.Error(), Err: err}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		ue.StatusCode = apiErr.StatusCode
		switch {
		case errorMessageFromBody(apiErr.RawJSON()) != "":
			ue.Message = errorMessageFromBody(apiErr.RawJSON())
		case apiErr.Message != "":
			ue.Message = apiErr.Message
		default:
			ue.Message = http.StatusText(apiErr.StatusCode)
		}
	}
	return ue
}
