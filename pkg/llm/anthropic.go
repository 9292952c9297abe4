package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"sectorlens/internal/model"
)

type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
	hasKey bool
}

func NewAnthropicClient(opts Options) *AnthropicClient {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	m := anthropic.ModelClaudeHaiku4_5
	if opts.Model != "" {
		m = anthropic.Model(opts.Model)
	}

	client := anthropic.NewClient(reqOpts...)
	return &AnthropicClient{
		client: &client,
		model:  m,
		hasKey: opts.APIKey != "",
	}
}

func (c *AnthropicClient) Provider() string {
	return "Anthropic"
}

func (c *AnthropicClient) LookupSector(ctx context.Context, country string) (*model.SectorResult, error) {
	if !c.hasKey {
		return nil, missingKeyError(c.Provider(), "ANTHROPIC_API_KEY")
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildSectorPrompt(country))),
		},
	})
	if err != nil {
		return nil, c.upstreamError(err)
	}

	var sector string
	for _, block := range resp.Content {
		if block.Type == "text" {
			sector = cleanSectorLabel(block.Text)
			break
		}
	}
	if sector == "" {
		return nil, emptyAnswerError(c.Provider())
	}

	return &model.SectorResult{
		Sector:    sector,
		Provider:  c.Provider(),
		ModelUsed: string(c.model),
	}, nil
}

func (c *AnthropicClient) upstreamError(err error) *UpstreamError {
	ue := &UpstreamError{Provider: c.Provider(), Message: err.Error(), Err: err}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		ue.StatusCode = apiErr.StatusCode
		if msg := errorMessageFromBody(apiErr.RawJSON()); msg != "" {
			ue.Message = msg
		} else {
			ue.Message = http.StatusText(apiErr.StatusCode)
		}
	}
	return ue
}
