package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"sectorlens/internal/model"
)

const (
	DefaultModelURL = "https://router.huggingface.co/models/stabilityai/stable-diffusion-2-1"
	DefaultTimeout  = 60 * time.Second

	fallbackMimeType = "image/jpeg"
	maxErrorBody     = 4 << 10
)

var (
	ErrMissingAPIKey = errors.New("HUGGINGFACE_API_KEY is not set in environment variables")
	ErrEmptyImage    = errors.New("empty image payload")
)

// StatusError is returned for non-2xx responses. Details holds the response
// body decoded as text when possible.
type StatusError struct {
	StatusCode int
	Details    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("huggingface status %d: %s", e.StatusCode, e.Details)
}

type HuggingFaceClient struct {
	apiKey     string
	modelURL   string
	httpClient *http.Client
}

func NewHuggingFaceClient(apiKey, modelURL string, timeout time.Duration) *HuggingFaceClient {
	if modelURL == "" {
		modelURL = DefaultModelURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HuggingFaceClient{
		apiKey:     apiKey,
		modelURL:   modelURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HuggingFaceClient) Name() string {
	return "HuggingFace"
}

func (c *HuggingFaceClient) Generate(ctx context.Context, prompt string) (*model.Image, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return nil, fmt.Errorf("huggingface encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("huggingface request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Details: errorDetails(body)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface read: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	return &model.Image{
		MimeType: detectMimeType(resp.Header.Get("Content-Type"), data),
		Data:     data,
	}, nil
}

// Illustrate never fails: any error is logged and reported as a result
// without an image.
func (c *HuggingFaceClient) Illustrate(ctx context.Context, sector, country string) model.ImageResult {
	return illustrate(ctx, c, sector, country)
}

func illustrate(ctx context.Context, gen Generator, sector, country string) model.ImageResult {
	result := model.ImageResult{Prompt: BuildPrompt(sector, country)}

	slog.Info("generating image", "provider", gen.Name(), "sector", sector, "country", country)

	img, err := gen.Generate(ctx, result.Prompt)
	if err != nil {
		attrs := []any{"provider", gen.Name(), "error", err}
		var se *StatusError
		if errors.As(err, &se) {
			attrs = append(attrs, "status", se.StatusCode, "details", se.Details)
		}
		slog.Warn("image generation unavailable", attrs...)
		return result
	}

	result.Image = img
	slog.Info("image generated", "provider", gen.Name(), "bytes", len(img.Data), "mime_type", img.MimeType)
	return result
}

func errorDetails(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" || !utf8.ValidString(text) {
		return "Unknown error"
	}
	return text
}

func detectMimeType(contentType string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && strings.HasPrefix(mediaType, "image/") {
		return mediaType
	}
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return fallbackMimeType
}
