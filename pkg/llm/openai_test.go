package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func chatCompletionBody(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1767225600,
		"model":   "llama-3.3-70b-versatile",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func TestGroqLookupSector(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var authHeader, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authHeader = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionBody("  Tourism\n"))
	}))
	defer srv.Close()

	client := NewGroqClient(Options{APIKey: "test-key", BaseURL: srv.URL + "/"})

	result, err := client.LookupSector(context.Background(), "Fiji")

	assert.Equal(t, nil, err)
	assert.Equal(t, "Tourism", result.Sector)
	assert.Equal(t, "Groq", result.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", result.ModelUsed)

	assert.Equal(t, "/chat/completions", path)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 50, got.MaxTokens)
	assert.Equal(t, 1, len(got.Messages))
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, buildSectorPrompt("Fiji"), got.Messages[0].Content)
}

func TestGroqLookupSector_Unauthorized(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	client := NewGroqClient(Options{APIKey: "bad-key", BaseURL: srv.URL + "/"})

	result, err := client.LookupSector(context.Background(), "Fiji")

	assert.Equal(t, true, result == nil)

	var ue *UpstreamError
	assert.Equal(t, true, errors.As(err, &ue))
	assert.Equal(t, "Groq", ue.Provider)
	assert.Equal(t, http.StatusUnauthorized, ue.StatusCode)
	assert.Equal(t, "Invalid API Key", ue.Message)
	assert.Equal(t, 1, calls)
}

func TestGroqLookupSector_ServerErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"upstream exploded"}}`))
	}))
	defer srv.Close()

	client := NewGroqClient(Options{APIKey: "test-key", BaseURL: srv.URL + "/"})

	_, err := client.LookupSector(context.Background(), "Fiji")

	var ue *UpstreamError
	assert.Equal(t, true, errors.As(err, &ue))
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
	assert.Equal(t, "upstream exploded", ue.Message)
	assert.Equal(t, 1, calls)
}

func TestGroqLookupSector_EmptyAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionBody("   "))
	}))
	defer srv.Close()

	client := NewGroqClient(Options{APIKey: "test-key", BaseURL: srv.URL + "/"})

	_, err := client.LookupSector(context.Background(), "Fiji")

	var ue *UpstreamError
	assert.Equal(t, true, errors.As(err, &ue))
	assert.Equal(t, 0, ue.StatusCode)
}

func TestGroqLookupSector_MissingKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := NewGroqClient(Options{BaseURL: srv.URL + "/"})

	_, err := client.LookupSector(context.Background(), "Fiji")

	assert.Equal(t, true, errors.Is(err, ErrMissingAPIKey))
	assert.Equal(t, 0, calls)
}

func TestOpenAIClientDefaults(t *testing.T) {
	client := NewOpenAIClient(Options{APIKey: "k"})

	assert.Equal(t, "OpenAI", client.Provider())
	assert.Equal(t, "gpt-4o-mini", string(client.model))
}
