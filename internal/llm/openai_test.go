package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, status int, body map[string]any) (*OpenAIProvider, *[]byte) {
	t.Helper()
	var got []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-mini", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)
	return p, &got
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_StructuredNote(t *testing.T) {
	p, body := chatServer(t, http.StatusOK, chatCompletion(validNote, "stop"))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a student-success advisor.",
		Prompt:    "Write a counselor note.",
		Schema:    noteSchema,
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25}, resp.Usage)

	var sent struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name string `json:"name"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	require.NoError(t, json.Unmarshal(*body, &sent))
	assert.Equal(t, "gpt-4o-mini", sent.Model)
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, "system", sent.Messages[0].Role)
	assert.Equal(t, "Write a counselor note.", sent.Messages[1].Content)
	assert.Equal(t, "json_schema", sent.ResponseFormat.Type)
	assert.Equal(t, "test-note", sent.ResponseFormat.JSONSchema.Name)
}

func TestOpenAIProvider_NoSystemPrompt(t *testing.T) {
	p, body := chatServer(t, http.StatusOK, chatCompletion("plain", "stop"))
	resp, err := p.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, `plain`, string(resp.Content))
	assert.NotContains(t, string(*body), `"system"`)
}

func TestOpenAIProvider_SchemaMismatch(t *testing.T) {
	p, _ := chatServer(t, http.StatusOK, chatCompletion(`{"summary":"no points"}`, "stop"))
	_, err := p.Generate(context.Background(), Request{Prompt: "x", Schema: noteSchema})
	kind, _ := KindOf(err)
	assert.Equal(t, KindInvalidResponse, kind)
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p, _ := chatServer(t, http.StatusOK, chatCompletion(`{"summ`, "length"))
	_, err := p.Generate(context.Background(), Request{Prompt: "x", Schema: noteSchema})
	kind, _ := KindOf(err)
	assert.Equal(t, KindTruncated, kind)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	for status, want := range map[int]ErrorKind{
		http.StatusTooManyRequests:     KindRateLimit,
		http.StatusInternalServerError: KindUnavailable,
	} {
		p, _ := chatServer(t, status, map[string]any{
			"error": map[string]any{"type": "error", "message": http.StatusText(status)},
		})
		_, err := p.Generate(context.Background(), Request{Prompt: "test", MaxTokens: 100})
		kind, ok := KindOf(err)
		require.True(t, ok, "status %d: %v", status, err)
		assert.Equal(t, want, kind, "status %d", status)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	body := chatCompletion("", "stop")
	body["choices"] = []map[string]any{}
	p, _ := chatServer(t, http.StatusOK, body)
	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	kind, _ := KindOf(err)
	assert.Equal(t, KindInvalidResponse, kind)
}

func TestNewOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"})
	assert.Error(t, err, "missing key")

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "gpt-mini"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-mini", p.ModelID(), "OpenRouter IDs are not aliased")
}

func TestNewOpenRouterProvider_BaseURL(t *testing.T) {
	var hit bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("ok", "stop"))
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "meta-llama/llama-3-8b", BaseURL: server.URL})
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.True(t, hit)
}
