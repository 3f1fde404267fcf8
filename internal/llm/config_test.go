package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/dropwatch/internal/store"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "DROPWATCH_LLM_PROVIDER"} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("DROPWATCH_LLM_PROVIDER", "openrouter")
	t.Setenv("DROPWATCH_OPENROUTER_API_KEY", "sk-or")
	t.Setenv("DROPWATCH_OPENROUTER_MODEL", "meta-llama/llama-3-8b")
	t.Setenv("DROPWATCH_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openrouter" || cfg.OpenRouter.APIKey != "sk-or" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.OpenRouter.Model != "meta-llama/llama-3-8b" {
		t.Errorf("model = %q", cfg.OpenRouter.Model)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Errorf("default anthropic model lost: %q", cfg.Anthropic.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearKeyEnv(t)
	if _, ok := DiscoverConfig(DefaultConfig()); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig(DefaultConfig())
	if !ok || cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("discover = %+v, %v", cfg, ok)
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, _ = DiscoverConfig(DefaultConfig())
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini first", cfg.Provider)
	}
}

func TestValidate_MissingKeyNamesVariable(t *testing.T) {
	err := Config{Provider: "gemini"}.Validate()
	if err == nil || !strings.Contains(err.Error(), "DROPWATCH_GEMINI_API_KEY") {
		t.Fatalf("err = %v", err)
	}
}

func TestNewProviderFromConfig(t *testing.T) {
	clearKeyEnv(t)

	p, err := NewProviderFromConfig(context.Background(), DefaultConfig(), nil, nil)
	if err != nil || p != nil {
		t.Fatalf("unconfigured = %v, %v; want nil, nil", p, err)
	}

	cfg := DefaultConfig()
	cfg.Provider = "mock"
	p, err = NewProviderFromConfig(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}

	cfg.Provider = "openai"
	if _, err := NewProviderFromConfig(context.Background(), cfg, nil, nil); err == nil {
		t.Error("expected error for openai without key")
	}
}

type recordedEvents struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordedEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"summary":"ok","talking_points":[]}`), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: &Error{Kind: KindUnavailable, Err: errors.New("down")}},
	)
	rec := &recordedEvents{}
	p := WithLogging(mock, ProviderMock, rec, nil)
	ctx := WithPurpose(context.Background(), "advisor-note")

	req := Request{
		System: "advisor",
		Prompt: "student profile",
		Schema: &Schema{Name: "advisor-note", Definition: map[string]any{"type": "object"}},
	}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("second call should fail")
	}

	if len(rec.events) != 2 {
		t.Fatalf("events = %d, want 2", len(rec.events))
	}
	ok, failed := rec.events[0], rec.events[1]
	if !ok.Success || ok.Purpose != "advisor-note" || ok.InputTokens != 12 || ok.Provider != ProviderMock {
		t.Errorf("success event = %+v", ok)
	}
	if !strings.Contains(ok.RequestBody, "[schema: advisor-note]") || !strings.Contains(ok.RequestBody, "student profile") {
		t.Errorf("request body = %q", ok.RequestBody)
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("failure event = %+v", failed)
	}
}

func TestLoggingProvider_RecorderFailureIsNotFatal(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	var warnings strings.Builder
	p := WithLogging(mock, ProviderMock, &recordedEvents{err: errors.New("disk full")}, &warnings)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(warnings.String(), "disk full") {
		t.Errorf("warnings = %q", warnings.String())
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); got < 0.7499 || got > 0.7501 {
		t.Errorf("cost = %v, want 0.75", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
