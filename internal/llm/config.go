package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// modelAliases maps short names onto model IDs per provider. Names not
// listed are sent as given.
var modelAliases = map[string]map[string]string{
	ProviderAnthropic: {
		"claude-sonnet": "claude-sonnet-4-5",
		"claude-haiku":  "claude-haiku-4-5",
	},
	ProviderOpenAI: {
		"gpt-mini": "gpt-4o-mini",
	},
	ProviderGemini: {
		"gemini-flash": "gemini-2.5-flash",
		"gemini-pro":   "gemini-2.5-pro",
	},
}

func resolveModel(provider, name string) string {
	if id, ok := modelAliases[provider][name]; ok {
		return id
	}
	return name
}

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of the Provider* names. Empty disables the advisor.
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single advisor request including retries.
	Timeout time.Duration `yaml:"timeout"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-mini"
	BaseURL string `yaml:"base_url"` // Optional, for OpenAI-compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.0-flash-exp"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults. No provider is
// selected; the advisor stays disabled until one is configured.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envBindings maps DROPWATCH_* variables onto Config fields.
func envBindings(cfg *Config) map[string]*string {
	return map[string]*string{
		"DROPWATCH_LLM_PROVIDER":       &cfg.Provider,
		"DROPWATCH_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"DROPWATCH_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"DROPWATCH_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"DROPWATCH_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"DROPWATCH_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"DROPWATCH_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"DROPWATCH_GEMINI_MODEL":       &cfg.Gemini.Model,
		"DROPWATCH_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"DROPWATCH_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	}
}

// ApplyEnv overrides cfg with any DROPWATCH_* variables that are set.
func ApplyEnv(cfg Config) Config {
	for name, field := range envBindings(&cfg) {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
	if v := os.Getenv("DROPWATCH_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// DiscoverConfig checks the standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and selects the first
// provider whose key is found. Returns false if none is found.
func DiscoverConfig(base Config) (Config, bool) {
	candidates := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &base.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &base.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &base.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &base.OpenRouter.APIKey},
	}
	for _, p := range candidates {
		if k := os.Getenv(p.env); k != "" {
			base.Provider = p.provider
			*p.key = k
			return base, true
		}
	}
	return base, false
}

// Enabled reports whether a provider has been selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "DROPWATCH_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "DROPWATCH_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "DROPWATCH_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "DROPWATCH_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
