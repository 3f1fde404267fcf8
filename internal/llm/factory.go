package llm

import (
	"context"
	"fmt"
	"io"
)

// NewProvider builds the provider cfg selects. When recorder is non-nil
// every attempt is logged to it; recorder failures are reported on
// warnings. Retries wrap the logging so each attempt gets its own event.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder, warnings io.Writer) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if recorder != nil {
		base = WithLogging(base, cfg.Provider, recorder, warnings)
	}
	return WithRetry(base, cfg.Retry), nil
}

// NewProviderFromConfig is NewProvider with key discovery: when cfg names
// no provider, the first well-known API key variable that is set picks
// one. It returns (nil, nil) when nothing is configured.
func NewProviderFromConfig(ctx context.Context, cfg Config, recorder EventRecorder, warnings io.Writer) (Provider, error) {
	if !cfg.Enabled() {
		discovered, ok := DiscoverConfig(cfg)
		if !ok {
			return nil, nil
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, recorder, warnings)
}
