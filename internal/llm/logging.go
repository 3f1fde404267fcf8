package llm

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/dropwatch/internal/store"
)

// EventRecorder stores one event per request. store.EventRepo satisfies it.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every request it forwards.
type LoggingProvider struct {
	inner    Provider
	provider string
	recorder EventRecorder
	warnings io.Writer
}

// WithLogging wraps p so each Generate call lands in recorder under the
// given provider name. A nil warnings writer discards recorder errors.
func WithLogging(p Provider, provider string, recorder EventRecorder, warnings io.Writer) Provider {
	if warnings == nil {
		warnings = io.Discard
	}
	return &LoggingProvider{inner: p, provider: provider, recorder: recorder, warnings: warnings}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A cancelled caller still gets its request logged.
	if logErr := l.recorder.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(l.warnings, "warning: failed to log LLM request: %v\n", logErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// transcript is the request as shown by `dropwatch llm view`.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[user]\n%s\n", req.Prompt)
	if req.Schema != nil {
		if def, err := req.Schema.JSON(); err == nil {
			fmt.Fprintf(&b, "\n[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
