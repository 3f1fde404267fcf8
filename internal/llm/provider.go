// Package llm drafts structured text with a hosted language model. The
// advisor is its only caller: one system prompt, one student profile, one
// JSON object back.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion per call.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, asks the provider for JSON matching it. Without a
	// schema Content carries the raw text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Response is the model output of one request.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// Truncated is set when generation stopped at MaxTokens.
	Truncated bool
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// complete turns raw provider output into a Response. Structured requests
// fail when the output was cut short or does not match the schema.
func complete(req Request, text string, usage Usage, model string, truncated bool) (*Response, error) {
	content := json.RawMessage(text)
	if req.Schema != nil {
		if truncated {
			return nil, &Error{Kind: KindTruncated, Content: content}
		}
		if err := req.Schema.Validate(content); err != nil {
			return nil, err
		}
	}
	return &Response{Content: content, Usage: usage, Model: model, Truncated: truncated}, nil
}

type purposeKey struct{}

// WithPurpose labels the requests made with ctx, e.g. "advisor-note".
// The label ends up in the request log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
