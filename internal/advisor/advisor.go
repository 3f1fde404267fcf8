// Package advisor drafts counselor notes for assessed students through an
// LLM provider, falling back to the rule-based insight report.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/insight"
	"github.com/abhisek/dropwatch/internal/llm"
	"github.com/abhisek/dropwatch/internal/recommend"
)

// Purpose labels advisor requests in the LLM event log.
const Purpose = "advisor-note"

// Config holds note generation settings.
type Config struct {
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// DefaultConfig returns sensible defaults for note generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.4,
		Timeout:     30 * time.Second,
	}
}

// Input is everything the advisor knows about one student.
type Input struct {
	Profile  [][2]string
	Report   insight.Report
	Programs []string
}

// NewInput assembles an Input from an applicant, its insight report and
// its recommendation set.
func NewInput(in features.Input, report insight.Report, set recommend.Set) Input {
	return Input{
		Profile:  insight.Profile(in),
		Report:   report,
		Programs: set.Programs,
	}
}

// Note is a counselor note.
type Note struct {
	Summary       string
	TalkingPoints []string
	// Generated is false when the note was built from the insight report.
	Generated bool
	Model     string
}

// String renders the note as plain text.
func (n Note) String() string {
	var b strings.Builder
	b.WriteString(n.Summary)
	for _, p := range n.TalkingPoints {
		b.WriteString("\n  - ")
		b.WriteString(p)
	}
	return b.String()
}

// Service generates counselor notes.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an advisor. A nil provider yields a service whose
// Enabled reports false.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether an LLM provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

type noteOutput struct {
	Summary       string   `json:"summary"`
	TalkingPoints []string `json:"talking_points"`
}

// Generate asks the provider for a note.
func (s *Service) Generate(ctx context.Context, in Input) (Note, error) {
	if !s.Enabled() {
		return Note{}, fmt.Errorf("advisor: no LLM provider configured")
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System:      noteSystemPrompt,
		Prompt:      buildNoteUserMessage(in),
		Schema:      NoteSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return Note{}, fmt.Errorf("advisor note generation: %w", err)
	}

	var out noteOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Note{}, fmt.Errorf("parse advisor note: %w", err)
	}
	if strings.TrimSpace(out.Summary) == "" {
		return Note{}, fmt.Errorf("advisor note: empty summary")
	}

	return Note{
		Summary:       out.Summary,
		TalkingPoints: out.TalkingPoints,
		Generated:     true,
		Model:         resp.Model,
	}, nil
}

// Draft returns a generated note, or the fallback note with the error
// that caused the fallback.
func (s *Service) Draft(ctx context.Context, in Input) (Note, error) {
	note, err := s.Generate(ctx, in)
	if err != nil {
		return Fallback(in), err
	}
	return note, nil
}

// Fallback builds a note from the insight report alone.
func Fallback(in Input) Note {
	r := in.Report
	summary := r.Headline
	if len(r.Factors) > 0 {
		summary += " " + r.FactorLabel + ": " + strings.Join(r.Factors, "; ") + "."
	}
	if r.Advice != "" {
		summary += " " + r.Advice
	}
	points := make([]string, 0, len(in.Programs))
	for _, p := range in.Programs {
		points = append(points, "Discuss the "+p)
	}
	return Note{Summary: summary, TalkingPoints: points}
}
