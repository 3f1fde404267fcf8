package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestResolveModel(t *testing.T) {
	tests := []struct {
		provider, name, want string
	}{
		{ProviderGemini, "gemini-flash", "gemini-2.5-flash"},
		{ProviderGemini, "gemini-2.0-flash", "gemini-2.0-flash"},
		{ProviderAnthropic, "claude-haiku", "claude-haiku-4-5"},
		{ProviderOpenAI, "gpt-mini", "gpt-4o-mini"},
		{ProviderOpenRouter, "gpt-mini", "gpt-mini"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveModel(tt.provider, tt.name), "%s/%s", tt.provider, tt.name)
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(noteSchema.Definition)

	assert.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Properties, 2)
	assert.Equal(t, genai.TypeString, s.Properties["summary"].Type)

	points := s.Properties["talking_points"]
	assert.Equal(t, genai.TypeArray, points.Type)
	assert.Equal(t, genai.TypeString, points.Items.Type)
	require.NotNil(t, points.MinItems)
	assert.Equal(t, int64(1), *points.MinItems)
	assert.Nil(t, points.MaxItems)

	assert.ElementsMatch(t, []string{"summary", "talking_points"}, s.Required)
}

func TestGeminiSchema_EnumAndUnknownType(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":        "null",
		"description": "bucket",
		"enum":        []any{"high", "medium", 3},
	})
	assert.Equal(t, genai.TypeString, s.Type)
	assert.Equal(t, "bucket", s.Description)
	assert.Equal(t, []string{"high", "medium"}, s.Enum)
}
