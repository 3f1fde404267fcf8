package advisor

import "github.com/abhisek/dropwatch/internal/llm"

// NoteSchema defines the JSON schema for counselor notes.
var NoteSchema = &llm.Schema{
	Name:        "advisor-note",
	Description: "A short counselor note about one student's dropout risk",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences describing the student's situation",
			},
			"talking_points": map[string]any{
				"type":        "array",
				"description": "Concrete points for the counselor to raise with the student",
				"items": map[string]any{
					"type": "string",
				},
				"minItems": 1,
				"maxItems": 5,
			},
		},
		"required":             []any{"summary", "talking_points"},
		"additionalProperties": false,
	},
}
