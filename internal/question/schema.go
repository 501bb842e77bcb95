package question

import "github.com/abhisek/mora/internal/llm"

// Schema defines the JSON schema for LLM question generation
// responses.
var Schema = &llm.Schema{
	Name:        "practice-question",
	Description: "A single practice question with answer, options, and explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the learner, in plain ASCII text",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The correct answer. For multiple choice: the text of the correct option.",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Exactly 4 options for multiple choice. Empty array for short answer.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Step-by-step worked solution, age-appropriate for a child",
			},
		},
		"required":             []any{"question", "correct_answer", "options", "explanation"},
		"additionalProperties": false,
	},
}
