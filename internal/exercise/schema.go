package exercise

import "github.com/avetrov/readmentor/internal/llm"

// ExerciseSchema defines the JSON schema for LLM exercise generation.
var ExerciseSchema = &llm.Schema{
	Name:        "reading-exercise",
	Description: "A short reading passage with comprehension questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"level": map[string]any{
				"type":        "string",
				"enum":        []any{"beginner", "intermediate", "advanced"},
				"description": "Difficulty tier the passage was written for",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "Short topic label, e.g. 'deep sea exploration'",
			},
			"time_target_seconds": map[string]any{
				"type":        "integer",
				"minimum":     60,
				"description": "Suggested completion time in seconds",
			},
			"words_count": map[string]any{
				"type":        "integer",
				"description": "Approximate word count of the passage",
			},
			"passage": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Passage paragraphs in reading order",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"description": "1-based question number, unique within the exercise",
						},
						"skill": map[string]any{
							"type": "string",
							"enum": []any{"GIST", "DETAIL", "INFERENCE"},
						},
						"format": map[string]any{
							"type": "string",
							"enum": []any{"multiple_choice", "short_answer", "true_false_not_given"},
						},
						"question_text": map[string]any{
							"type": "string",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Options prefixed 'A) ...' for multiple choice, empty otherwise",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "For multiple_choice: the option letter alone (A, B, C or D). For true_false_not_given: TRUE, FALSE or NOT GIVEN. For short_answer: the answer words",
						},
						"rationale": map[string]any{
							"type":        "string",
							"description": "One or two sentences citing the passage evidence",
						},
					},
					"required":             []any{"id", "skill", "format", "question_text", "options", "correct_answer", "rationale"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"level", "topic", "time_target_seconds", "words_count", "passage", "questions"},
		"additionalProperties": false,
	},
}
