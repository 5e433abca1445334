package tutor

import "github.com/abhisek/kotoba/internal/llm"

// ExerciseSchema validates the decoded reply of RequestExercises.
var ExerciseSchema = &llm.Schema{
	Name:        "exercise-set",
	Description: "Multiple-choice exercises generated from a Japanese text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"exercises": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type": "string",
							"enum": []any{"multiple_choice", "info"},
						},
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"items":    map[string]any{"type": "string"},
						},
						"correctAnswer": map[string]any{"type": "integer", "minimum": 0},
						"explanation":   map[string]any{"type": "string"},
						"message":       map[string]any{"type": "string"},
					},
					"required": []any{"type"},
					"allOf": []any{
						map[string]any{
							"if": map[string]any{
								"properties": map[string]any{"type": map[string]any{"const": "multiple_choice"}},
							},
							"then": map[string]any{
								"required": []any{"question", "options", "correctAnswer"},
							},
						},
						map[string]any{
							"if": map[string]any{
								"properties": map[string]any{"type": map[string]any{"const": "info"}},
							},
							"then": map[string]any{
								"required": []any{"message"},
							},
						},
					},
				},
			},
			"vocabulary": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word":    map[string]any{"type": "string"},
						"reading": map[string]any{"type": "string"},
						"meaning": map[string]any{"type": "string"},
						"level":   map[string]any{"type": "string"},
					},
					"required": []any{"word"},
				},
			},
			"grammar": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"pattern":     map[string]any{"type": "string"},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []any{"pattern"},
				},
			},
		},
		"required": []any{"exercises"},
	},
}

// VocabularySchema validates the decoded reply of RequestVocabulary.
var VocabularySchema = &llm.Schema{
	Name:        "vocabulary-list",
	Description: "Vocabulary extracted from a Japanese text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"words": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kanji":        map[string]any{"type": "string"},
						"reading":      map[string]any{"type": "string"},
						"meaning":      map[string]any{"type": "string"},
						"level":        map[string]any{"type": "string"},
						"partOfSpeech": map[string]any{"type": "string"},
						"example":      map[string]any{"type": "string"},
					},
					"required": []any{"kanji", "reading", "meaning", "level"},
				},
			},
		},
		"required": []any{"words"},
	},
}
