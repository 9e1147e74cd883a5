package insight

import "github.com/abhisek/memoflow/internal/llm"

// Schema is the JSON schema every generated or cached insight must match.
var Schema = &llm.Schema{
	Name:        "word-insight",
	Description: "Study notes for an English word aimed at Chinese-speaking learners",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mnemonic": map[string]any{
				"type":        "string",
				"description": "One memorable association or word-part breakdown (1-2 sentences)",
			},
			"examples": map[string]any{
				"type":        "array",
				"description": "Exactly two natural example sentences with Chinese translations",
				"minItems":    2,
				"maxItems":    2,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"en": map[string]any{"type": "string"},
						"zh": map[string]any{"type": "string"},
					},
					"required":             []any{"en", "zh"},
					"additionalProperties": false,
				},
			},
			"collocations": map[string]any{
				"type":        "array",
				"description": "Exactly two common collocations",
				"minItems":    2,
				"maxItems":    2,
				"items":       map[string]any{"type": "string"},
			},
			"nuance": map[string]any{
				"type":        "string",
				"description": "How the word differs from near-synonyms or common misuse (1-2 sentences)",
			},
		},
		"required":             []any{"mnemonic", "examples", "collocations", "nuance"},
		"additionalProperties": false,
	},
}
