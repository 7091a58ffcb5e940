package quizgen

import "github.com/abhisek/storyquiz/internal/llm"

// CandidateSchema defines the JSON schema for the primary
// candidate-generation call.
var CandidateSchema = &llm.Schema{
	Name:        "answer-candidates",
	Description: "Candidate answers to a child's comprehension question about a story",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"candidate_correct": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "A short answer phrase, at most a few words",
						},
						"evidence": map[string]any{
							"type":        "string",
							"description": "The story detail that supports this answer",
						},
					},
					"required":             []any{"text", "evidence"},
					"additionalProperties": false,
				},
				"description": "Proposed correct answers, best first",
			},
			"distractor_candidates": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Short wrong-but-plausible answer phrases",
			},
			"not_answerable": map[string]any{
				"type":        "boolean",
				"description": "True when the story facts cannot answer the question",
			},
		},
		"required":             []any{"candidate_correct", "distractor_candidates", "not_answerable"},
		"additionalProperties": false,
	},
}

// RepairSchema defines the JSON schema for the distractor-repair call.
var RepairSchema = &llm.Schema{
	Name:        "wrong-answers",
	Description: "Additional wrong answer phrases for a multiple-choice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"wrong_answers": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Six short phrases that are clearly wrong for the question but sound plausible to a child",
			},
		},
		"required":             []any{"wrong_answers"},
		"additionalProperties": false,
	},
}
