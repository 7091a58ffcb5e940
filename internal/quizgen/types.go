// Package quizgen turns a free-text comprehension question about a story
// into a fixed-shape multiple-choice answer set: exactly three options,
// exactly one correct. The LLM proposes candidates; everything that makes
// the result contract-compliant — grounding scores, distractor selection,
// repair, assembly, render-mode classification — happens here.
package quizgen

import (
	"github.com/abhisek/storyquiz/internal/llm"
	"github.com/abhisek/storyquiz/internal/story"
)

// RenderMode tells the illustrator how to paint an option.
type RenderMode string

const (
	// RenderBlendStoryWorld renders the option inside the story's
	// established visual world.
	RenderBlendStoryWorld RenderMode = "blend_with_story_world"

	// RenderStandaloneWorld renders the option as a neutral real-world
	// scene, deliberately avoiding the story's setting motifs so a wrong
	// answer doesn't look endorsed.
	RenderStandaloneWorld RenderMode = "standalone_option_world"
)

// CandidateAnswer is a scored candidate produced from a raw model
// proposal. Text is always simplified; SupportLevel is in [0,100].
type CandidateAnswer struct {
	Text         string
	Evidence     string
	SupportLevel int
}

// Option is one entry of the final three-option answer set.
type Option struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	IsCorrect    bool       `json:"is_correct"`
	SupportLevel int        `json:"support_level"`
	RenderMode   RenderMode `json:"render_mode"`
	Evidence     string     `json:"evidence,omitempty"`

	// Image holds the generated illustration, nil when generation failed
	// or was not requested. A missing image never fails the answer set.
	Image []byte `json:"-"`
}

// AskInput is everything the pipeline needs to answer one question.
type AskInput struct {
	// Question is the child's comprehension question. Must be non-empty;
	// an empty transcript is rejected before the pipeline runs.
	Question string

	// History carries earlier turns of this session so follow-up questions
	// resolve correctly.
	History []llm.Message

	// Brief is a short synopsis of the story.
	Brief string

	// Facts is the extracted story-facts record. May be partial; the
	// pipeline normalizes it.
	Facts story.Facts
}

// Timings reports per-stage wall-clock milliseconds for one invocation.
type Timings struct {
	TranscribeMs int64 `json:"transcribe_ms,omitempty"`
	GenerateMs   int64 `json:"generate_ms"`
	RepairMs     int64 `json:"repair_ms,omitempty"`
	IllustrateMs int64 `json:"illustrate_ms,omitempty"`
	TotalMs      int64 `json:"total_ms"`
}

// Result is what a caller receives: always three options, exactly one
// correct, under every failure mode short of network exhaustion.
type Result struct {
	Question string   `json:"question"`
	Options  []Option `json:"options"`
	Timings  Timings  `json:"timings"`
}

// Correct returns the correct option of the set.
func (r *Result) Correct() Option {
	for _, opt := range r.Options {
		if opt.IsCorrect {
			return opt
		}
	}
	return Option{}
}

// candidatePayload is the raw candidate-generation response before any
// scoring or validation beyond the JSON schema.
type candidatePayload struct {
	CandidateCorrect     []rawCandidate `json:"candidate_correct"`
	DistractorCandidates []string       `json:"distractor_candidates"`
	NotAnswerable        bool           `json:"not_answerable"`
}

// rawCandidate is one proposed correct answer with its supporting quote.
type rawCandidate struct {
	Text     string `json:"text"`
	Evidence string `json:"evidence"`
}

// repairPayload is the distractor-repair response.
type repairPayload struct {
	WrongAnswers []string `json:"wrong_answers"`
}
