package quizgen

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/abhisek/storyquiz/internal/story"
)

const optionCount = 3

// assembleOptions builds the final option set: the correct answer plus
// distractors, padded to exactly three entries from the built-in pools,
// shuffled so the correct answer's position is unpredictable, and
// classified for rendering. rng may be nil, in which case the shared
// random source is used; tests inject a seeded one.
func assembleOptions(correct CandidateAnswer, distractors []CandidateAnswer, facts story.Facts, question, brief string, rng *rand.Rand) []Option {
	distractors = backfillDistractors(distractors, correct, facts, question, brief, optionCount-1)

	options := make([]Option, 0, optionCount)
	options = append(options, Option{
		ID:           uuid.NewString(),
		Text:         correct.Text,
		IsCorrect:    true,
		SupportLevel: correct.SupportLevel,
		Evidence:     correct.Evidence,
	})
	for _, d := range distractors {
		if len(options) >= optionCount {
			break
		}
		options = append(options, Option{
			ID:           uuid.NewString(),
			Text:         d.Text,
			SupportLevel: d.SupportLevel,
		})
	}

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	for i := range options {
		options[i].RenderMode = classifyRenderMode(options[i], facts)
	}

	return options
}
