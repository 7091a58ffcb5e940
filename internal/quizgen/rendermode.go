package quizgen

import (
	"github.com/abhisek/storyquiz/internal/lexical"
	"github.com/abhisek/storyquiz/internal/story"
)

// blendSupportThreshold: a wrong answer this well-supported is
// book-adjacent enough to stay visually inside the story's world.
const blendSupportThreshold = 55

// classifyRenderMode decides how an option's illustration should be
// framed. Correct answers always blend into the story world. Wrong answers
// blend only when they are lexically grounded in the facts or score at
// least blendSupportThreshold; everything else renders as a standalone
// real-world scene so the picture doesn't imply correctness.
func classifyRenderMode(opt Option, facts story.Facts) RenderMode {
	if opt.IsCorrect {
		return RenderBlendStoryWorld
	}
	if groundedInFacts(opt.Text, facts) || opt.SupportLevel >= blendSupportThreshold {
		return RenderBlendStoryWorld
	}
	return RenderStandaloneWorld
}

// groundedInFacts reports whether the text lexically matches any fact
// phrase.
func groundedInFacts(text string, facts story.Facts) bool {
	for _, phrase := range facts.Phrases() {
		if lexical.SamePhrase(phrase, text) {
			return true
		}
	}
	return false
}
