package quizgen

import (
	"github.com/abhisek/storyquiz/internal/lexical"
	"github.com/abhisek/storyquiz/internal/story"
)

// Distractors must score meaningfully below the correct answer so a wrong
// option is never accidentally true.
const (
	distractorScoreCeiling = 60
	distractorScoreMargin  = 8
	maxDistractors         = 2
)

// distractorThreshold is the support level at or above which a candidate
// is rejected as too close to the correct answer.
func distractorThreshold(correctSupport int) int {
	return max(distractorScoreCeiling, correctSupport-distractorScoreMargin)
}

// selectDistractors filters raw distractor phrases down to at most
// maxDistractors wrong-but-plausible options, in input order. Candidates
// that duplicate the correct answer, duplicate each other, or score at or
// above the threshold are dropped.
func selectDistractors(raw []string, correct CandidateAnswer, facts story.Facts, question, brief string) []CandidateAnswer {
	threshold := distractorThreshold(correct.SupportLevel)

	var out []CandidateAnswer
	seen := map[string]bool{lexical.Canonical(correct.Text): true}

	for _, phrase := range raw {
		if len(out) >= maxDistractors {
			break
		}

		text := SimplifyAnswer(phrase, question)
		canon := lexical.Canonical(text)
		if canon == "" || seen[canon] {
			continue
		}
		if lexical.SamePhrase(text, correct.Text) {
			continue
		}

		score := SupportLevel(text, "", facts, question, brief)
		if score >= threshold {
			continue
		}

		seen[canon] = true
		out = append(out, CandidateAnswer{Text: text, SupportLevel: score})
	}

	return out
}
