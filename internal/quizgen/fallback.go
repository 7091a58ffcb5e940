package quizgen

import (
	"fmt"

	"github.com/abhisek/storyquiz/internal/lexical"
	"github.com/abhisek/storyquiz/internal/story"
)

// notInBookSupport is the support level assigned to the canned correct
// answer when the question is not answerable from the facts.
const notInBookSupport = 20

// Built-in distractor pools, used when selection and repair together still
// come up short. Generic wrong locations for "where" questions, generic
// uncertainty phrases otherwise.
var (
	fallbackWherePool = []string{
		"In a busy city",
		"On the moon",
		"At a snowy mountain",
		"In a quiet library",
	}

	fallbackGeneralPool = []string{
		"Something from a different story",
		"A surprise nobody saw",
		"A talking robot",
		"A giant birthday cake",
	}
)

// fallbackPools returns both built-in pools, the one matching the
// question type first.
func fallbackPools(question string) [][]string {
	if IsWhereQuestion(question) {
		return [][]string{fallbackWherePool, fallbackGeneralPool}
	}
	return [][]string{fallbackGeneralPool, fallbackWherePool}
}

// backfillDistractors pads distractors up to want entries from the
// built-in pools. Pool entries that canonically collide with the correct
// answer or an existing distractor are skipped, as are entries scoring
// high enough against the facts to read as true. When both pools run dry
// the set is topped up with synthesized filler, so the caller always gets
// want distractors back.
func backfillDistractors(distractors []CandidateAnswer, correct CandidateAnswer, facts story.Facts, question, brief string, want int) []CandidateAnswer {
	if len(distractors) >= want {
		return distractors
	}

	threshold := distractorThreshold(correct.SupportLevel)
	seen := map[string]bool{lexical.Canonical(correct.Text): true}
	for _, d := range distractors {
		seen[lexical.Canonical(d.Text)] = true
	}

	for _, pool := range fallbackPools(question) {
		for _, phrase := range pool {
			if len(distractors) >= want {
				return distractors
			}
			canon := lexical.Canonical(phrase)
			if seen[canon] || lexical.SamePhrase(phrase, correct.Text) {
				continue
			}
			score := SupportLevel(phrase, "", facts, question, brief)
			if score >= threshold {
				continue
			}
			seen[canon] = true
			distractors = append(distractors, CandidateAnswer{Text: phrase, SupportLevel: score})
		}
	}

	for n := 1; len(distractors) < want; n++ {
		phrase := fillerDistractor(n)
		if seen[lexical.Canonical(phrase)] || lexical.SamePhrase(phrase, correct.Text) {
			continue
		}
		seen[lexical.Canonical(phrase)] = true
		distractors = append(distractors, CandidateAnswer{
			Text:         phrase,
			SupportLevel: SupportLevel(phrase, "", facts, question, brief),
		})
	}

	return distractors
}

var fillerNumbers = []string{"one", "two", "three", "four", "five"}

// fillerDistractor synthesizes a wrong answer of last resort. Each n
// yields a lexically distinct phrase, so the backfill loop always
// terminates with a full set.
func fillerDistractor(n int) string {
	if n <= len(fillerNumbers) {
		return "Mystery answer number " + fillerNumbers[n-1]
	}
	return fmt.Sprintf("Mystery answer number %d", n)
}

// notAnswerableSet builds the fixed answer set for questions the story
// cannot answer.
func notAnswerableSet(facts story.Facts, question, brief string) (CandidateAnswer, []CandidateAnswer) {
	correct := CandidateAnswer{Text: NotInThisBook, SupportLevel: notInBookSupport}
	distractors := backfillDistractors(nil, correct, facts, question, brief, maxDistractors)
	return correct, distractors
}
