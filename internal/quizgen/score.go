package quizgen

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/storyquiz/internal/lexical"
	"github.com/abhisek/storyquiz/internal/story"
)

// NotInThisBook is the canned correct answer for questions the story
// cannot answer.
const NotInThisBook = "Not in this book"

// Scoring weights. Additive per rule, clamped to [0,100] at the end.
const (
	factPhraseMatchBonus = 35
	factTokenWeight      = 8
	factTokenCap         = 4
	briefTokenWeight     = 4
	briefTokenCap        = 4
	wherePlaceBonus      = 20
	wherePrefixBonus     = 6
	notInBookFloor       = 12
)

const maxAnswerRunes = 60

// SupportLevel estimates how well a candidate answer is backed by the
// story facts and brief, as a lexical-grounding score in [0,100]. Pure
// function: all inputs explicit, no hidden state.
func SupportLevel(candidate, evidence string, facts story.Facts, question, brief string) int {
	score := 0

	// A candidate that names a known fact phrase outright is strong.
	for _, phrase := range facts.Phrases() {
		if lexical.SamePhrase(phrase, candidate) {
			score += factPhraseMatchBonus
			break
		}
	}

	candTokens := lexical.TokenSet(candidate + " " + evidence)

	factTokens := make(map[string]bool)
	for _, phrase := range facts.Phrases() {
		for tok := range lexical.TokenSet(phrase) {
			factTokens[tok] = true
		}
	}
	score += factTokenWeight * min(sharedCount(candTokens, factTokens), factTokenCap)

	score += briefTokenWeight * min(sharedCount(candTokens, lexical.TokenSet(brief)), briefTokenCap)

	if IsWhereQuestion(question) {
		for _, place := range facts.Places {
			if lexical.SamePhrase(place, candidate) {
				score += wherePlaceBonus
				break
			}
		}
		if hasLocativePrefix(candidate) {
			score += wherePrefixBonus
		}
	}

	// "Not in this book" is always a legitimate option, never scored to zero.
	if strings.EqualFold(strings.TrimSpace(candidate), NotInThisBook) && score < notInBookFloor {
		score = notInBookFloor
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// scoreCandidates simplifies, dedupes and scores raw candidates, returning
// them sorted by support level descending. Duplicates by canonical text are
// dropped, first occurrence wins; ties keep proposal order.
func scoreCandidates(raw []rawCandidate, facts story.Facts, question, brief string) []CandidateAnswer {
	var out []CandidateAnswer
	seen := make(map[string]bool)

	for _, rc := range raw {
		text := SimplifyAnswer(rc.Text, question)
		canon := lexical.Canonical(text)
		if canon == "" || seen[canon] {
			continue
		}
		seen[canon] = true
		out = append(out, CandidateAnswer{
			Text:         text,
			Evidence:     lexical.CollapseSpace(rc.Evidence),
			SupportLevel: SupportLevel(text, rc.Evidence, facts, question, brief),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SupportLevel > out[j].SupportLevel
	})
	return out
}

// SimplifyAnswer normalizes a raw answer phrase for display: whitespace
// collapsed, wrapping quotes and trailing punctuation stripped, truncated
// on a word boundary, first letter capitalized. Answers to "where"
// questions are forced to start with a location preposition.
func SimplifyAnswer(text, question string) string {
	s := lexical.CollapseSpace(text)
	s = strings.Trim(s, `"'`)
	s = strings.TrimRight(s, ".!?,;:")
	s = truncateWords(s, maxAnswerRunes)

	if IsWhereQuestion(question) && s != "" && !hasLocativePrefix(s) {
		s = "in " + lowerArticle(s)
	}

	return capitalizeFirst(s)
}

// lowerArticle lowercases a leading capitalized article so a prepended
// preposition reads naturally ("The beach" becomes "the beach"). Other
// words keep their case; "Paris" must not become "paris".
func lowerArticle(s string) string {
	for _, art := range []string{"The ", "A ", "An "} {
		if strings.HasPrefix(s, art) {
			return strings.ToLower(art) + s[len(art):]
		}
	}
	return s
}

// IsWhereQuestion reports whether the question asks about a place.
func IsWhereQuestion(question string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(question)), "where")
}

func hasLocativePrefix(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(lower, "in ") ||
		strings.HasPrefix(lower, "on ") ||
		strings.HasPrefix(lower, "at ")
}

// truncateWords cuts s to at most max runes, at a word boundary when one
// exists.
func truncateWords(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	cut := max
	for i := max; i > 0; i-- {
		if unicode.IsSpace(runes[i-1]) {
			cut = i - 1
			break
		}
	}
	return strings.TrimSpace(string(runes[:cut]))
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func sharedCount(a, b map[string]bool) int {
	n := 0
	for tok := range a {
		if b[tok] {
			n++
		}
	}
	return n
}
