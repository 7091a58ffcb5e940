// Package lexical provides the tokenizer and canonical-phrase comparator
// shared by all answer scoring. Matching is deliberately lexical, not
// semantic: it is fast, deterministic, and good enough to ground short
// answer phrases against short story facts.
package lexical

import (
	"strings"
	"unicode"
)

// stopWords are dropped during tokenization. Articles, prepositions and
// conjunctions carry no grounding signal for short answer phrases.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true,
	"in": true, "on": true, "at": true, "of": true,
	"to": true, "for": true, "with": true, "is": true,
	"it": true, "its": true, "as": true, "by": true,
	"from": true, "or": true, "be": true,
}

// leadingPrepositions are stripped when canonicalizing an answer phrase so
// that "in the ocean" and "ocean" compare as the same option.
var leadingPrepositions = []string{"in ", "on ", "at "}

// Tokens splits s into lower-cased content words. Non-alphanumeric runes
// are stripped, single-letter tokens and stop words are dropped.
func Tokens(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)

	var out []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 1 || stopWords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TokenSet returns the distinct tokens of s.
func TokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokens(s) {
		set[tok] = true
	}
	return set
}

// Canonical normalizes a phrase for equality and containment comparison:
// lower-case, leading in/on/at stripped, punctuation removed, whitespace
// collapsed.
func Canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	for _, prep := range leadingPrepositions {
		if strings.HasPrefix(s, prep) {
			s = s[len(prep):]
			break
		}
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// SamePhrase reports whether two phrases name the same option: their
// canonical forms are equal or one contains the other. Containment handles
// "ocean" vs "in the ocean", at the cost of over-matching very short
// generic phrases.
func SamePhrase(a, b string) bool {
	ca, cb := Canonical(a), Canonical(b)
	if ca == "" || cb == "" {
		return ca == cb
	}
	return ca == cb || strings.Contains(ca, cb) || strings.Contains(cb, ca)
}

// CollapseSpace trims s and collapses internal whitespace runs to single
// spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
