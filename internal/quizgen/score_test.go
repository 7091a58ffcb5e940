package quizgen

import (
	"testing"
	"unicode/utf8"

	"github.com/abhisek/storyquiz/internal/story"
)

func testFacts() story.Facts {
	return story.Facts{
		Characters: []string{"Fin", "Coral"},
		Places:     []string{"the coral reef", "the deep cave"},
		Objects:    []string{"a shiny pearl"},
		Events:     []string{"Fin found a shiny pearl"},
		Setting:    "in the ocean",
		WorldTags:  []string{"ocean"},
	}
}

const testBrief = "Fin the little fish explores the coral reef and finds a shiny pearl near the deep cave."

func TestSupportLevelBounds(t *testing.T) {
	inputs := []struct {
		candidate, evidence, question, brief string
		facts                                story.Facts
	}{
		{"", "", "", "", story.Facts{}},
		{"In the coral reef", "Fin lived in the coral reef", "Where does Fin live?", testBrief, testFacts()},
		{"a shiny pearl the coral reef the deep cave Fin Coral", "Fin found a shiny pearl in the coral reef by the deep cave in the ocean", "Where does Fin live?", testBrief, testFacts()},
		{"%%% !!!", "???", "where???", "!!!", testFacts()},
	}
	for _, in := range inputs {
		got := SupportLevel(in.candidate, in.evidence, in.facts, in.question, in.brief)
		if got < 0 || got > 100 {
			t.Errorf("SupportLevel(%q) = %d, out of [0,100]", in.candidate, got)
		}
	}
}

func TestSupportLevelGroundedBeatsUngrounded(t *testing.T) {
	facts := testFacts()
	question := "Where does Fin live?"

	grounded := SupportLevel("In the coral reef", "", facts, question, testBrief)
	ungrounded := SupportLevel("In a spaceship", "", facts, question, testBrief)

	if grounded <= ungrounded {
		t.Errorf("grounded=%d should exceed ungrounded=%d", grounded, ungrounded)
	}
}

func TestSupportLevelWhereBonuses(t *testing.T) {
	facts := testFacts()
	cand := "In the coral reef"

	where := SupportLevel(cand, "", facts, "Where does Fin live?", testBrief)
	other := SupportLevel(cand, "", facts, "What did Fin find?", testBrief)

	if diff := where - other; diff != wherePlaceBonus+wherePrefixBonus {
		t.Errorf("where bonus = %d, want %d", diff, wherePlaceBonus+wherePrefixBonus)
	}
}

func TestSupportLevelNotInBookFloor(t *testing.T) {
	got := SupportLevel(NotInThisBook, "", story.Facts{}, "What color was the pearl?", "")
	if got != notInBookFloor {
		t.Errorf("SupportLevel(%q) = %d, want floor %d", NotInThisBook, got, notInBookFloor)
	}
}

func TestScoreCandidatesDedupeAndOrder(t *testing.T) {
	raw := []rawCandidate{
		{Text: "the coral reef", Evidence: "Fin lived in the coral reef"},
		{Text: "In the coral reef", Evidence: "duplicate phrasing"},
		{Text: "a sandcastle", Evidence: ""},
	}

	out := scoreCandidates(raw, testFacts(), "Where does Fin live?", testBrief)

	if len(out) != 2 {
		t.Fatalf("got %d candidates, want 2 (duplicate dropped)", len(out))
	}
	if out[0].Text != "In the coral reef" {
		t.Errorf("top candidate = %q, want %q", out[0].Text, "In the coral reef")
	}
	if out[0].Evidence != "Fin lived in the coral reef" {
		t.Errorf("evidence = %q, first occurrence should win", out[0].Evidence)
	}
	if out[0].SupportLevel <= out[1].SupportLevel {
		t.Errorf("candidates not sorted by support: %d then %d", out[0].SupportLevel, out[1].SupportLevel)
	}
}

func TestSimplifyAnswer(t *testing.T) {
	tests := []struct {
		in, question, want string
	}{
		{`"the shiny pearl."`, "What did Fin find?", "The shiny pearl"},
		{"  the   coral reef ", "Where does Fin live?", "In the coral reef"},
		{"At the beach!", "Where did they go?", "At the beach"},
		{"on the moon", "Where is it?", "On the moon"},
		{"The beach", "Where did they go?", "In the beach"},
		{"Paris", "Where did they go?", "In Paris"},
		{"", "Where is it?", ""},
	}
	for _, tt := range tests {
		if got := SimplifyAnswer(tt.in, tt.question); got != tt.want {
			t.Errorf("SimplifyAnswer(%q, %q) = %q, want %q", tt.in, tt.question, got, tt.want)
		}
	}
}

func TestSimplifyAnswerTruncatesOnWordBoundary(t *testing.T) {
	long := "the very long answer that keeps going and going and going and going forever"
	got := SimplifyAnswer(long, "What happened?")

	if n := utf8.RuneCountInString(got); n > maxAnswerRunes {
		t.Errorf("simplified answer is %d runes, want at most %d", n, maxAnswerRunes)
	}
	if got[len(got)-1] == ' ' {
		t.Errorf("simplified answer ends with a space: %q", got)
	}
}

func TestIsWhereQuestion(t *testing.T) {
	if !IsWhereQuestion("  Where does Fin live?") {
		t.Error("leading whitespace should not hide a where question")
	}
	if IsWhereQuestion("What is where?") {
		t.Error("where must lead the question")
	}
}
