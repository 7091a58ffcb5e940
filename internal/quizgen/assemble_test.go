package quizgen

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/storyquiz/internal/lexical"
)

func TestAssembleOptionsContract(t *testing.T) {
	correct := CandidateAnswer{Text: "In the coral reef", SupportLevel: 85, Evidence: "Fin lived in the coral reef"}
	distractors := []CandidateAnswer{{Text: "On the moon", SupportLevel: 6}}

	options := assembleOptions(correct, distractors, testFacts(), "Where does Fin live?", testBrief, nil)

	if len(options) != optionCount {
		t.Fatalf("got %d options, want %d", len(options), optionCount)
	}

	correctCount := 0
	canons := make(map[string]bool)
	for _, opt := range options {
		if opt.IsCorrect {
			correctCount++
		}
		if opt.ID == "" {
			t.Errorf("option %q has no ID", opt.Text)
		}
		if opt.RenderMode == "" {
			t.Errorf("option %q has no render mode", opt.Text)
		}
		canon := lexical.Canonical(opt.Text)
		if canons[canon] {
			t.Errorf("duplicate canonical option text %q", opt.Text)
		}
		canons[canon] = true
	}
	if correctCount != 1 {
		t.Errorf("got %d correct options, want exactly 1", correctCount)
	}
}

func TestAssembleOptionsBackfillsToThree(t *testing.T) {
	correct := CandidateAnswer{Text: "The shiny pearl", SupportLevel: 70}

	options := assembleOptions(correct, nil, testFacts(), "What did Fin find?", testBrief, nil)

	if len(options) != optionCount {
		t.Fatalf("got %d options, want %d", len(options), optionCount)
	}
}

func TestAssembleOptionsPoolSwallowedByCorrect(t *testing.T) {
	// A correct answer long enough to contain every where-pool phrase must
	// still yield a full set: the general pool takes over.
	correct := CandidateAnswer{
		Text:         "On the moon in a busy city at a snowy mountain in a quiet library",
		SupportLevel: 40,
	}

	options := assembleOptions(correct, nil, testFacts(), "Where does Fin live?", testBrief, nil)

	if len(options) != optionCount {
		t.Fatalf("got %d options, want %d", len(options), optionCount)
	}
	canons := make(map[string]bool)
	for _, opt := range options {
		canon := lexical.Canonical(opt.Text)
		if canons[canon] {
			t.Errorf("duplicate canonical option text %q", opt.Text)
		}
		canons[canon] = true
		if !opt.IsCorrect && lexical.SamePhrase(opt.Text, correct.Text) {
			t.Errorf("wrong answer %q overlaps the correct answer", opt.Text)
		}
	}
}

func TestAssembleOptionsDeterministicShuffle(t *testing.T) {
	correct := CandidateAnswer{Text: "In the coral reef", SupportLevel: 85}
	distractors := []CandidateAnswer{
		{Text: "On the moon", SupportLevel: 6},
		{Text: "In a busy city", SupportLevel: 6},
	}

	texts := func(seed uint64) []string {
		rng := rand.New(rand.NewPCG(seed, seed))
		opts := assembleOptions(correct, distractors, testFacts(), "Where does Fin live?", testBrief, rng)
		out := make([]string, len(opts))
		for i, o := range opts {
			out[i] = o.Text
		}
		return out
	}

	a, b := texts(7), texts(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different orders: %v vs %v", a, b)
		}
	}
}
