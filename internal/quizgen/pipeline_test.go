package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/storyquiz/internal/llm"
	"github.com/abhisek/storyquiz/internal/media"
)

func candidateJSON(t *testing.T, p candidatePayload) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func repairJSON(t *testing.T, answers ...string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(repairPayload{WrongAnswers: answers})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestAnswerWhereQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: candidateJSON(t, candidatePayload{
			CandidateCorrect: []rawCandidate{
				{Text: "the coral reef", Evidence: "Fin lived in the coral reef"},
			},
			DistractorCandidates: []string{"the deep cave", "on the moon", "a busy street"},
		}),
	})
	p := New(mock, DefaultConfig())

	res, err := p.Answer(context.Background(), AskInput{
		Question: "Where does Fin live?",
		Brief:    testBrief,
		Facts:    testFacts(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if mock.CallCount() != 1 {
		t.Errorf("made %d LLM calls, want 1", mock.CallCount())
	}
	if len(res.Options) != optionCount {
		t.Fatalf("got %d options, want %d", len(res.Options), optionCount)
	}

	correct := res.Correct()
	if correct.Text != "In the coral reef" {
		t.Errorf("correct answer = %q, want %q", correct.Text, "In the coral reef")
	}
	if correct.RenderMode != RenderBlendStoryWorld {
		t.Errorf("correct render mode = %q, want blend", correct.RenderMode)
	}
	threshold := distractorThreshold(correct.SupportLevel)
	for _, opt := range res.Options {
		if opt.IsCorrect {
			continue
		}
		if opt.SupportLevel >= threshold {
			t.Errorf("wrong answer %q has support %d, at or above threshold %d", opt.Text, opt.SupportLevel, threshold)
		}
		// A wrong answer that names a real story place stays in the story's
		// world; an off-story one renders standalone.
		switch opt.Text {
		case "In the deep cave":
			if opt.RenderMode != RenderBlendStoryWorld {
				t.Errorf("grounded wrong answer mode = %q, want blend", opt.RenderMode)
			}
		case "On the moon":
			if opt.RenderMode != RenderStandaloneWorld {
				t.Errorf("ungrounded wrong answer mode = %q, want standalone", opt.RenderMode)
			}
		}
	}
	if res.Timings.TotalMs < 0 {
		t.Errorf("negative total time %d", res.Timings.TotalMs)
	}
}

func TestAnswerNotAnswerable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: candidateJSON(t, candidatePayload{NotAnswerable: true}),
	})
	p := New(mock, DefaultConfig())

	res, err := p.Answer(context.Background(), AskInput{
		Question: "What color was the dragon?",
		Brief:    testBrief,
		Facts:    testFacts(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if mock.CallCount() != 1 {
		t.Errorf("made %d LLM calls, want 1 (no repair on not-answerable)", mock.CallCount())
	}
	if len(res.Options) != optionCount {
		t.Fatalf("got %d options, want %d", len(res.Options), optionCount)
	}
	if res.Correct().Text != NotInThisBook {
		t.Errorf("correct = %q, want %q", res.Correct().Text, NotInThisBook)
	}
}

func TestAnswerRepairInvokedOnce(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: candidateJSON(t, candidatePayload{
			CandidateCorrect: []rawCandidate{
				{Text: "a shiny pearl", Evidence: "Fin found a shiny pearl"},
			},
			DistractorCandidates: []string{"on the moon"},
		})},
		llm.MockResponse{Content: repairJSON(t, "a pirate ship", "a talking crab")},
	)
	p := New(mock, DefaultConfig())

	res, err := p.Answer(context.Background(), AskInput{
		Question: "What did Fin find?",
		Brief:    testBrief,
		Facts:    testFacts(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if mock.CallCount() != 2 {
		t.Fatalf("made %d LLM calls, want 2 (one repair)", mock.CallCount())
	}
	if got := mock.Calls[1].Schema.Name; got != RepairSchema.Name {
		t.Errorf("second call schema = %q, want %q", got, RepairSchema.Name)
	}
	if mock.Purposes[0] != "candidate-gen" || mock.Purposes[1] != "distractor-repair" {
		t.Errorf("purposes = %v, want candidate-gen then distractor-repair", mock.Purposes)
	}
	if len(res.Options) != optionCount {
		t.Fatalf("got %d options, want %d", len(res.Options), optionCount)
	}
	if res.Correct().Text != "A shiny pearl" {
		t.Errorf("correct = %q, want %q", res.Correct().Text, "A shiny pearl")
	}

	texts := map[string]bool{}
	for _, opt := range res.Options {
		texts[opt.Text] = true
	}
	if !texts["On the moon"] || !texts["A pirate ship"] {
		t.Errorf("distractors = %v, want original plus first repaired", texts)
	}
}

func TestAnswerRepairFailureFallsBackToPool(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: candidateJSON(t, candidatePayload{
			CandidateCorrect: []rawCandidate{
				{Text: "a shiny pearl", Evidence: "Fin found a shiny pearl"},
			},
		})},
		llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: errors.New("not json")}},
	)
	p := New(mock, DefaultConfig())

	res, err := p.Answer(context.Background(), AskInput{
		Question: "What did Fin find?",
		Brief:    testBrief,
		Facts:    testFacts(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if mock.CallCount() != 2 {
		t.Errorf("made %d LLM calls, want 2 (repair attempted once)", mock.CallCount())
	}
	if len(res.Options) != optionCount {
		t.Fatalf("got %d options, want %d", len(res.Options), optionCount)
	}
	if res.Correct().Text != "A shiny pearl" {
		t.Errorf("correct = %q, want it to survive repair failure", res.Correct().Text)
	}
}

func TestAnswerRepairExhaustionPropagates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: candidateJSON(t, candidatePayload{
			CandidateCorrect: []rawCandidate{
				{Text: "a shiny pearl", Evidence: "Fin found a shiny pearl"},
			},
		})},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("overloaded")}},
	)
	p := New(mock, DefaultConfig())

	_, err := p.Answer(context.Background(), AskInput{
		Question: "What did Fin find?",
		Brief:    testBrief,
		Facts:    testFacts(),
	})

	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want repair exhaustion to propagate", err)
	}
}

func TestAnswerMalformedCandidatesDegrade(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: errors.New("schema mismatch")}},
	)
	p := New(mock, DefaultConfig())

	res, err := p.Answer(context.Background(), AskInput{
		Question: "Where does Fin live?",
		Brief:    testBrief,
		Facts:    testFacts(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Correct().Text != NotInThisBook {
		t.Errorf("correct = %q, want the not-answerable fallback", res.Correct().Text)
	}
	if len(res.Options) != optionCount {
		t.Fatalf("got %d options, want %d", len(res.Options), optionCount)
	}
}

func TestAnswerProviderExhaustionPropagates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := New(mock, DefaultConfig())

	_, err := p.Answer(context.Background(), AskInput{
		Question: "Where does Fin live?",
		Facts:    testFacts(),
	})

	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestAnswerEmptyQuestion(t *testing.T) {
	p := New(llm.NewMockProvider(), DefaultConfig())

	_, err := p.Answer(context.Background(), AskInput{Question: "   "})
	if !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("err = %v, want ErrEmptyQuestion", err)
	}
}

// failingIllustrator fails for one specific option text and succeeds for
// the rest.
type failingIllustrator struct {
	failFor string
}

func (f *failingIllustrator) Illustrate(_ context.Context, in media.IllustrationInput) ([]byte, error) {
	if in.OptionText == f.failFor {
		return nil, fmt.Errorf("render refused for %q", in.OptionText)
	}
	return []byte("png-bytes"), nil
}

func TestAnswerIllustrationFailureIsolated(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: candidateJSON(t, candidatePayload{
			CandidateCorrect: []rawCandidate{
				{Text: "the coral reef", Evidence: "Fin lived in the coral reef"},
			},
			DistractorCandidates: []string{"on the moon", "a busy street"},
		}),
	})
	p := New(mock, DefaultConfig())
	p.SetIllustrator(&failingIllustrator{failFor: "On the moon"})
	p.SetRand(rand.New(rand.NewPCG(3, 9)))

	res, err := p.Answer(context.Background(), AskInput{
		Question: "Where does Fin live?",
		Brief:    testBrief,
		Facts:    testFacts(),
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, opt := range res.Options {
		if opt.Text == "On the moon" {
			if opt.Image != nil {
				t.Errorf("failed illustration should leave a nil image")
			}
			continue
		}
		if opt.Image == nil {
			t.Errorf("option %q lost its image to a sibling's failure", opt.Text)
		}
	}
}
