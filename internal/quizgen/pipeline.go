package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/storyquiz/internal/llm"
	"github.com/abhisek/storyquiz/internal/media"
	"github.com/abhisek/storyquiz/internal/story"
)

// ErrEmptyQuestion is returned when the question text is empty, typically
// because transcription heard nothing. One of the two caller-visible
// failure modes; everything else degrades to a valid answer set.
var ErrEmptyQuestion = errors.New("could not hear a question")

// Pipeline answers one comprehension question at a time. It holds no
// per-question state, only the reusable service clients, so a single
// Pipeline serves many invocations.
type Pipeline struct {
	provider    llm.Provider
	cfg         Config
	illustrator media.Illustrator
	rng         *rand.Rand
}

// New creates a Pipeline using the given text-generation provider.
func New(provider llm.Provider, cfg Config) *Pipeline {
	return &Pipeline{provider: provider, cfg: cfg}
}

// SetIllustrator enables per-option image generation.
func (p *Pipeline) SetIllustrator(il media.Illustrator) {
	p.illustrator = il
}

// SetRand replaces the shuffle source. Tests inject a seeded one for
// deterministic option order.
func (p *Pipeline) SetRand(rng *rand.Rand) {
	p.rng = rng
}

// Answer runs the full pipeline for one question and returns a
// contract-compliant result: three options, exactly one correct, no
// canonical duplicates. Malformed model output and ungroundable questions
// degrade to fallback content; only an empty question and retry
// exhaustion on a generation call surface as errors.
func (p *Pipeline) Answer(ctx context.Context, input AskInput) (*Result, error) {
	start := time.Now()

	if strings.TrimSpace(input.Question) == "" {
		return nil, ErrEmptyQuestion
	}

	facts := story.Normalize(input.Facts, input.Brief)

	var timings Timings

	genStart := time.Now()
	payload, err := p.generateCandidates(ctx, input, facts)
	timings.GenerateMs = time.Since(genStart).Milliseconds()
	if err != nil {
		return nil, err
	}

	correct, distractors, repairMs, err := p.resolveAnswers(ctx, input, facts, payload)
	timings.RepairMs = repairMs
	if err != nil {
		return nil, err
	}

	options := assembleOptions(correct, distractors, facts, input.Question, input.Brief, p.rng)

	if p.illustrator != nil {
		illStart := time.Now()
		p.illustrateOptions(ctx, options, facts, input.Brief)
		timings.IllustrateMs = time.Since(illStart).Milliseconds()
	}

	timings.TotalMs = time.Since(start).Milliseconds()

	return &Result{
		Question: input.Question,
		Options:  options,
		Timings:  timings,
	}, nil
}

// generateCandidates issues the primary candidate-generation call. A
// schema-invalid response degrades to an empty payload; transient errors
// have already been retried by the provider middleware, so any remaining
// error is exhaustion and propagates.
func (p *Pipeline) generateCandidates(ctx context.Context, input AskInput, facts story.Facts) (candidatePayload, error) {
	ctx = llm.WithPurpose(ctx, "candidate-gen")

	messages := p.historyWindow(input.History)
	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: buildCandidateMessage(input.Question, input.Brief, facts),
	})

	resp, err := p.provider.Generate(ctx, llm.Request{
		System:      candidateSystemPrompt,
		Messages:    messages,
		Schema:      CandidateSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			return candidatePayload{}, nil
		}
		return candidatePayload{}, fmt.Errorf("candidate generation: %w", err)
	}

	var payload candidatePayload
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		// Schema validation should have caught this; absorb anyway.
		return candidatePayload{}, nil
	}
	return payload, nil
}

// resolveAnswers scores candidates, picks the correct answer and selects
// distractors, invoking repair when selection underdetermines. Returns the
// repair call duration in milliseconds (0 when repair wasn't needed).
// Retry exhaustion on the repair call propagates; malformed repair output
// falls through to the built-in fallback pools.
func (p *Pipeline) resolveAnswers(ctx context.Context, input AskInput, facts story.Facts, payload candidatePayload) (CandidateAnswer, []CandidateAnswer, int64, error) {
	candidates := scoreCandidates(payload.CandidateCorrect, facts, input.Question, input.Brief)

	if payload.NotAnswerable || len(candidates) == 0 {
		correct, distractors := notAnswerableSet(facts, input.Question, input.Brief)
		return correct, distractors, 0, nil
	}

	correct := candidates[0]
	distractors := selectDistractors(payload.DistractorCandidates, correct, facts, input.Question, input.Brief)

	var repairMs int64
	if len(distractors) < maxDistractors {
		repairStart := time.Now()
		extra, err := p.repairWrongAnswers(ctx, input, facts, correct)
		repairMs = time.Since(repairStart).Milliseconds()
		if err != nil {
			return CandidateAnswer{}, nil, repairMs, err
		}

		pool := append(append([]string{}, payload.DistractorCandidates...), extra...)
		distractors = selectDistractors(pool, correct, facts, input.Question, input.Brief)
	}

	distractors = backfillDistractors(distractors, correct, facts, input.Question, input.Brief, maxDistractors)
	return correct, distractors, repairMs, nil
}

// repairWrongAnswers issues the single distractor-repair call.
// Schema-invalid output degrades to an empty slice; a transient-exhausted
// call propagates like the primary call's errors do.
func (p *Pipeline) repairWrongAnswers(ctx context.Context, input AskInput, facts story.Facts, correct CandidateAnswer) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "distractor-repair")

	resp, err := p.provider.Generate(ctx, llm.Request{
		System: repairSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildRepairMessage(input.Question, input.Brief, correct.Text, facts)},
		},
		Schema:      RepairSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			fmt.Fprintf(os.Stderr, "warning: distractor repair returned unusable output: %v\n", err)
			return nil, nil
		}
		return nil, fmt.Errorf("distractor repair: %w", err)
	}

	var payload repairPayload
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return nil, nil
	}
	return payload.WrongAnswers, nil
}

// illustrateOptions fans out one image-generation call per option. The
// calls are independent; each writes only its own option's Image. A failed
// call leaves the image nil and never affects the other options.
func (p *Pipeline) illustrateOptions(ctx context.Context, options []Option, facts story.Facts, brief string) {
	var g errgroup.Group
	for i := range options {
		g.Go(func() error {
			img, err := p.illustrator.Illustrate(ctx, media.IllustrationInput{
				OptionText: options[i].Text,
				Mode:       string(options[i].RenderMode),
				Brief:      brief,
				WorldTags:  facts.WorldTags,
				ArtStyle:   p.cfg.ArtStyle,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: illustration failed for %q: %v\n", options[i].Text, err)
				return nil
			}
			options[i].Image = img
			return nil
		})
	}
	g.Wait()
}

// historyWindow returns the most recent configured number of prior turns.
func (p *Pipeline) historyWindow(history []llm.Message) []llm.Message {
	max := p.cfg.MaxHistoryTurns
	if max > 0 && len(history) > max {
		history = history[len(history)-max:]
	}
	return append([]llm.Message{}, history...)
}
