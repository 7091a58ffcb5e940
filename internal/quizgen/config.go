package quizgen

// Config controls the behavior of the answer pipeline.
type Config struct {
	// MaxTokens is the token budget per LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxHistoryTurns caps how many prior conversation turns are sent with
	// the candidate-generation call.
	MaxHistoryTurns int

	// ArtStyle is passed to the illustrator, e.g. "soft watercolor".
	ArtStyle string
}

// DefaultConfig returns the recommended pipeline configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       768,
		Temperature:     0.6,
		MaxHistoryTurns: 8,
		ArtStyle:        "soft watercolor picture book",
	}
}
