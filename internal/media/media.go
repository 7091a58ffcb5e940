// Package media holds the clients for the non-text collaborators:
// speech-to-text transcription, per-option illustration, and speech
// synthesis. All of them are best-effort from the pipeline's point of
// view — a missing image or missing audio never fails an answer set.
package media

import "context"

// IllustrationInput describes one option to paint.
type IllustrationInput struct {
	// OptionText is the answer phrase to depict.
	OptionText string

	// Mode is the option's render mode: "blend_with_story_world" or
	// "standalone_option_world".
	Mode string

	// Brief is the story synopsis, used for blended scenes.
	Brief string

	// WorldTags are the story's visual motifs ("ocean", "forest", ...).
	// Blended scenes lean into them; standalone scenes avoid them.
	WorldTags []string

	// ArtStyle names the illustration style, e.g. "soft watercolor".
	ArtStyle string
}

// Transcriber converts a recorded question to text. An empty transcript
// with a nil error means the audio contained no usable speech.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType, hint string) (string, error)
}

// Illustrator renders a single option image as PNG bytes.
type Illustrator interface {
	Illustrate(ctx context.Context, in IllustrationInput) ([]byte, error)
}

// Speaker synthesizes speech for an option's text.
type Speaker interface {
	Speak(ctx context.Context, text string) ([]byte, error)
}
