package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIMedia implements Transcriber, Illustrator and Speaker using the
// OpenAI SDK: Whisper for transcription, the image API for illustration,
// and the TTS endpoint for speech.
type OpenAIMedia struct {
	client *openai.Client
}

// NewOpenAIMedia creates a media client with the given API key.
func NewOpenAIMedia(apiKey string) (*OpenAIMedia, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	return &OpenAIMedia{client: openai.NewClient(apiKey)}, nil
}

// Transcribe runs the audio through Whisper. The hint primes the model
// with session context ("a child asking about a picture book").
func (m *OpenAIMedia) Transcribe(ctx context.Context, audio []byte, mimeType, hint string) (string, error) {
	resp, err := m.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: "question" + extensionFor(mimeType),
		Prompt:   hint,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// Illustrate renders the option as a single PNG.
func (m *OpenAIMedia) Illustrate(ctx context.Context, in IllustrationInput) ([]byte, error) {
	resp, err := m.client.CreateImage(ctx, openai.ImageRequest{
		Model:          openai.CreateImageModelDallE3,
		Prompt:         IllustrationPrompt(in),
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no image in response")
	}

	img, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Speak synthesizes the option text as audio.
func (m *OpenAIMedia) Speak(ctx context.Context, text string) ([]byte, error) {
	resp, err := m.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: openai.VoiceNova,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	return audio, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/webm":
		return ".webm"
	case "audio/ogg":
		return ".ogg"
	case "audio/mp4":
		return ".m4a"
	default:
		return ".mp3"
	}
}
