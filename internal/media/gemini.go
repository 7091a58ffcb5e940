package media

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultImagenModel = "imagen-3.0-generate-002"

// GeminiIllustrator implements Illustrator using Google's Imagen models.
type GeminiIllustrator struct {
	client *genai.Client
	model  string
}

// NewGeminiIllustrator creates an Imagen-backed illustrator. An empty
// model selects the default.
func NewGeminiIllustrator(ctx context.Context, apiKey, model string) (*GeminiIllustrator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	if model == "" {
		model = defaultImagenModel
	}

	return &GeminiIllustrator{client: client, model: model}, nil
}

// Illustrate renders the option as a single PNG.
func (g *GeminiIllustrator) Illustrate(ctx context.Context, in IllustrationInput) ([]byte, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.model, IllustrationPrompt(in), &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("no image in response")
	}
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}
