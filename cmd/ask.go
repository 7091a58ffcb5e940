package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/storyquiz/internal/llm"
	"github.com/abhisek/storyquiz/internal/media"
	"github.com/abhisek/storyquiz/internal/quizgen"
	"github.com/abhisek/storyquiz/internal/store"
	"github.com/abhisek/storyquiz/internal/ui/theme"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question and print the quiz",
	Long: "Builds a three-option quiz for one question about the story. " +
		"The question is given as an argument, or recorded audio via --audio.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		facts, brief, _, err := loadStory(cmd)
		if err != nil {
			return err
		}

		question := ""
		if len(args) > 0 {
			question = args[0]
		}

		audioPath, _ := cmd.Flags().GetString("audio")
		var transcribeMs int64
		if question == "" && audioPath != "" {
			start := time.Now()
			question, err = transcribeQuestion(ctx, audioPath)
			if err != nil {
				return err
			}
			transcribeMs = time.Since(start).Milliseconds()
		}
		if strings.TrimSpace(question) == "" {
			return fmt.Errorf("could not hear the question; pass it as an argument or record clearer audio")
		}

		pipeline := quizgen.New(provider, quizgen.DefaultConfig())

		imageDir, _ := cmd.Flags().GetString("illustrate")
		if imageDir != "" {
			illustrator, err := buildIllustrator(ctx)
			if err != nil {
				return err
			}
			pipeline.SetIllustrator(illustrator)
		}

		res, err := pipeline.Answer(ctx, quizgen.AskInput{
			Question: question,
			Brief:    brief,
			Facts:    facts,
		})
		if err != nil {
			return err
		}
		res.Timings.TranscribeMs = transcribeMs

		if imageDir != "" {
			if err := writeImages(imageDir, res); err != nil {
				return err
			}
		}

		if speakPath, _ := cmd.Flags().GetString("speak"); speakPath != "" {
			if err := speakAnswer(ctx, speakPath, res.Correct().Text); err != nil {
				fmt.Fprintln(os.Stderr, "warning:", err)
			}
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		printResult(res)
		return nil
	},
}

func printResult(res *quizgen.Result) {
	fmt.Println(theme.Body.Bold(true).Render(res.Question))
	fmt.Println()
	labels := []string{"A", "B", "C"}
	for i, opt := range res.Options {
		line := fmt.Sprintf("%s)  %s", labels[i], opt.Text)
		if opt.IsCorrect {
			fmt.Println(theme.Correct.Render("* " + line))
		} else {
			fmt.Println(theme.Unselected.Render("  " + line))
		}
	}
	correct := res.Correct()
	if correct.Evidence != "" {
		fmt.Println()
		fmt.Println(theme.Evidence.Render(fmt.Sprintf("The book says: %q", correct.Evidence)))
	}
	fmt.Println()
	fmt.Println(theme.Hint.Render(fmt.Sprintf("(generated in %dms)", res.Timings.TotalMs)))
}

// transcribeQuestion runs the recorded audio through Whisper.
func transcribeQuestion(ctx context.Context, path string) (string, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	m, err := openAIMedia()
	if err != nil {
		return "", err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	return m.Transcribe(ctx, audio, mimeType, "A child asking a question about a picture book.")
}

// buildIllustrator prefers OpenAI when a key is present, otherwise Gemini.
func buildIllustrator(ctx context.Context) (media.Illustrator, error) {
	if key := openAIKey(); key != "" {
		return media.NewOpenAIMedia(key)
	}
	if key := geminiKey(); key != "" {
		return media.NewGeminiIllustrator(ctx, key, "")
	}
	return nil, fmt.Errorf("--illustrate needs an OpenAI or Gemini API key")
}

func writeImages(dir string, res *quizgen.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create image directory: %w", err)
	}
	labels := []string{"a", "b", "c"}
	for i, opt := range res.Options {
		if opt.Image == nil {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("option-%s.png", labels[i]))
		if err := os.WriteFile(path, opt.Image, 0o644); err != nil {
			return fmt.Errorf("write image %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	}
	return nil
}

// speakAnswer synthesizes the correct answer's text to an audio file.
func speakAnswer(ctx context.Context, path, text string) error {
	m, err := openAIMedia()
	if err != nil {
		return err
	}

	speaker := media.NewCachingSpeaker(m)
	audio, err := speaker.Speak(ctx, text)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return fmt.Errorf("write speech file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

func openAIMedia() (*media.OpenAIMedia, error) {
	key := openAIKey()
	if key == "" {
		return nil, fmt.Errorf("set STORYQUIZ_OPENAI_API_KEY or OPENAI_API_KEY for audio features")
	}
	return media.NewOpenAIMedia(key)
}

func openAIKey() string {
	if k := os.Getenv("STORYQUIZ_OPENAI_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("OPENAI_API_KEY")
}

func geminiKey() string {
	if k := os.Getenv("STORYQUIZ_GEMINI_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("GEMINI_API_KEY")
}

func init() {
	askCmd.Flags().String("audio", "", "Path to a recorded audio question (transcribed with Whisper)")
	askCmd.Flags().Bool("json", false, "Print the full result as JSON")
	askCmd.Flags().String("illustrate", "", "Directory to write per-option illustrations into")
	askCmd.Flags().String("speak", "", "File to write a spoken version of the correct answer into")
}
