package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/storyquiz/internal/app"
	"github.com/abhisek/storyquiz/internal/llm"
	"github.com/abhisek/storyquiz/internal/quizgen"
	"github.com/abhisek/storyquiz/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive question session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the store, builds the pipeline, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
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

	facts, brief, title, err := loadStory(cmd)
	if err != nil {
		return err
	}

	return app.Run(app.Session{
		Pipeline: quizgen.New(provider, quizgen.DefaultConfig()),
		Facts:    facts,
		Brief:    brief,
		Title:    title,
	})
}
