package cmd

import (
	"github.com/abhisek/storyquiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storyquiz",
	Short: "Story comprehension quizzes for kids",
	Long:  "Storyquiz — turns a child's question about a picture book into a three-option quiz grounded in the story.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STORYQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("facts", "", "Path to a story facts JSON file")
	rootCmd.PersistentFlags().String("brief", "", "Path to a story brief text file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STORYQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
