package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/storyquiz/internal/story"
)

// builtinFacts is the bundled demo story, used when no --facts file is
// given so the app works out of the box.
var builtinFacts = story.Facts{
	Characters: []string{"Fin", "Coral"},
	Places:     []string{"the coral reef", "the deep cave"},
	Objects:    []string{"a shiny pearl"},
	Events:     []string{"Fin found a shiny pearl", "Coral showed Fin the deep cave"},
	Setting:    "in the ocean",
}

const builtinBrief = "Fin the little fish explores the coral reef with his friend Coral. " +
	"Together they visit the deep cave, where Fin finds a shiny pearl."

const builtinTitle = "Fin's Pearl"

// loadStory reads the --facts and --brief flags, falling back to the
// bundled demo story when neither is given.
func loadStory(cmd *cobra.Command) (story.Facts, string, string, error) {
	factsPath, _ := cmd.Flags().GetString("facts")
	briefPath, _ := cmd.Flags().GetString("brief")

	if factsPath == "" && briefPath == "" {
		return builtinFacts, builtinBrief, builtinTitle, nil
	}

	var facts story.Facts
	if factsPath != "" {
		raw, err := os.ReadFile(factsPath)
		if err != nil {
			return story.Facts{}, "", "", fmt.Errorf("read facts file: %w", err)
		}
		if err := json.Unmarshal(raw, &facts); err != nil {
			return story.Facts{}, "", "", fmt.Errorf("parse facts file %s: %w", factsPath, err)
		}
	}

	brief := ""
	if briefPath != "" {
		raw, err := os.ReadFile(briefPath)
		if err != nil {
			return story.Facts{}, "", "", fmt.Errorf("read brief file: %w", err)
		}
		brief = string(raw)
	}

	return facts, brief, "", nil
}
