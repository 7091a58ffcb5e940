package media

import (
	"fmt"
	"strings"
)

// IllustrationPrompt builds the image-generation prompt for one option.
// Blended options lean into the story's world; standalone options render a
// neutral everyday scene and explicitly steer away from the story's motifs
// so the picture doesn't hint at correctness.
func IllustrationPrompt(in IllustrationInput) string {
	var b strings.Builder

	style := in.ArtStyle
	if style == "" {
		style = "soft watercolor picture book"
	}

	fmt.Fprintf(&b, "A child-friendly illustration of: %s. Style: %s.", in.OptionText, style)

	if in.Mode == "blend_with_story_world" {
		if in.Brief != "" {
			fmt.Fprintf(&b, " The scene belongs to this story: %s.", in.Brief)
		}
		if len(in.WorldTags) > 0 {
			fmt.Fprintf(&b, " Include visual motifs of: %s.", strings.Join(in.WorldTags, ", "))
		}
	} else {
		b.WriteString(" Set the scene in a generic, everyday real-world context.")
		if len(in.WorldTags) > 0 {
			fmt.Fprintf(&b, " Do not include any of: %s.", strings.Join(in.WorldTags, ", "))
		}
	}

	b.WriteString(" No text or letters in the image.")
	return b.String()
}
