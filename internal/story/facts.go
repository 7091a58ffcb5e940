// Package story defines the story-facts record the answer pipeline grounds
// against, and the normalizer that turns a loosely-shaped extraction result
// into a bounded, deduplicated form.
package story

// Source records how a character entered the catalog.
type Source string

const (
	// SourceMentioned means the character appears in the story text.
	SourceMentioned Source = "mentioned"

	// SourceIllustrated means the character appears in the artwork.
	SourceIllustrated Source = "illustrated"

	// SourceBoth means the character appears in both text and artwork.
	SourceBoth Source = "both"
)

// CatalogEntry is a character with its provenance.
type CatalogEntry struct {
	Name   string `json:"name"`
	Source Source `json:"source"`
}

// Facts holds everything extracted from a story that answers can be
// grounded against. A zero or partially-filled Facts is valid input to
// Normalize, which fills gaps with inferred defaults rather than erroring.
type Facts struct {
	// Characters are display names, deduplicated case-insensitively.
	Characters []string `json:"characters"`

	// CharacterCatalog carries provenance per character. Entries with the
	// same name but conflicting sources merge to SourceBoth.
	CharacterCatalog []CatalogEntry `json:"character_catalog"`

	Places  []string `json:"places"`
	Objects []string `json:"objects"`
	Events  []string `json:"events"`

	// Setting is a short phrase like "in the ocean". Never empty after
	// normalization; inferred from the story brief when absent.
	Setting string `json:"setting"`

	// WorldTags are lower-cased short tags ("ocean", "forest", ...) used by
	// the render-mode classifier and illustration prompts.
	WorldTags []string `json:"world_tags"`
}

// Phrases returns every fact phrase usable for lexical grounding:
// characters, places, objects, events and the setting.
func (f Facts) Phrases() []string {
	out := make([]string, 0, len(f.Characters)+len(f.Places)+len(f.Objects)+len(f.Events)+1)
	out = append(out, f.Characters...)
	out = append(out, f.Places...)
	out = append(out, f.Objects...)
	out = append(out, f.Events...)
	if f.Setting != "" {
		out = append(out, f.Setting)
	}
	return out
}
