package story

import (
	"strings"

	"github.com/abhisek/storyquiz/internal/lexical"
)

// List caps. Order is first-seen; anything past the cap is dropped.
const (
	maxCharacters = 20
	maxPlaces     = 10
	maxObjects    = 14
	maxEvents     = 12
)

// settingRule maps a brief keyword to a canned setting phrase. Rules are
// ordered; the first keyword found in the brief wins.
type settingRule struct {
	keyword string
	phrase  string
}

var settingRules = []settingRule{
	{"ocean", "in the ocean"},
	{"beach", "at the beach"},
	{"forest", "in the forest"},
	{"home", "at home"},
	{"school", "at school"},
	{"farm", "on the farm"},
	{"city", "in the city"},
	{"cave", "in a cave"},
}

const genericSetting = "in the world of the story"

// worldTagKeywords are matched against setting, places and events to derive
// world tags when none were supplied.
var worldTagKeywords = []string{"ocean", "forest", "school", "home", "playground", "beach", "city"}

// Normalize canonicalizes a loosely-shaped facts record: trims and
// collapses whitespace, merges the character catalog, dedupes every list
// case-insensitively in first-seen order, caps list lengths, and fills
// Setting, Places and WorldTags with values inferred from the brief when
// absent. It never fails; missing data degrades to empty or inferred
// values. Normalize is idempotent.
func Normalize(f Facts, brief string) Facts {
	out := Facts{
		CharacterCatalog: mergeCatalog(f.CharacterCatalog),
		Characters:       dedupe(f.Characters, maxCharacters),
		Places:           dedupe(f.Places, maxPlaces),
		Objects:          dedupe(f.Objects, maxObjects),
		Events:           dedupe(f.Events, maxEvents),
		Setting:          lexical.CollapseSpace(f.Setting),
		WorldTags:        dedupeLower(f.WorldTags),
	}

	// Backfill the flat character list from the catalog.
	if len(out.Characters) == 0 && len(out.CharacterCatalog) > 0 {
		names := make([]string, len(out.CharacterCatalog))
		for i, e := range out.CharacterCatalog {
			names[i] = e.Name
		}
		out.Characters = dedupe(names, maxCharacters)
	}

	if out.Setting == "" {
		out.Setting = inferSetting(brief)
	}

	if len(out.Places) == 0 {
		out.Places = []string{stripLeadingPreposition(out.Setting)}
	}

	if len(out.WorldTags) == 0 {
		out.WorldTags = deriveWorldTags(out)
	}

	return out
}

// mergeCatalog merges entries by lower-cased name. A name seen as both
// mentioned and illustrated resolves to SourceBoth.
func mergeCatalog(entries []CatalogEntry) []CatalogEntry {
	var out []CatalogEntry
	index := make(map[string]int)

	for _, e := range entries {
		name := lexical.CollapseSpace(e.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		src := e.Source
		if src != SourceMentioned && src != SourceIllustrated && src != SourceBoth {
			src = SourceMentioned
		}

		i, seen := index[key]
		if !seen {
			if len(out) >= maxCharacters {
				continue
			}
			index[key] = len(out)
			out = append(out, CatalogEntry{Name: name, Source: src})
			continue
		}
		if out[i].Source != src {
			out[i].Source = SourceBoth
		}
	}
	return out
}

// dedupe trims each entry and removes case-insensitive duplicates, keeping
// first-seen order, capped at max.
func dedupe(items []string, max int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, item := range items {
		item = lexical.CollapseSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
		if len(out) >= max {
			break
		}
	}
	return out
}

func dedupeLower(tags []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tag := range tags {
		tag = strings.ToLower(lexical.CollapseSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// inferSetting picks a canned setting phrase from the first keyword rule
// matching the brief, falling back to a generic phrase.
func inferSetting(brief string) string {
	lower := strings.ToLower(brief)
	for _, rule := range settingRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.phrase
		}
	}
	return genericSetting
}

// stripLeadingPreposition drops a leading "in/on/at" so a setting phrase
// can seed the places list: "in the ocean" -> "the ocean".
func stripLeadingPreposition(s string) string {
	lower := strings.ToLower(s)
	for _, prep := range []string{"in ", "on ", "at "} {
		if strings.HasPrefix(lower, prep) {
			return lexical.CollapseSpace(s[len(prep):])
		}
	}
	return s
}

// deriveWorldTags scans setting, places and events for known world
// keywords.
func deriveWorldTags(f Facts) []string {
	var corpus strings.Builder
	corpus.WriteString(strings.ToLower(f.Setting))
	for _, p := range f.Places {
		corpus.WriteByte(' ')
		corpus.WriteString(strings.ToLower(p))
	}
	for _, e := range f.Events {
		corpus.WriteByte(' ')
		corpus.WriteString(strings.ToLower(e))
	}
	text := corpus.String()

	var tags []string
	for _, kw := range worldTagKeywords {
		if strings.Contains(text, kw) {
			tags = append(tags, kw)
		}
	}
	return tags
}
