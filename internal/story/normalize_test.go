package story

import (
	"reflect"
	"testing"
)

func TestNormalize_MergesCatalogSources(t *testing.T) {
	f := Facts{
		CharacterCatalog: []CatalogEntry{
			{Name: "Maya", Source: SourceMentioned},
			{Name: "maya", Source: SourceIllustrated},
			{Name: "Captain Finn", Source: SourceIllustrated},
		},
	}

	got := Normalize(f, "")

	if len(got.CharacterCatalog) != 2 {
		t.Fatalf("expected 2 catalog entries, got %d", len(got.CharacterCatalog))
	}
	if got.CharacterCatalog[0].Source != SourceBoth {
		t.Errorf("conflicting sources should merge to both, got %q", got.CharacterCatalog[0].Source)
	}
	if got.CharacterCatalog[1].Source != SourceIllustrated {
		t.Errorf("unexpected source: %q", got.CharacterCatalog[1].Source)
	}
}

func TestNormalize_BackfillsCharactersFromCatalog(t *testing.T) {
	f := Facts{
		CharacterCatalog: []CatalogEntry{
			{Name: "Maya", Source: SourceMentioned},
			{Name: "Captain Finn", Source: SourceBoth},
		},
	}

	got := Normalize(f, "")

	want := []string{"Maya", "Captain Finn"}
	if !reflect.DeepEqual(got.Characters, want) {
		t.Errorf("Characters = %v, want %v", got.Characters, want)
	}
}

func TestNormalize_DedupesCaseInsensitive(t *testing.T) {
	f := Facts{
		Places: []string{"Ocean Reef", "ocean reef", "  Kelp   Forest "},
	}

	got := Normalize(f, "")

	want := []string{"Ocean Reef", "Kelp Forest"}
	if !reflect.DeepEqual(got.Places, want) {
		t.Errorf("Places = %v, want %v", got.Places, want)
	}
}

func TestNormalize_CapsLists(t *testing.T) {
	f := Facts{}
	for i := 0; i < 30; i++ {
		f.Characters = append(f.Characters, string(rune('A'+i))+"name")
	}

	got := Normalize(f, "")

	if len(got.Characters) != maxCharacters {
		t.Errorf("expected %d characters, got %d", maxCharacters, len(got.Characters))
	}
}

func TestNormalize_InfersSettingFromBrief(t *testing.T) {
	tests := []struct {
		brief string
		want  string
	}{
		{"A story about fish deep in the ocean.", "in the ocean"},
		{"Two friends explore a dark forest.", "in the forest"},
		{"First day at a new school.", "at school"},
		{"A day on grandpa's farm.", "on the farm"},
		{"A quiet afternoon.", genericSetting},
	}

	for _, tt := range tests {
		got := Normalize(Facts{}, tt.brief)
		if got.Setting != tt.want {
			t.Errorf("brief %q: Setting = %q, want %q", tt.brief, got.Setting, tt.want)
		}
	}
}

func TestNormalize_SeedsPlacesFromSetting(t *testing.T) {
	got := Normalize(Facts{}, "An adventure in the ocean.")

	if len(got.Places) != 1 || got.Places[0] != "the ocean" {
		t.Errorf("Places = %v, want [the ocean]", got.Places)
	}
}

func TestNormalize_DerivesWorldTags(t *testing.T) {
	f := Facts{
		Places: []string{"ocean reef"},
		Events: []string{"lost at the beach"},
	}

	got := Normalize(f, "An ocean story.")

	want := []string{"ocean", "beach"}
	if !reflect.DeepEqual(got.WorldTags, want) {
		t.Errorf("WorldTags = %v, want %v", got.WorldTags, want)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	f := Facts{
		Characters: []string{"Maya", "maya", " Finn "},
		CharacterCatalog: []CatalogEntry{
			{Name: "Maya", Source: SourceMentioned},
			{Name: "Maya", Source: SourceIllustrated},
		},
		Places: []string{"ocean reef"},
		Events: []string{"The big storm"},
	}
	brief := "A story set in the ocean."

	once := Normalize(f, brief)
	twice := Normalize(once, brief)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalize not idempotent:\n once: %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalize_NeverEmptySetting(t *testing.T) {
	got := Normalize(Facts{}, "")
	if got.Setting == "" {
		t.Error("setting must never be empty")
	}
}
