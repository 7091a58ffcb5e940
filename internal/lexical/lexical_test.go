package lexical

import (
	"reflect"
	"testing"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"drops stop words", "the fish swims in the ocean", []string{"fish", "swims", "ocean"}},
		{"strips punctuation", "Maya's red boat!", []string{"maya", "red", "boat"}},
		{"drops single letters", "a b cat", []string{"cat"}},
		{"empty input", "", nil},
		{"only stop words", "in the and of", nil},
		{"keeps digits", "chapter 12", []string{"chapter", "12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"In the Ocean", "the ocean"},
		{"  on a  farm ", "a farm"},
		{"At school.", "school"},
		{"The Coral Reef!", "the coral reef"},
		{"", ""},
		{"in", "in"},
	}

	for _, tt := range tests {
		if got := Canonical(tt.input); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSamePhrase(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"ocean", "in the ocean", true},
		{"In the Ocean", "ocean", true},
		{"coral reef", "reef", true},
		{"forest", "ocean", false},
		{"", "", true},
		{"", "ocean", false},
		{"The little red hen", "little red hen", true},
	}

	for _, tt := range tests {
		if got := SamePhrase(tt.a, tt.b); got != tt.want {
			t.Errorf("SamePhrase(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := CollapseSpace("  a   big\tblue   whale "); got != "a big blue whale" {
		t.Errorf("unexpected: %q", got)
	}
}
