package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mchowdhury/fishtalk/internal/model"
)

func TestDefaultLexicon(t *testing.T) {
	lex := Default()

	for _, cat := range model.LexiconCategories {
		if len(lex.Entries(cat)) == 0 {
			t.Errorf("category %q has no entries", cat)
		}
	}
	if lex.Version != 1 {
		t.Errorf("version = %d, want 1", lex.Version)
	}
	if len(lex.EconomicMarkers) == 0 {
		t.Error("economic markers missing")
	}
}

func TestParseRejectsMissingCategory(t *testing.T) {
	doc := []byte(`
version: 1
categories:
  fish: [hilsa]
`)
	if _, err := Parse(doc); err == nil {
		t.Fatal("expected an error for missing categories")
	}
}

func TestParseRejectsEmptySynonym(t *testing.T) {
	doc := []byte(`
version: 1
categories:
  fish: [hilsa]
  seasons: [monsoon]
  months: [boisakh]
  locations: [kurigram]
  conditions: [murky]
  gear: [net]
synonyms:
  - canonical: hilsa
    variants: []
`)
	if _, err := Parse(doc); err == nil {
		t.Fatal("expected an error for a synonym without variants")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, defaultYAML, 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(lex.Entries(model.CategoryFish)) == 0 {
		t.Error("loaded lexicon has no fish entries")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestCanonical(t *testing.T) {
	lex := Default()

	tests := []struct {
		word string
		want string
	}{
		{"ilish", "hilsa"},
		{"timing", "when"},
		{"magur", "catfish"},
		{"jal", "net"},
		{"MONSOON", "monsoon"}, // not in the table: lower-cased identity
		{"zzzz", "zzzz"},
	}
	for _, tt := range tests {
		if got := lex.Canonical(tt.word); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestIsWaterQuality(t *testing.T) {
	lex := Default()

	if !lex.IsWaterQuality("murky") || !lex.IsWaterQuality("clean") {
		t.Error("murky and clean are water-quality conditions")
	}
	if lex.IsWaterQuality("tide") {
		t.Error("tide is not a water-quality condition")
	}
}
