// Package lexicon loads the versioned domain vocabulary and synonym
// table. The lexicon is configuration data: a default copy is embedded
// in the binary and a file can override it at startup.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mchowdhury/fishtalk/internal/model"
)

//go:embed lexicon.yaml
var defaultYAML []byte

// Synonym maps a canonical key to its surface variants.
type Synonym struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// Lexicon is the fixed domain vocabulary used for correction,
// extraction, and synonym canonicalization.
type Lexicon struct {
	Version         int                         `yaml:"version"`
	Categories      map[model.Category][]string `yaml:"categories"`
	WaterQuality    []string                    `yaml:"water_quality"`
	EconomicMarkers []string                    `yaml:"economic_markers"`
	Synonyms        []Synonym                   `yaml:"synonyms"`
}

// Parse decodes and validates a YAML lexicon document.
func Parse(b []byte) (*Lexicon, error) {
	var l Lexicon
	if err := yaml.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	for _, cat := range model.LexiconCategories {
		if len(l.Categories[cat]) == 0 {
			return nil, fmt.Errorf("lexicon category %q is empty", cat)
		}
	}
	for _, s := range l.Synonyms {
		if s.Canonical == "" || len(s.Variants) == 0 {
			return nil, fmt.Errorf("synonym entry %q has no variants", s.Canonical)
		}
	}
	return &l, nil
}

// Load reads a lexicon from a file.
func Load(path string) (*Lexicon, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return Parse(b)
}

// Default returns the embedded lexicon. The embedded document is
// validated by tests, so a parse failure here is a build defect.
func Default() *Lexicon {
	l, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return l
}

// Entries returns the declared entries for a category.
func (l *Lexicon) Entries(cat model.Category) []string {
	return l.Categories[cat]
}

// Canonical maps a word to its canonical form via the synonym table,
// defaulting to the lower-cased word itself.
func (l *Lexicon) Canonical(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	for _, s := range l.Synonyms {
		for _, v := range s.Variants {
			if w == v {
				return s.Canonical
			}
		}
	}
	return w
}

// IsWaterQuality reports whether a condition entry is a water-quality
// condition.
func (l *Lexicon) IsWaterQuality(entry string) bool {
	for _, w := range l.WaterQuality {
		if entry == w {
			return true
		}
	}
	return false
}
