package nlu

import (
	"strings"

	"github.com/mchowdhury/fishtalk/internal/lexicon"
	"github.com/mchowdhury/fishtalk/internal/model"
)

// Extractor scans normalized text for lexicon entities.
type Extractor struct {
	lex *lexicon.Lexicon
}

// NewExtractor creates an Extractor over the given lexicon.
func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	return &Extractor{lex: lex}
}

// Extract matches every lexicon entry as a case-insensitive substring of
// the text. Matches keep lexicon declaration order. Conditions that are
// water-quality entries are mirrored into the water_quality category,
// and any economic marker sets the economic flag.
func (x *Extractor) Extract(text string) model.EntitySet {
	lower := strings.ToLower(text)
	entities := model.EntitySet{}

	for _, cat := range model.LexiconCategories {
		for _, entry := range x.lex.Entries(cat) {
			if !strings.Contains(lower, entry) {
				continue
			}
			entities.Add(cat, entry)
			if cat == model.CategoryConditions && x.lex.IsWaterQuality(entry) {
				entities.Add(model.CategoryWaterQuality, entry)
			}
		}
	}

	for _, marker := range x.lex.EconomicMarkers {
		if strings.Contains(lower, marker) {
			entities.Add(model.CategoryEconomic, "income")
			break
		}
	}

	return entities
}
