// Package nlu implements the deterministic language-understanding
// pipeline: typo correction, synonym expansion, entity extraction,
// question analysis, and intent classification.
package nlu

import (
	"strings"

	"github.com/mchowdhury/fishtalk/internal/lexicon"
	"github.com/mchowdhury/fishtalk/internal/model"
)

// CorrectorConfig holds the fuzzy-matching thresholds. The defaults are
// empirically chosen for the fishery vocabulary; other domains may need
// different values.
type CorrectorConfig struct {
	// MatchThreshold is the minimum similarity for a lexicon entry to be
	// considered a candidate at all.
	MatchThreshold float64
	// CorrectThreshold is the minimum similarity for a token to be
	// replaced by its best candidate.
	CorrectThreshold float64
}

// DefaultCorrectorConfig returns the standard thresholds.
func DefaultCorrectorConfig() CorrectorConfig {
	return CorrectorConfig{MatchThreshold: 0.80, CorrectThreshold: 0.85}
}

// Corrector applies per-token fuzzy correction against the lexicon.
type Corrector struct {
	lex *lexicon.Lexicon
	cfg CorrectorConfig
}

// NewCorrector creates a Corrector. Zero thresholds fall back to the
// defaults.
func NewCorrector(lex *lexicon.Lexicon, cfg CorrectorConfig) *Corrector {
	if cfg.MatchThreshold == 0 {
		cfg.MatchThreshold = DefaultCorrectorConfig().MatchThreshold
	}
	if cfg.CorrectThreshold == 0 {
		cfg.CorrectThreshold = DefaultCorrectorConfig().CorrectThreshold
	}
	return &Corrector{lex: lex, cfg: cfg}
}

// Match finds the best lexicon entry for a word. Categories and entries
// are scanned in declaration order and ties keep the first maximum, so
// the result is deterministic. Returns ok=false when nothing reaches
// the match threshold.
func (c *Corrector) Match(word string) (entry string, cat model.Category, score float64, ok bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	for _, category := range model.LexiconCategories {
		for _, e := range c.lex.Entries(category) {
			s := Similarity(w, e)
			if strings.Contains(e, w) || strings.Contains(w, e) {
				if s < 0.8 {
					s = 0.8
				}
			}
			if s > score && s >= c.cfg.MatchThreshold {
				entry, cat, score, ok = e, category, s, true
			}
		}
	}
	return entry, cat, score, ok
}

// Correct replaces each whitespace-delimited token with its best lexicon
// match when the match clears the correction threshold. Unmatched tokens
// are kept verbatim. Correcting already-canonical text is a no-op.
func (c *Corrector) Correct(text string) string {
	words := strings.Fields(text)
	corrected := make([]string, 0, len(words))
	for _, w := range words {
		entry, _, score, ok := c.Match(w)
		if ok && score >= c.cfg.CorrectThreshold {
			corrected = append(corrected, entry)
		} else {
			corrected = append(corrected, w)
		}
	}
	return strings.Join(corrected, " ")
}

// ExpandQuery returns the query plus one variant per token whose
// canonical synonym form differs from the token itself. The variants are
// informational: intent classification runs on the corrected text only.
func ExpandQuery(lex *lexicon.Lexicon, query string) []string {
	lower := strings.ToLower(query)
	expanded := []string{query}
	for _, word := range strings.Fields(lower) {
		canonical := lex.Canonical(word)
		if canonical != word && isCanonicalKey(lex, canonical) {
			expanded = append(expanded, strings.ReplaceAll(lower, word, canonical))
		}
	}
	return expanded
}

func isCanonicalKey(lex *lexicon.Lexicon, word string) bool {
	for _, s := range lex.Synonyms {
		if s.Canonical == word {
			return true
		}
	}
	return false
}
