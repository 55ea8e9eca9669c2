package nlu

import (
	"strings"

	"github.com/mchowdhury/fishtalk/internal/model"
)

// questionPrefixes are tested in order; the first matching class wins.
// Yes/no prefixes come first so "is monsoon good" is not read as choice.
var questionPrefixes = []struct {
	qtype    model.QuestionType
	prefixes []string
}{
	{model.QuestionYesNo, []string{"is ", "are ", "can ", "should ", "do ", "does ", "will "}},
	{model.QuestionTemporal, []string{"when ", "what time", "which season", "which month"}},
	{model.QuestionLocation, []string{"where ", "which place", "which location"}},
	{model.QuestionReason, []string{"why ", "how come", "what causes", "what makes"}},
	{model.QuestionMethod, []string{"how ", "what way", "what method"}},
	{model.QuestionChoice, []string{"which ", "what ", "which one"}},
}

// ClassifyQuestionType determines the surface grammatical form of an
// utterance by ordered prefix tests on the lower-cased, trimmed text.
func ClassifyQuestionType(text string) model.QuestionType {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, group := range questionPrefixes {
		for _, p := range group.prefixes {
			if strings.HasPrefix(lower, p) {
				return group.qtype
			}
		}
	}
	return model.QuestionGeneral
}

var negationWords = map[string]bool{
	"not": true, "don't": true, "dont": true, "avoid": true,
	"shouldn't": true, "shouldnt": true, "can't": true, "cant": true,
	"never": true, "no": true, "bad": true,
}

// DetectNegation reports whether the text contains a negation word and
// returns a context window of up to five tokens starting one before the
// negator.
func DetectNegation(text string) (bool, []string) {
	words := strings.Fields(strings.ToLower(text))
	for i, w := range words {
		if !negationWords[w] {
			continue
		}
		start := i - 1
		if start < 0 {
			start = 0
		}
		end := i + 4
		if end > len(words) {
			end = len(words)
		}
		return true, words[start:end]
	}
	return false, nil
}

// comparisonSeparators in source order; the first one present in the
// text decides the split.
var comparisonSeparators = []string{"vs", "versus", "or", "and", "between"}

// ExtractComparison splits the text around the first comparison
// separator found, returning the trimmed left and right phrases.
func ExtractComparison(text string) (left, right string, ok bool) {
	lower := strings.ToLower(text)
	for _, sep := range comparisonSeparators {
		idx := strings.Index(lower, sep)
		if idx < 0 {
			continue
		}
		left = strings.TrimSpace(lower[:idx])
		right = strings.TrimSpace(lower[idx+len(sep):])
		return left, right, true
	}
	return "", "", false
}
