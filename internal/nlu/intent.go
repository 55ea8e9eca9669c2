package nlu

import (
	"strings"

	"github.com/mchowdhury/fishtalk/internal/model"
)

// Short-form whole-message sets, matched case-insensitively.
var (
	affirmativeSet = closedSet("yes", "yeah", "yep", "sure", "ok", "okay", "y", "ha", "haan", "please")
	negativeSet    = closedSet("no", "nope", "nah", "na", "not really")
	greetingSet    = closedSet("hi", "hello", "hey", "namaste", "good morning", "good evening", "greetings")
	goodbyeSet     = closedSet("bye", "goodbye", "see you", "thanks", "thank you", "bye bye")
)

func closedSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// intentKeywords is an ordered table: the first intent whose keyword
// list matches wins. Gear entity names appear in the gear_equipment list
// so a bare mention of a harmful net still reaches the gear handler.
var intentKeywords = []struct {
	intent   model.Intent
	keywords []string
}{
	{model.IntentGearEquipment, []string{"net", "gear", "equipment", "use", "tackle", "rod", "darki", "current net"}},
	{model.IntentWaterCondition, []string{"murky", "clean", "water quality", "dirty"}},
	{model.IntentWeatherCondition, []string{"weather", "tide", "current", "wind", "rain"}},
	{model.IntentCauses, []string{"why", "cause", "reason", "because"}},
	{model.IntentEffects, []string{"effect", "happen", "result", "consequence"}},
	{model.IntentSuitability, []string{"suitable", "good", "bad", "should", "can i"}},
	{model.IntentAdvice, []string{"recommend", "suggest", "tip", "best", "how to"}},
	{model.IntentComparison, []string{"compare", "difference", "versus", "vs", "better"}},
}

// Classifier assigns an intent label to an utterance. Classification is
// a fixed-priority decision cascade; reordering the rules changes
// behavior, so the order below is the contract.
type Classifier struct{}

// NewClassifier creates a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify runs the cascade over the corrected text and extracted
// entities. Context sensitivity (carrying a topic across turns) is
// applied downstream via the memory's current-topic fallback.
func (c *Classifier) Classify(text string, entities model.EntitySet) model.Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	// 1. Exact short-form responses.
	switch {
	case affirmativeSet[lower]:
		return model.IntentAffirmative
	case negativeSet[lower]:
		return model.IntentNegative
	case greetingSet[lower]:
		return model.IntentGreeting
	case goodbyeSet[lower]:
		return model.IntentGoodbye
	}

	// 2. Question-type-derived labels.
	switch ClassifyQuestionType(text) {
	case model.QuestionTemporal:
		return model.IntentSeasonTiming
	case model.QuestionLocation:
		return model.IntentLocation
	case model.QuestionReason:
		return model.IntentCauses
	case model.QuestionMethod:
		return model.IntentAdvice
	case model.QuestionYesNo:
		return model.IntentSuitability
	}

	// 3. Entity-shape rules.
	if entities.Has(model.CategoryWaterQuality) {
		return model.IntentWaterCondition
	}
	if entities.Has(model.CategoryGear) && entities.Has(model.CategoryFish) {
		return model.IntentGearEquipment
	}
	if entities.Has(model.CategoryEconomic) {
		return model.IntentEconomic
	}

	// 4. Comparison structure.
	if _, _, ok := ExtractComparison(text); ok {
		return model.IntentComparison
	}

	// 5. Ordered keyword table.
	for _, row := range intentKeywords {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				return row.intent
			}
		}
	}

	// 6. Fallback.
	return model.IntentGeneralInfo
}
