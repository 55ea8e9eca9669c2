// Package model defines the core dialogue data types.
package model

import "time"

// Intent is the classified purpose of a user utterance.
type Intent string

// The closed intent set. Classification never produces a value outside it.
const (
	IntentGreeting         Intent = "greeting"
	IntentGoodbye          Intent = "goodbye"
	IntentAffirmative      Intent = "affirmative"
	IntentNegative         Intent = "negative"
	IntentSeasonTiming     Intent = "season_timing"
	IntentLocation         Intent = "location"
	IntentWaterCondition   Intent = "water_condition"
	IntentWeatherCondition Intent = "weather_condition"
	IntentGearEquipment    Intent = "gear_equipment"
	IntentCauses           Intent = "causes"
	IntentEffects          Intent = "effects"
	IntentSuitability      Intent = "suitability"
	IntentEconomic         Intent = "economic"
	IntentComparison       Intent = "comparison"
	IntentAdvice           Intent = "advice"
	IntentGeneralInfo      Intent = "general_info"
)

// ValidIntents are the allowed intent labels.
var ValidIntents = map[Intent]bool{
	IntentGreeting:         true,
	IntentGoodbye:          true,
	IntentAffirmative:      true,
	IntentNegative:         true,
	IntentSeasonTiming:     true,
	IntentLocation:         true,
	IntentWaterCondition:   true,
	IntentWeatherCondition: true,
	IntentGearEquipment:    true,
	IntentCauses:           true,
	IntentEffects:          true,
	IntentSuitability:      true,
	IntentEconomic:         true,
	IntentComparison:       true,
	IntentAdvice:           true,
	IntentGeneralInfo:      true,
}

// QuestionType is the surface grammatical form of an utterance.
type QuestionType string

const (
	QuestionYesNo    QuestionType = "yes_no"
	QuestionTemporal QuestionType = "temporal"
	QuestionLocation QuestionType = "location"
	QuestionReason   QuestionType = "reason"
	QuestionMethod   QuestionType = "method"
	QuestionChoice   QuestionType = "choice"
	QuestionGeneral  QuestionType = "general"
)

// Stage is the coarse conversational-maturity level of a session.
type Stage string

const (
	StageGreeting  Stage = "greeting"
	StageExploring Stage = "exploring"
	StageDeepDive  Stage = "deep_dive"
	StageExpert    Stage = "expert"
)

// StageFor maps a cumulative message count to a stage. The count is the
// total number of messages the session has seen, not the length of the
// truncated history window, so later stages stay reachable.
func StageFor(messages int) Stage {
	switch {
	case messages <= 2:
		return StageGreeting
	case messages <= 6:
		return StageExploring
	case messages <= 12:
		return StageDeepDive
	default:
		return StageExpert
	}
}

// Roles for conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single entry in a session's conversation history.
type Turn struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Intent    Intent    `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Category names an entity category in the domain lexicon.
type Category string

const (
	CategoryFish         Category = "fish"
	CategorySeasons      Category = "seasons"
	CategoryMonths       Category = "months"
	CategoryLocations    Category = "locations"
	CategoryConditions   Category = "conditions"
	CategoryGear         Category = "gear"
	CategoryWaterQuality Category = "water_quality"
	CategoryEconomic     Category = "economic"
)

// LexiconCategories is the declaration order of the matchable lexicon
// categories. Iteration over lexicon entries must follow this order so
// fuzzy-correction tie-breaks stay deterministic.
var LexiconCategories = []Category{
	CategoryFish,
	CategorySeasons,
	CategoryMonths,
	CategoryLocations,
	CategoryConditions,
	CategoryGear,
}

// PrimaryOrder is the category priority used to resolve the primary
// entity for a turn.
var PrimaryOrder = []Category{
	CategoryFish,
	CategoryConditions,
	CategoryWaterQuality,
	CategoryGear,
	CategoryLocations,
	CategoryMonths,
	CategorySeasons,
}

// EntitySet maps categories to matched entity names in first-occurrence
// order. Duplicates are possible; no deduplication happens at extraction.
type EntitySet map[Category][]string

// Add appends a match to a category.
func (e EntitySet) Add(cat Category, name string) {
	e[cat] = append(e[cat], name)
}

// Has reports whether a category matched at least once.
func (e EntitySet) Has(cat Category) bool {
	return len(e[cat]) > 0
}

// First returns the first match for a category, or "".
func (e EntitySet) First(cat Category) string {
	if len(e[cat]) == 0 {
		return ""
	}
	return e[cat][0]
}
