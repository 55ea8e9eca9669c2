package respond

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/mchowdhury/fishtalk/internal/knowledge"
	"github.com/mchowdhury/fishtalk/internal/memory"
	"github.com/mchowdhury/fishtalk/internal/model"
)

// Personality and suggestion probabilities per stage.
const (
	enthusiasmChance = 0.3
	expertChance     = 0.2
	suggestionChance = 0.6
)

// Builder composes replies from lookup results, templates, and
// conversation memory.
type Builder struct {
	kb      knowledge.Lookup
	catalog Catalog
	rng     Chooser
	log     *zap.Logger
}

// NewBuilder creates a Builder. A nil catalog uses the embedded one, a
// nil rng uses a time-seeded generator, a nil logger disables logging.
func NewBuilder(kb knowledge.Lookup, catalog Catalog, rng Chooser, log *zap.Logger) *Builder {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{kb: kb, catalog: catalog, rng: rng, log: log}
}

// Build dispatches the intent to its handler and applies the styling
// passes. An error is returned only for knowledge-store transport
// failures; the orchestrator converts it to a stable apology.
func (b *Builder) Build(ctx context.Context, intent model.Intent, entities model.EntitySet, conv *memory.Conversation, text string) (string, error) {
	primary := b.resolvePrimary(entities, conv)

	var response string
	var err error
	switch intent {
	case model.IntentGreeting:
		response = b.handleGreeting()
	case model.IntentGoodbye:
		response = b.handleGoodbye()
	case model.IntentAffirmative:
		response, err = b.handleAffirmative(ctx, primary)
	case model.IntentNegative:
		response = b.handleNegative()
	case model.IntentSeasonTiming:
		response, err = b.handleSeason(ctx, primary)
	case model.IntentLocation:
		response, err = b.handleLocation(ctx, primary)
	case model.IntentWaterCondition:
		response, err = b.handleWaterCondition(ctx, primary, entities)
	case model.IntentWeatherCondition:
		response, err = b.handleWeather(ctx, primary)
	case model.IntentGearEquipment:
		response, err = b.handleGear(ctx, entities)
	case model.IntentCauses:
		response, err = b.handleCauses(ctx, primary)
	case model.IntentEffects:
		response, err = b.handleEffects(ctx, primary)
	case model.IntentSuitability:
		response, err = b.handleSuitability(ctx, primary, text)
	case model.IntentEconomic:
		response, err = b.handleEconomic(ctx)
	case model.IntentComparison:
		response, err = b.handleComparison(ctx, entities, text)
	case model.IntentAdvice:
		response, err = b.handleAdvice(ctx, primary)
	case model.IntentGeneralInfo:
		response, err = b.handleGeneral(ctx, primary, text)
	default:
		response, err = b.handleGeneral(ctx, primary, text)
	}
	if err != nil {
		return "", err
	}

	response = b.addPersonality(response, conv.Stage)
	response = b.addSuggestions(ctx, response, primary, conv)

	return response, nil
}

// resolvePrimary picks the entity that drives this turn: the first
// match in category priority order, falling back to the remembered
// topic. The chosen entity is folded into memory.
func (b *Builder) resolvePrimary(entities model.EntitySet, conv *memory.Conversation) string {
	for _, cat := range model.PrimaryOrder {
		if entities.Has(cat) {
			entity := entities.First(cat)
			conv.CurrentTopic = entity
			conv.EntitiesDiscussed[entity] = true
			return entity
		}
	}
	return conv.CurrentTopic
}

// addPersonality prepends a stylistic phrase with a stage-dependent
// probability.
func (b *Builder) addPersonality(response string, stage model.Stage) string {
	switch stage {
	case model.StageGreeting, model.StageExploring:
		if b.rng.Float64() < enthusiasmChance {
			return b.catalog.Pick(b.rng, "enthusiasm", nil) + response
		}
	case model.StageExpert:
		if b.rng.Float64() < expertChance {
			return b.catalog.Pick(b.rng, "expert_intro", nil) + response
		}
	}
	return response
}

// addSuggestions appends a proactive follow-up in the exploring and
// deep-dive stages. Suggestion failures never fail the turn; the reply
// is already built.
func (b *Builder) addSuggestions(ctx context.Context, response, primary string, conv *memory.Conversation) string {
	if conv.Stage != model.StageExploring && conv.Stage != model.StageDeepDive {
		return response
	}
	if primary == "" || b.rng.Float64() >= suggestionChance {
		return response
	}

	suggestions, err := b.kb.SuggestRelated(ctx, primary, conv.TopicsDiscussed)
	if err != nil {
		b.log.Debug("suggestion lookup failed", zap.String("entity", primary), zap.Error(err))
		return response
	}
	if len(suggestions) == 0 {
		return response
	}

	transition := b.catalog.Pick(b.rng, "transition", map[string]string{"topic": suggestions[0]})
	return response + "\n\n" + transition + " you might also want to know about " + suggestions[0] + "."
}

func (b *Builder) lookup(ctx context.Context, name string) (knowledge.Record, error) {
	return b.kb.Lookup(ctx, name)
}
