package respond

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/mchowdhury/fishtalk/internal/knowledge"
	"github.com/mchowdhury/fishtalk/internal/memory"
	"github.com/mchowdhury/fishtalk/internal/model"
)

// fakeKB serves canned records keyed by lower-cased entity name.
type fakeKB struct {
	records     map[string]knowledge.Record
	suggestions []string
	err         error
}

func (f *fakeKB) Lookup(ctx context.Context, name string) (knowledge.Record, error) {
	if f.err != nil {
		return knowledge.Record{}, f.err
	}
	return f.records[strings.ToLower(strings.TrimSpace(name))], nil
}

func (f *fakeKB) SuggestRelated(ctx context.Context, name string, exclude map[string]bool) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestions, nil
}

func hilsaKB() *fakeKB {
	return &fakeKB{
		records: map[string]knowledge.Record{
			"hilsa": {
				Entity: "Hilsa",
				Labels: []string{"Fish"},
				Outgoing: []knowledge.Relation{
					{Label: knowledge.RelSeasonallyAvailableIn, Name: "Monsoon"},
					{Label: knowledge.RelFoundIn, Name: "Saltwater"},
					{Label: knowledge.RelCatchIn, Name: "Amavasya"},
				},
			},
		},
		suggestions: []string{"Monsoon"},
	}
}

// quiet suppresses every probabilistic pass and pins template choice.
var quiet = fixedChooser{f: 0.99, n: 0}

func newTestBuilder(kb knowledge.Lookup, rng Chooser) *Builder {
	return NewBuilder(kb, nil, rng, nil)
}

func entitySet(pairs ...string) model.EntitySet {
	es := model.EntitySet{}
	for i := 0; i+1 < len(pairs); i += 2 {
		es.Add(model.Category(pairs[i]), pairs[i+1])
	}
	return es
}

func TestHarmfulGearWarningVerbatim(t *testing.T) {
	b := newTestBuilder(hilsaKB(), quiet)
	conv := memory.NewConversation()

	entities := entitySet("gear", "darki")
	got, err := b.Build(context.Background(), model.IntentGearEquipment, entities, conv, "darki")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got != HarmfulGearWarning {
		t.Errorf("harmful gear reply must be the fixed warning, got %q", got)
	}
}

func TestResolvePrimaryPriority(t *testing.T) {
	b := newTestBuilder(hilsaKB(), quiet)
	conv := memory.NewConversation()

	// Fish outranks locations in the category priority order.
	entities := entitySet("locations", "kurigram", "fish", "hilsa")
	if got := b.resolvePrimary(entities, conv); got != "hilsa" {
		t.Errorf("primary = %q, want 'hilsa'", got)
	}
	if conv.CurrentTopic != "hilsa" {
		t.Errorf("current topic = %q, want 'hilsa'", conv.CurrentTopic)
	}
	if !conv.EntitiesDiscussed["hilsa"] {
		t.Error("primary entity not recorded as discussed")
	}
}

func TestResolvePrimaryFallsBackToTopic(t *testing.T) {
	b := newTestBuilder(hilsaKB(), quiet)
	conv := memory.NewConversation()
	conv.CurrentTopic = "hilsa"

	if got := b.resolvePrimary(model.EntitySet{}, conv); got != "hilsa" {
		t.Errorf("primary = %q, want the remembered topic", got)
	}
}

func TestSeasonAnswer(t *testing.T) {
	b := newTestBuilder(hilsaKB(), quiet)
	conv := memory.NewConversation()

	entities := entitySet("fish", "hilsa")
	got, err := b.Build(context.Background(), model.IntentSeasonTiming, entities, conv, "when is hilsa best caught")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(got, "Hilsa") || !strings.Contains(got, "Monsoon") {
		t.Errorf("season reply missing fish or season: %q", got)
	}
}

func TestSeasonAnswerNoEntity(t *testing.T) {
	b := newTestBuilder(hilsaKB(), quiet)
	conv := memory.NewConversation()

	got, err := b.Build(context.Background(), model.IntentSeasonTiming, model.EntitySet{}, conv, "when")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(got, "Which fish") {
		t.Errorf("expected a clarifying question, got %q", got)
	}
}

func TestGreetingUsesTemplate(t *testing.T) {
	b := newTestBuilder(hilsaKB(), quiet)
	conv := memory.NewConversation()

	got, err := b.Build(context.Background(), model.IntentGreeting, model.EntitySet{}, conv, "hello")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(got, capability) {
		t.Errorf("greeting must state capability, got %q", got)
	}
}

func TestGeneralUnknownEntity(t *testing.T) {
	b := newTestBuilder(hilsaKB(), quiet)
	conv := memory.NewConversation()

	got, err := b.Build(context.Background(), model.IntentGeneralInfo, model.EntitySet{}, conv, "zzzz")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(got, "zzzz") || !strings.Contains(got, "Hilsa") {
		t.Errorf("fallback must name the input and offer topics, got %q", got)
	}
}

func TestBuildPropagatesUnavailable(t *testing.T) {
	kb := &fakeKB{err: fmt.Errorf("%w: dial failed", knowledge.ErrUnavailable)}
	b := newTestBuilder(kb, quiet)
	conv := memory.NewConversation()

	entities := entitySet("fish", "hilsa")
	_, err := b.Build(context.Background(), model.IntentSeasonTiming, entities, conv, "when is hilsa caught")
	if !errors.Is(err, knowledge.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestSuggestionsAppended(t *testing.T) {
	// Float64 = 0 triggers every probabilistic pass.
	b := newTestBuilder(hilsaKB(), fixedChooser{f: 0, n: 0})
	conv := memory.NewConversation()
	conv.Stage = model.StageExploring

	entities := entitySet("fish", "hilsa")
	got, err := b.Build(context.Background(), model.IntentSeasonTiming, entities, conv, "when is hilsa caught")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(got, "you might also want to know about Monsoon") {
		t.Errorf("expected a suggestion, got %q", got)
	}
}

func TestSuggestionsSkippedInGreetingStage(t *testing.T) {
	b := newTestBuilder(hilsaKB(), fixedChooser{f: 0, n: 0})
	conv := memory.NewConversation()

	entities := entitySet("fish", "hilsa")
	got, err := b.Build(context.Background(), model.IntentSeasonTiming, entities, conv, "when is hilsa caught")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(got, "you might also want to know") {
		t.Errorf("no suggestions in the greeting stage, got %q", got)
	}
}

func TestSuggestionFailureKeepsReply(t *testing.T) {
	kb := hilsaKB()
	b := newTestBuilder(&suggestFailKB{fakeKB: kb}, fixedChooser{f: 0, n: 0})
	conv := memory.NewConversation()
	conv.Stage = model.StageExploring

	entities := entitySet("fish", "hilsa")
	got, err := b.Build(context.Background(), model.IntentSeasonTiming, entities, conv, "when is hilsa caught")
	if err != nil {
		t.Fatalf("suggestion failure must not fail the turn: %v", err)
	}
	if !strings.Contains(got, "Monsoon") {
		t.Errorf("base reply lost: %q", got)
	}
}

// suggestFailKB answers lookups but fails suggestions.
type suggestFailKB struct {
	*fakeKB
}

func (f *suggestFailKB) SuggestRelated(ctx context.Context, name string, exclude map[string]bool) ([]string, error) {
	return nil, fmt.Errorf("%w: timeout", knowledge.ErrUnavailable)
}

func TestFarewellRepliesDrawnFromCatalog(t *testing.T) {
	// Real randomness: two consecutive goodbye turns must both produce a
	// non-empty reply that is one of the declared farewell templates,
	// modulo the optional personality prefix.
	b := newTestBuilder(hilsaKB(), rand.New(rand.NewSource(42)))
	conv := memory.NewConversation()
	catalog := DefaultCatalog()

	for turn := 0; turn < 2; turn++ {
		got, err := b.Build(context.Background(), model.IntentGoodbye, model.EntitySet{}, conv, "bye")
		if err != nil {
			t.Fatalf("turn %d: %v", turn, err)
		}
		if got == "" {
			t.Fatalf("turn %d: empty reply", turn)
		}

		reply := got
		for _, prefix := range catalog["enthusiasm"] {
			reply = strings.TrimPrefix(reply, prefix)
		}
		member := false
		for _, tmpl := range catalog["farewell"] {
			if reply == tmpl {
				member = true
				break
			}
		}
		if !member {
			t.Errorf("turn %d: reply %q is not a declared farewell template", turn, got)
		}
	}
}

func TestComparisonFromText(t *testing.T) {
	kb := hilsaKB()
	kb.records["catfish"] = knowledge.Record{
		Entity: "Catfish",
		Outgoing: []knowledge.Relation{
			{Label: knowledge.RelSeasonallyAvailableIn, Name: "Winter"},
			{Label: knowledge.RelFoundIn, Name: "Freshwater"},
		},
	}
	b := newTestBuilder(kb, quiet)
	conv := memory.NewConversation()

	entities := entitySet("fish", "hilsa")
	entities.Add(model.CategoryFish, "catfish")
	got, err := b.Build(context.Background(), model.IntentComparison, entities, conv, "hilsa vs catfish")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(got, "Monsoon") || !strings.Contains(got, "Winter") {
		t.Errorf("comparison missing seasons: %q", got)
	}
	if !strings.Contains(got, "different seasons") {
		t.Errorf("expected the season difference note, got %q", got)
	}
}
