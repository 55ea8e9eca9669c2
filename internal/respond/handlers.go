package respond

import (
	"context"
	"fmt"
	"strings"

	"github.com/mchowdhury/fishtalk/internal/knowledge"
	"github.com/mchowdhury/fishtalk/internal/model"
	"github.com/mchowdhury/fishtalk/internal/nlu"
)

const capability = "I specialize in fishing - fish species, seasons, locations, water conditions, and equipment."

// HarmfulGearWarning is the fixed advisory returned whenever a harmful
// gear type is mentioned. This branch is deliberately not randomized.
const HarmfulGearWarning = `Important Warning: Current Nets (Darki)

These nets are HARMFUL and should be avoided!

Why they're problematic:
  - Catch mother fish and young fry indiscriminately
  - Damage fish populations long-term
  - Can overturn in strong currents
  - Not sustainable for fishing communities

Better alternative: use traditional, selective nets that allow young
fish to escape, target adult fish appropriately, and support
sustainable fishing.

Want to know about better fishing practices?`

const (
	currentWarning = "\nWarning: Strong currents can be dangerous - nets may overturn!"
	amavasyaNote   = "\nSpecial note: Amavasya (new moon) is great for Hilsa fishing!"
)

// harmfulGear are the gear entries that trigger the fixed warning.
var harmfulGear = map[string]bool{"current net": true, "darki": true}

func (b *Builder) handleGreeting() string {
	return b.catalog.Pick(b.rng, "greeting", map[string]string{"capability": capability})
}

func (b *Builder) handleGoodbye() string {
	return b.catalog.Pick(b.rng, "farewell", nil)
}

func (b *Builder) handleNegative() string {
	return b.catalog.Pick(b.rng, "negative_response", nil)
}

func (b *Builder) handleAffirmative(ctx context.Context, entity string) (string, error) {
	if entity == "" {
		return "Great! What would you like to know more about?", nil
	}

	intro := b.catalog.Pick(b.rng, "affirmative_response", nil)
	rec, err := b.lookup(ctx, entity)
	if err != nil {
		return "", err
	}
	if !rec.Found() {
		return intro + " Actually, let me know what specific aspect interests you!", nil
	}
	return intro + "\n\n" + summarize(rec), nil
}

func (b *Builder) handleSeason(ctx context.Context, entity string) (string, error) {
	if entity == "" {
		return "I'd love to help with timing! Which fish are you interested in - Hilsa, Catfish, or Salmon?", nil
	}

	rec, err := b.lookup(ctx, entity)
	if err != nil {
		return "", err
	}
	if !rec.Found() {
		return fmt.Sprintf("I don't have timing information for '%s'. Try asking about Hilsa, Catfish, or Salmon!", entity), nil
	}

	seasons := rec.Targets(knowledge.RelSeasonallyAvailableIn)
	catchIn := rec.Targets(knowledge.RelCatchIn)

	var response string
	if len(seasons) > 0 {
		extra := ""
		if len(catchIn) > 0 {
			n := len(catchIn)
			if n > 2 {
				n = 2
			}
			extra = fmt.Sprintf("Best conditions: %s.", strings.Join(catchIn[:n], ", "))
		}
		response = b.catalog.Pick(b.rng, "season_answer", map[string]string{
			"fish":   rec.Entity,
			"season": strings.Join(seasons, ", "),
			"extra":  extra,
		})
	} else {
		response = fmt.Sprintf("I don't have specific season data for %s, but I can tell you about locations or conditions!", rec.Entity)
	}

	followUp := b.catalog.Pick(b.rng, "follow_up", map[string]string{"topic": "the best locations"})
	return response + "\n\n" + followUp, nil
}

func (b *Builder) handleLocation(ctx context.Context, entity string) (string, error) {
	if entity == "" {
		return "Which fish are you looking to find? Hilsa, Catfish, or Salmon?", nil
	}

	rec, err := b.lookup(ctx, entity)
	if err != nil {
		return "", err
	}
	if !rec.Found() {
		return fmt.Sprintf("I don't have location info for '%s'.", entity), nil
	}

	locations := append(rec.Targets(knowledge.RelFoundIn), rec.Targets(knowledge.RelAvailableIn)...)

	var response string
	if len(locations) > 0 {
		location := strings.Join(locations, ", ")
		extra := ""
		if strings.Contains(location, "Freshwater") {
			extra = "Look in rivers, streams, and lakes."
		} else if strings.Contains(location, "Saltwater") {
			extra = "Found in coastal and estuarine areas."
		}
		response = b.catalog.Pick(b.rng, "location_answer", map[string]string{
			"fish":     rec.Entity,
			"location": location,
			"extra":    extra,
		})
	} else {
		response = fmt.Sprintf("Location data not available for %s, but I can help with seasons or conditions!", rec.Entity)
	}

	followUp := b.catalog.Pick(b.rng, "follow_up", map[string]string{"topic": "water conditions"})
	return response + "\n\n" + followUp, nil
}

func (b *Builder) handleWaterCondition(ctx context.Context, entity string, entities model.EntitySet) (string, error) {
	for _, e := range entities[model.CategoryWaterQuality] {
		if strings.Contains(e, "murky") {
			return b.murkyWaterAnalysis(ctx)
		}
	}

	rec, err := b.lookup(ctx, entity)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Water condition: %s\n\n", titleOrDefault(entity, "General"))

	causes := rec.Targets(knowledge.RelCausedBy)
	if len(causes) > 0 {
		sb.WriteString("What causes it:\n")
		n := len(causes)
		if n > 4 {
			n = 4
		}
		for _, cause := range causes[:n] {
			fmt.Fprintf(&sb, "  - %s\n", cause)
		}
		sb.WriteString("\n")
	}

	writeSuitability(&sb, rec, "Good for: ", "Not good for: ")
	sb.WriteString("\nTip: Always check water conditions before heading out!")
	return sb.String(), nil
}

func (b *Builder) murkyWaterAnalysis(ctx context.Context) (string, error) {
	rec, err := b.lookup(ctx, "Murky Water")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("About murky water\n\n")

	causes := rec.Targets(knowledge.RelCausedBy)
	if len(causes) > 0 {
		sb.WriteString("Common causes:\n")
		for i, cause := range causes {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, cause)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Impact on fishing:\n")
	sb.WriteString("Murky water makes fishing very difficult.\n")
	sb.WriteString("Fish can't see bait or nets properly.\n")
	sb.WriteString("Not suitable for fish catching.\n\n")
	sb.WriteString("Recommendation: Wait for clean, stable water for better results!")
	return sb.String(), nil
}

func (b *Builder) handleWeather(ctx context.Context, entity string) (string, error) {
	rec, err := b.lookup(ctx, entity)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Condition: %s\n\n", titleOrDefault(entity, "Weather"))
	writeSuitability(&sb, rec, "Good for: ", "Avoid for: ")

	lower := strings.ToLower(entity)
	if strings.Contains(lower, "current") {
		sb.WriteString(currentWarning)
	} else if strings.Contains(lower, "amavasya") {
		sb.WriteString(amavasyaNote)
	}
	return sb.String(), nil
}

func (b *Builder) handleGear(ctx context.Context, entities model.EntitySet) (string, error) {
	gearMentions := entities[model.CategoryGear]
	fishMentions := entities[model.CategoryFish]

	for _, g := range gearMentions {
		if harmfulGear[g] {
			return HarmfulGearWarning, nil
		}
	}

	if len(fishMentions) > 0 {
		fish := fishMentions[0]
		rec, err := b.lookup(ctx, fish)
		if err != nil {
			return "", err
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Equipment for %s\n\n", titleCase(fish))

		requires := rec.Targets(knowledge.RelRequires)
		if len(requires) > 0 {
			fmt.Fprintf(&sb, "Recommended: %s\n\n", strings.Join(requires, ", "))
		} else {
			sb.WriteString("General guidelines:\n")
			sb.WriteString("  - Use traditional fishing nets with appropriate mesh size\n")
			sb.WriteString("  - Avoid current nets (darki) - harmful to fish populations\n")
			sb.WriteString("  - Match your gear to water type (fresh/salt)\n")
			sb.WriteString("  - Allow young fish to escape and grow\n\n")
		}

		sb.WriteString("Want to know the best season or location too?")
		return sb.String(), nil
	}

	return "What kind of equipment are you interested in? Nets, rods, or gear for a specific fish?", nil
}

func (b *Builder) handleCauses(ctx context.Context, entity string) (string, error) {
	if entity == "" {
		return "What would you like to know the cause of? Water conditions, seasonal changes, or something else?", nil
	}

	rec, err := b.lookup(ctx, entity)
	if err != nil {
		return "", err
	}

	causes := rec.Targets(knowledge.RelCausedBy)
	if len(causes) == 0 {
		return fmt.Sprintf("I don't have specific cause information for %s, but I can tell you about its effects or how it impacts fishing!", entity), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "What causes %s?\n\n", titleCase(entity))
	for i, cause := range causes {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, cause)
	}
	sb.WriteString("\nUnderstanding causes helps you plan better fishing trips!")
	return sb.String(), nil
}

func (b *Builder) handleEffects(ctx context.Context, entity string) (string, error) {
	if entity == "" {
		return "What effects are you curious about? I can explain impacts of weather, water conditions, or equipment.", nil
	}

	rec, err := b.lookup(ctx, entity)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Effects of %s\n\n", titleCase(entity))

	effects := rec.Targets(knowledge.RelCauses)
	if len(effects) > 0 {
		sb.WriteString("Direct effects:\n")
		for _, effect := range effects {
			fmt.Fprintf(&sb, "  - %s\n", effect)
		}
		sb.WriteString("\n")
	}

	notSuitable := rec.Targets(knowledge.RelNotSuitableFor)
	if len(notSuitable) > 0 {
		sb.WriteString("Negative impact:\n")
		for _, item := range notSuitable {
			fmt.Fprintf(&sb, "  - %s\n", item)
		}
		sb.WriteString("\n")
	}

	if len(effects) == 0 && len(notSuitable) == 0 {
		sb.WriteString("I don't have specific effect data, but I can tell you about causes or suitability!\n")
	}

	sb.WriteString("\nKnowing effects helps you avoid bad conditions!")
	return sb.String(), nil
}

func (b *Builder) handleSuitability(ctx context.Context, entity, text string) (string, error) {
	negative, _ := nlu.DetectNegation(text)

	if entity == "" {
		return "What are you checking suitability for? A fish, season, water condition, or equipment?", nil
	}

	rec, err := b.lookup(ctx, entity)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Suitability: %s\n\n", titleCase(entity))

	suitable := rec.Targets(knowledge.RelSuitableFor)
	notSuitable := rec.Targets(knowledge.RelNotSuitableFor)

	if len(suitable) > 0 {
		sb.WriteString("Good for:\n")
		for _, item := range suitable {
			fmt.Fprintf(&sb, "  - %s\n", item)
		}
		sb.WriteString("\n")
	}
	if len(notSuitable) > 0 {
		sb.WriteString("Not good for:\n")
		for _, item := range notSuitable {
			fmt.Fprintf(&sb, "  - %s\n", item)
		}
		sb.WriteString("\n")
	}

	switch {
	case negative && len(notSuitable) > 0:
		fmt.Fprintf(&sb, "You're right to avoid %s for those activities!", entity)
	case len(suitable) > 0:
		fmt.Fprintf(&sb, "%s is a good choice for these activities!", titleCase(entity))
	default:
		sb.WriteString("Plan your activities based on suitable conditions!")
	}
	return sb.String(), nil
}

func (b *Builder) handleEconomic(ctx context.Context) (string, error) {
	rec, err := b.lookup(ctx, "Income")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Economics of fishing\n\n")

	divided := rec.Targets(knowledge.RelDividedTo)
	if len(divided) > 0 {
		sb.WriteString("Income distribution:\n")
		for _, party := range divided {
			fmt.Fprintf(&sb, "  - %s\n", party)
		}
		sb.WriteString("\n")
		sb.WriteString("Fishing income is typically shared among boat owners and fishermen, ")
		sb.WriteString("and covers operational costs like engine fuel and food.\n\n")
	}

	sb.WriteString("Understanding economics helps plan sustainable fishing ventures!")
	return sb.String(), nil
}

func (b *Builder) handleComparison(ctx context.Context, entities model.EntitySet, text string) (string, error) {
	left, right, hasComparison := nlu.ExtractComparison(text)
	fishList := entities[model.CategoryFish]

	if len(fishList) < 2 && !hasComparison {
		return "To compare, please mention two fish species (like 'Hilsa and Catfish') or two conditions!", nil
	}

	var first, second string
	if len(fishList) > 0 {
		first = fishList[0]
	} else {
		first = left
	}
	if len(fishList) > 1 {
		second = fishList[1]
	} else {
		second = right
	}

	if first == "" || second == "" {
		return "I need two things to compare. Try 'Compare Hilsa and Salmon' or 'Hilsa vs Catfish'.", nil
	}

	rec1, err := b.lookup(ctx, first)
	if err != nil {
		return "", err
	}
	rec2, err := b.lookup(ctx, second)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Comparing %s vs %s\n\n", titleCase(first), titleCase(second))

	seasons1 := rec1.Targets(knowledge.RelSeasonallyAvailableIn)
	seasons2 := rec2.Targets(knowledge.RelSeasonallyAvailableIn)
	sb.WriteString("Best season:\n")
	fmt.Fprintf(&sb, "  - %s: %s\n", titleCase(first), joinOrNA(seasons1))
	fmt.Fprintf(&sb, "  - %s: %s\n\n", titleCase(second), joinOrNA(seasons2))

	locs1 := rec1.Targets(knowledge.RelFoundIn)
	locs2 := rec2.Targets(knowledge.RelFoundIn)
	sb.WriteString("Habitat:\n")
	fmt.Fprintf(&sb, "  - %s: %s\n", titleCase(first), joinOrNA(locs1))
	fmt.Fprintf(&sb, "  - %s: %s\n\n", titleCase(second), joinOrNA(locs2))

	if len(seasons1) > 0 && len(seasons2) > 0 && !sameList(seasons1, seasons2) {
		sb.WriteString("Key difference: These fish are active in different seasons, so you can target them at different times of the year!")
	} else if len(locs1) > 0 && len(locs2) > 0 && !sameList(locs1, locs2) {
		sb.WriteString("Key difference: These fish live in different water types, so you'll need different locations!")
	}
	return sb.String(), nil
}

func (b *Builder) handleAdvice(ctx context.Context, entity string) (string, error) {
	if entity == "" {
		return "I'd love to give advice! What are you planning - catching a specific fish, dealing with weather, or choosing equipment?", nil
	}

	rec, err := b.lookup(ctx, entity)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Fishing advice: %s\n\n", titleCase(entity))

	if seasons := rec.Targets(knowledge.RelSeasonallyAvailableIn); len(seasons) > 0 {
		fmt.Fprintf(&sb, "Best timing: Target %s during %s\n\n", entity, strings.Join(seasons, ", "))
	}
	if locations := rec.Targets(knowledge.RelFoundIn); len(locations) > 0 {
		fmt.Fprintf(&sb, "Where to go: Focus on %s areas\n\n", strings.Join(locations, ", "))
	}
	if conditions := rec.Targets(knowledge.RelCatchIn); len(conditions) > 0 {
		fmt.Fprintf(&sb, "Ideal conditions: Look for %s\n\n", strings.Join(conditions, ", "))
	}

	sb.WriteString("Pro tips:\n")
	sb.WriteString("  - Check water conditions before going out\n")
	sb.WriteString("  - Avoid murky water and strong currents\n")
	sb.WriteString("  - Use appropriate, sustainable gear\n")
	sb.WriteString("  - Consider Bangla months: Boisakh is best\n")
	return sb.String(), nil
}

func (b *Builder) handleGeneral(ctx context.Context, entity, text string) (string, error) {
	if entity == "" {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return "I'm here to help! Ask me about fish species (Hilsa, Catfish, Salmon), seasons, locations, water conditions, or equipment.", nil
		}
		return fmt.Sprintf("I couldn't find anything about '%s'. But I can tell you about Hilsa, Catfish, Salmon, water conditions, or equipment!", trimmed), nil
	}

	rec, err := b.lookup(ctx, entity)
	if err != nil {
		return "", err
	}
	if !rec.Found() {
		return fmt.Sprintf("I couldn't find '%s' in my knowledge base. Try asking about Hilsa, Catfish, Salmon, water conditions, or equipment!", entity), nil
	}

	var seasons, locations, conditions, suitable, notSuitable []string
	for _, rel := range rec.Outgoing {
		switch rel.Label {
		case knowledge.RelSeasonallyAvailableIn:
			seasons = append(seasons, rel.Name)
		case knowledge.RelFoundIn, knowledge.RelAvailableIn:
			locations = append(locations, rel.Name)
		case knowledge.RelCatchIn, knowledge.RelAffectedBy:
			conditions = append(conditions, rel.Name)
		case knowledge.RelSuitableFor:
			suitable = append(suitable, rel.Name)
		case knowledge.RelNotSuitableFor:
			notSuitable = append(notSuitable, rel.Name)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "About %s\n\n", rec.Entity)
	writeIfAny(&sb, "Season: ", seasons)
	writeIfAny(&sb, "Location: ", locations)
	writeIfAny(&sb, "Conditions: ", conditions)
	writeIfAny(&sb, "Good for: ", suitable)
	writeIfAny(&sb, "Not good for: ", notSuitable)

	if len(seasons)+len(locations)+len(conditions)+len(suitable)+len(notSuitable) == 0 {
		sb.WriteString("I have this in my database, but limited details. Ask me something specific about it!\n")
	}

	sb.WriteString("\nWhat else would you like to know?")
	return sb.String(), nil
}

// summarize builds the short info block used by the affirmative handler.
func summarize(rec knowledge.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", rec.Entity)
	writeIfAny(&sb, "Season: ", rec.Targets(knowledge.RelSeasonallyAvailableIn))
	writeIfAny(&sb, "Location: ", rec.Targets(knowledge.RelFoundIn))
	writeIfAny(&sb, "Best conditions: ", rec.Targets(knowledge.RelCatchIn))
	return sb.String()
}

func writeIfAny(sb *strings.Builder, prefix string, items []string) {
	if len(items) > 0 {
		sb.WriteString(prefix + strings.Join(items, ", ") + "\n")
	}
}

func writeSuitability(sb *strings.Builder, rec knowledge.Record, goodPrefix, badPrefix string) {
	writeIfAny(sb, goodPrefix, rec.Targets(knowledge.RelSuitableFor))
	writeIfAny(sb, badPrefix, rec.Targets(knowledge.RelNotSuitableFor))
}

func joinOrNA(items []string) string {
	if len(items) == 0 {
		return "N/A"
	}
	return strings.Join(items, ", ")
}

func sameList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func titleOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return titleCase(s)
}
