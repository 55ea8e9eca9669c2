package knowledge

import (
	"context"
	"fmt"
)

type seedEntity struct {
	name   string
	labels []string
}

type seedRelation struct {
	from, rel, to string
}

// The fishery graph. Insertion order is significant: substring lookups
// resolve to the earliest-inserted match, so broader names (e.g.
// "Strong Current") come before compounds containing the same word.
var seedEntities = []seedEntity{
	{"Hilsa", []string{"Fish"}},
	{"Catfish", []string{"Fish"}},
	{"Salmon", []string{"Fish"}},
	{"Mother Fish", []string{"Fish"}},
	{"Fish Fry", []string{"Fish"}},

	{"Monsoon", []string{"Season"}},
	{"Winter", []string{"Season"}},
	{"Summer", []string{"Season"}},
	{"Boisakh", []string{"Month"}},
	{"Joishtho", []string{"Month"}},
	{"Falgun", []string{"Month"}},

	{"Freshwater", []string{"Location"}},
	{"Saltwater", []string{"Location"}},
	{"Kurigram", []string{"Location"}},

	{"Murky Water", []string{"WaterCondition"}},
	{"Clean Water", []string{"WaterCondition"}},
	{"Tide", []string{"WeatherCondition"}},
	{"Strong Current", []string{"WeatherCondition"}},
	{"Amavasya", []string{"LunarPhase"}},
	{"Heavy Rain", []string{"Weather"}},
	{"Poor Visibility", []string{"Condition"}},

	{"Traditional Net", []string{"Gear"}},
	{"Current Net", []string{"Gear"}},
	{"Fishing Rod", []string{"Gear"}},

	{"Fish Catching", []string{"Activity"}},
	{"Net Fishing", []string{"Activity"}},
	{"Hilsa Fishing", []string{"Activity"}},

	{"Income", []string{"Economy"}},
	{"Boat Owner", []string{"Party"}},
	{"Fishermen", []string{"Party"}},
	{"Engine Fuel", []string{"Expense"}},
	{"Food Cost", []string{"Expense"}},
}

var seedRelations = []seedRelation{
	{"Hilsa", RelSeasonallyAvailableIn, "Monsoon"},
	{"Hilsa", RelAvailableIn, "Boisakh"},
	{"Hilsa", RelFoundIn, "Saltwater"},
	{"Hilsa", RelFoundIn, "Freshwater"},
	{"Hilsa", RelCatchIn, "Amavasya"},
	{"Hilsa", RelCatchIn, "Tide"},
	{"Hilsa", RelRequires, "Traditional Net"},
	{"Hilsa", RelAffectedBy, "Strong Current"},

	{"Catfish", RelSeasonallyAvailableIn, "Winter"},
	{"Catfish", RelFoundIn, "Freshwater"},
	{"Catfish", RelCatchIn, "Clean Water"},
	{"Catfish", RelRequires, "Fishing Rod"},

	{"Salmon", RelSeasonallyAvailableIn, "Winter"},
	{"Salmon", RelFoundIn, "Saltwater"},
	{"Salmon", RelAvailableIn, "Falgun"},

	{"Murky Water", RelCausedBy, "Heavy Rain"},
	{"Murky Water", RelCausedBy, "Strong Current"},
	{"Murky Water", RelCausedBy, "Tide"},
	{"Murky Water", RelCauses, "Poor Visibility"},
	{"Murky Water", RelNotSuitableFor, "Fish Catching"},

	{"Clean Water", RelSuitableFor, "Fish Catching"},
	{"Clean Water", RelSuitableFor, "Net Fishing"},

	{"Tide", RelSuitableFor, "Fish Catching"},
	{"Strong Current", RelNotSuitableFor, "Net Fishing"},
	{"Strong Current", RelNotSuitableFor, "Fish Catching"},
	{"Amavasya", RelSuitableFor, "Hilsa Fishing"},

	{"Current Net", RelNotSuitableFor, "Fish Catching"},
	{"Traditional Net", RelSuitableFor, "Net Fishing"},

	{"Income", RelDividedTo, "Boat Owner"},
	{"Income", RelDividedTo, "Fishermen"},
	{"Income", RelDividedTo, "Engine Fuel"},
	{"Income", RelDividedTo, "Food Cost"},
}

// Seed loads the fishery graph. Seeding is idempotent: existing
// entities and relations are left in place.
func (g *SQLiteGraph) Seed(ctx context.Context) error {
	for _, e := range seedEntities {
		if _, err := g.AddEntity(ctx, e.name, e.labels); err != nil {
			return fmt.Errorf("seed entity %q: %w", e.name, err)
		}
	}
	for _, r := range seedRelations {
		if err := g.Relate(ctx, r.from, r.rel, r.to); err != nil {
			return fmt.Errorf("seed relation %s-%s->%s: %w", r.from, r.rel, r.to, err)
		}
	}
	return nil
}
