// Package knowledge provides the lookup boundary to the external
// knowledge store and a SQLite-backed implementation of it.
package knowledge

import (
	"context"
	"errors"
)

// ErrUnavailable classifies transport failures talking to the store.
// Callers check it with errors.Is and degrade to an apology reply
// instead of failing the turn.
var ErrUnavailable = errors.New("knowledge store unavailable")

// The closed relation vocabulary.
const (
	RelSeasonallyAvailableIn = "SEASONALLY_AVAILABLE_IN"
	RelFoundIn               = "FOUND_IN"
	RelAvailableIn           = "AVAILABLE_IN"
	RelCatchIn               = "CATCH_IN"
	RelCausedBy              = "CAUSED_BY"
	RelCauses                = "CAUSES"
	RelSuitableFor           = "SUITABLE_FOR"
	RelNotSuitableFor        = "NOT_SUITABLE_FOR"
	RelRequires              = "REQUIRES"
	RelDividedTo             = "DIVIDED_TO"
	RelAffectedBy            = "AFFECTED_BY"
)

// Relation is one typed edge of a knowledge record. For outgoing
// relations Name is the target entity; for incoming ones it is the
// source.
type Relation struct {
	Label  string   `json:"relation"`
	Name   string   `json:"name"`
	Labels []string `json:"labels,omitempty"`
}

// Record is a read-only snapshot of an entity and its relations.
type Record struct {
	Entity   string     `json:"entity"`
	Labels   []string   `json:"labels,omitempty"`
	Outgoing []Relation `json:"outgoing,omitempty"`
	Incoming []Relation `json:"incoming,omitempty"`
}

// Found reports whether the lookup matched an entity.
func (r Record) Found() bool {
	return r.Entity != ""
}

// Targets returns the outgoing relation targets with the given label,
// in discovery order.
func (r Record) Targets(label string) []string {
	var names []string
	for _, rel := range r.Outgoing {
		if rel.Label == label {
			names = append(names, rel.Name)
		}
	}
	return names
}

// Sources returns the incoming relation sources with the given label,
// in discovery order.
func (r Record) Sources(label string) []string {
	var names []string
	for _, rel := range r.Incoming {
		if rel.Label == label {
			names = append(names, rel.Name)
		}
	}
	return names
}

// Lookup is the narrow interface the dialogue engine consumes. Any
// store exposing these two operations satisfies the contract.
type Lookup interface {
	// Lookup matches the name case-insensitively as a substring of
	// stored entity names. A miss returns a zero Record and nil error;
	// transport failures wrap ErrUnavailable.
	Lookup(ctx context.Context, name string) (Record, error)

	// SuggestRelated returns up to three related entity names (outgoing
	// targets plus incoming sources, in discovery order), excluding the
	// queried entity and anything in exclude.
	SuggestRelated(ctx context.Context, name string, exclude map[string]bool) ([]string, error)
}
