package knowledge

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestGraph(t *testing.T) *SQLiteGraph {
	t.Helper()
	g, err := NewSQLiteGraph(filepath.Join(t.TempDir(), "knowledge.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open graph: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	if err := g.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return g
}

func TestSeedIdempotent(t *testing.T) {
	g := newTestGraph(t)
	ctx := context.Background()

	e1, r1, err := g.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if e1 == 0 || r1 == 0 {
		t.Fatalf("seed produced empty graph: %d entities, %d relations", e1, r1)
	}

	if err := g.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	e2, r2, err := g.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if e1 != e2 || r1 != r2 {
		t.Errorf("re-seed changed counts: %d/%d -> %d/%d", e1, r1, e2, r2)
	}
}

func TestLookupCaseInsensitiveSubstring(t *testing.T) {
	g := newTestGraph(t)
	ctx := context.Background()

	rec, err := g.Lookup(ctx, "HILSA")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.Entity != "Hilsa" {
		t.Errorf("entity = %q, want 'Hilsa'", rec.Entity)
	}

	seasons := rec.Targets(RelSeasonallyAvailableIn)
	if len(seasons) != 1 || seasons[0] != "Monsoon" {
		t.Errorf("seasons = %v, want [Monsoon]", seasons)
	}
	waters := rec.Targets(RelFoundIn)
	if len(waters) != 2 || waters[0] != "Saltwater" || waters[1] != "Freshwater" {
		t.Errorf("waters = %v, want [Saltwater Freshwater]", waters)
	}
}

func TestLookupEarliestInsertedWins(t *testing.T) {
	g := newTestGraph(t)

	// "current" is a substring of both "Strong Current" and "Current
	// Net"; the earlier-inserted entity wins.
	rec, err := g.Lookup(context.Background(), "current")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.Entity != "Strong Current" {
		t.Errorf("entity = %q, want 'Strong Current'", rec.Entity)
	}
}

func TestLookupMiss(t *testing.T) {
	g := newTestGraph(t)

	rec, err := g.Lookup(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("miss must not error, got %v", err)
	}
	if rec.Found() {
		t.Errorf("expected no match, got %q", rec.Entity)
	}

	rec, err = g.Lookup(context.Background(), "   ")
	if err != nil || rec.Found() {
		t.Errorf("blank query: rec=%v err=%v", rec, err)
	}
}

func TestLookupIncoming(t *testing.T) {
	g := newTestGraph(t)

	rec, err := g.Lookup(context.Background(), "monsoon")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	fish := rec.Sources(RelSeasonallyAvailableIn)
	if len(fish) != 1 || fish[0] != "Hilsa" {
		t.Errorf("incoming = %v, want [Hilsa]", fish)
	}
}

func TestSuggestRelated(t *testing.T) {
	g := newTestGraph(t)
	ctx := context.Background()

	got, err := g.SuggestRelated(ctx, "hilsa", nil)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("suggestions = %v, want 3 entries", got)
	}
	if got[0] != "Monsoon" || got[1] != "Boisakh" || got[2] != "Saltwater" {
		t.Errorf("suggestions = %v, want [Monsoon Boisakh Saltwater]", got)
	}

	// Excluded names are skipped and the next relation fills in.
	got, err = g.SuggestRelated(ctx, "hilsa", map[string]bool{"Monsoon": true})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 3 || got[0] != "Boisakh" {
		t.Errorf("suggestions = %v, want Boisakh first", got)
	}

	got, err = g.SuggestRelated(ctx, "zzzz", nil)
	if err != nil || got != nil {
		t.Errorf("unknown entity: got %v, err %v", got, err)
	}
}

func TestLookupToleratesCorruptLabels(t *testing.T) {
	g := newTestGraph(t)
	ctx := context.Background()

	_, err := g.db.ExecContext(ctx,
		`INSERT INTO entities (id, name, labels, created_at) VALUES (?, ?, ?, ?)`,
		g.newID(), "Weird Bait", "{not json", time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec, err := g.Lookup(ctx, "weird bait")
	if err != nil {
		t.Fatalf("corrupt labels must not fail the lookup: %v", err)
	}
	if rec.Entity != "Weird Bait" {
		t.Fatalf("entity = %q, want 'Weird Bait'", rec.Entity)
	}
	if rec.Labels != nil {
		t.Errorf("labels = %v, want nil", rec.Labels)
	}
}

func TestAddEntityReturnsExistingID(t *testing.T) {
	g := newTestGraph(t)
	ctx := context.Background()

	id1, err := g.AddEntity(ctx, "Hilsa", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	id2, err := g.AddEntity(ctx, "Hilsa", []string{"Fish"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id1 != id2 {
		t.Errorf("duplicate add returned a new id: %q vs %q", id1, id2)
	}
}
