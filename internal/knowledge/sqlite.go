package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteGraph implements Lookup over a SQLite adjacency-table graph.
type SQLiteGraph struct {
	db      *sql.DB
	log     *zap.Logger
	entropy *rand.Rand
}

// NewSQLiteGraph opens or creates the graph database at the given path.
// A nil logger disables logging.
func NewSQLiteGraph(dbPath string, log *zap.Logger) (*SQLiteGraph, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	g := &SQLiteGraph{
		db:      db,
		log:     log,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := g.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return g, nil
}

func (g *SQLiteGraph) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

func (g *SQLiteGraph) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entities (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		labels     TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(name);

	CREATE TABLE IF NOT EXISTS relations (
		from_id    TEXT NOT NULL REFERENCES entities(id),
		rel        TEXT NOT NULL,
		to_id      TEXT NOT NULL REFERENCES entities(id),
		created_at TEXT NOT NULL,
		PRIMARY KEY (from_id, rel, to_id)
	);
	CREATE INDEX IF NOT EXISTS idx_relations_to ON relations(to_id);
	`
	_, err := g.db.Exec(schema)
	return err
}

// AddEntity inserts an entity if it does not already exist and returns
// its ID.
func (g *SQLiteGraph) AddEntity(ctx context.Context, name string, labels []string) (string, error) {
	var id string
	err := g.db.QueryRowContext(ctx, `SELECT id FROM entities WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	id = g.newID()
	var labelsJSON *string
	if len(labels) > 0 {
		b, _ := json.Marshal(labels)
		s := string(b)
		labelsJSON = &s
	}
	_, err = g.db.ExecContext(ctx,
		`INSERT INTO entities (id, name, labels, created_at) VALUES (?, ?, ?, ?)`,
		id, name, labelsJSON, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("insert entity %q: %w", name, err)
	}
	return id, nil
}

// Relate creates a relation between two entities by name. Both entities
// must already exist.
func (g *SQLiteGraph) Relate(ctx context.Context, from, rel, to string) error {
	fromID, err := g.entityID(ctx, from)
	if err != nil {
		return fmt.Errorf("resolve from: %w", err)
	}
	toID, err := g.entityID(ctx, to)
	if err != nil {
		return fmt.Errorf("resolve to: %w", err)
	}
	_, err = g.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO relations (from_id, rel, to_id, created_at) VALUES (?, ?, ?, ?)`,
		fromID, rel, toID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert relation: %w", err)
	}
	return nil
}

func (g *SQLiteGraph) entityID(ctx context.Context, name string) (string, error) {
	var id string
	err := g.db.QueryRowContext(ctx, `SELECT id FROM entities WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("entity not found: %s", name)
	}
	return id, nil
}

// Lookup implements the Lookup interface. The name matches stored
// entity names case-insensitively as a substring; among multiple
// matches the earliest-inserted entity wins, keeping results stable.
func (g *SQLiteGraph) Lookup(ctx context.Context, name string) (Record, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Record{}, nil
	}

	var id, entity string
	var labelsJSON sql.NullString
	err := g.db.QueryRowContext(ctx,
		`SELECT id, name, labels FROM entities
		 WHERE instr(lower(name), ?) > 0
		 ORDER BY rowid LIMIT 1`, needle).Scan(&id, &entity, &labelsJSON)
	if err == sql.ErrNoRows {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	rec := Record{Entity: entity, Labels: g.parseLabels(labelsJSON)}

	rows, err := g.db.QueryContext(ctx,
		`SELECT r.rel, t.name, t.labels FROM relations r
		 JOIN entities t ON t.id = r.to_id
		 WHERE r.from_id = ? ORDER BY r.rowid`, id)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	rec.Outgoing, err = g.scanRelations(rows)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	rows, err = g.db.QueryContext(ctx,
		`SELECT r.rel, s.name, s.labels FROM relations r
		 JOIN entities s ON s.id = r.from_id
		 WHERE r.to_id = ? ORDER BY r.rowid`, id)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	rec.Incoming, err = g.scanRelations(rows)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	g.log.Debug("knowledge lookup",
		zap.String("query", name),
		zap.String("entity", rec.Entity),
		zap.Int("outgoing", len(rec.Outgoing)),
		zap.Int("incoming", len(rec.Incoming)))

	return rec, nil
}

// SuggestRelated implements the Lookup interface.
func (g *SQLiteGraph) SuggestRelated(ctx context.Context, name string, exclude map[string]bool) ([]string, error) {
	rec, err := g.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	if !rec.Found() {
		return nil, nil
	}

	var suggestions []string
	seen := map[string]bool{}
	add := func(candidate string) {
		if len(suggestions) >= 3 || candidate == rec.Entity || exclude[candidate] || seen[candidate] {
			return
		}
		seen[candidate] = true
		suggestions = append(suggestions, candidate)
	}
	for _, rel := range rec.Outgoing {
		add(rel.Name)
	}
	for _, rel := range rec.Incoming {
		add(rel.Name)
	}
	return suggestions, nil
}

// Stats returns entity and relation counts.
func (g *SQLiteGraph) Stats(ctx context.Context) (entities, relations int, err error) {
	if err = g.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entities`).Scan(&entities); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err = g.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM relations`).Scan(&relations); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return entities, relations, nil
}

// Close closes the underlying database.
func (g *SQLiteGraph) Close() error {
	return g.db.Close()
}

// parseLabels decodes the labels column. Corrupted JSON yields nil
// labels rather than failing the lookup.
func (g *SQLiteGraph) parseLabels(s sql.NullString) []string {
	if !s.Valid {
		return nil
	}
	var labels []string
	if err := json.Unmarshal([]byte(s.String), &labels); err != nil {
		g.log.Debug("bad labels column", zap.String("raw", s.String), zap.Error(err))
		return nil
	}
	return labels
}

func (g *SQLiteGraph) scanRelations(rows *sql.Rows) ([]Relation, error) {
	defer rows.Close()
	var rels []Relation
	for rows.Next() {
		var r Relation
		var labelsJSON sql.NullString
		if err := rows.Scan(&r.Label, &r.Name, &labelsJSON); err != nil {
			return nil, err
		}
		r.Labels = g.parseLabels(labelsJSON)
		rels = append(rels, r)
	}
	return rels, rows.Err()
}
