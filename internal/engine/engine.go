// Package engine wires the language-understanding pipeline, conversation
// memory, knowledge lookup, and response builder into a single
// turn-processing orchestrator.
package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mchowdhury/fishtalk/internal/knowledge"
	"github.com/mchowdhury/fishtalk/internal/lexicon"
	"github.com/mchowdhury/fishtalk/internal/memory"
	"github.com/mchowdhury/fishtalk/internal/model"
	"github.com/mchowdhury/fishtalk/internal/nlu"
	"github.com/mchowdhury/fishtalk/internal/respond"
)

// Apology is the stable reply returned when the knowledge store is
// unreachable. Store failures are recoverable per turn, never fatal.
const Apology = "Sorry, I'm having trouble reaching my knowledge base right now. Please try again in a moment!"

// Config holds engine construction options. Zero values fall back to
// embedded data and sensible defaults.
type Config struct {
	Lexicon     *lexicon.Lexicon
	Catalog     respond.Catalog
	Corrector   nlu.CorrectorConfig
	MaxSessions int
	SessionTTL  time.Duration
	Rand        respond.Chooser
	Logger      *zap.Logger
}

// Result is the outcome of one processed turn.
type Result struct {
	Reply      string
	Intent     model.Intent
	Corrected  string
	Expansions []string
	Entities   model.EntitySet
	Stage      model.Stage
}

// Engine processes conversation turns. Safe for concurrent use: turns
// for the same session are serialized, turns for different sessions run
// in parallel.
type Engine struct {
	lex        *lexicon.Lexicon
	corrector  *nlu.Corrector
	extractor  *nlu.Extractor
	classifier *nlu.Classifier
	builder    *respond.Builder
	sessions   *memory.Sessions
	log        *zap.Logger
	clock      func() time.Time
}

// New creates an Engine over the given knowledge store.
func New(kb knowledge.Lookup, cfg Config) *Engine {
	lex := cfg.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		lex:        lex,
		corrector:  nlu.NewCorrector(lex, cfg.Corrector),
		extractor:  nlu.NewExtractor(lex),
		classifier: nlu.NewClassifier(),
		builder:    respond.NewBuilder(kb, cfg.Catalog, cfg.Rand, log),
		sessions:   memory.NewSessions(cfg.MaxSessions, cfg.SessionTTL),
		log:        log,
		clock:      time.Now,
	}
}

// Sessions exposes the session table, mainly for tests and stats.
func (e *Engine) Sessions() *memory.Sessions {
	return e.sessions
}

// ProcessTurn runs one full turn for a session. It always returns a
// non-empty reply; no input propagates a fault to the caller.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID, message string) Result {
	conv, release := e.sessions.Acquire(sessionID)
	defer release()

	// Stage must be consistent with the session's history before any
	// reply is generated.
	conv.RefreshStage()

	corrected := e.corrector.Correct(message)
	expansions := nlu.ExpandQuery(e.lex, corrected)
	entities := e.extractor.Extract(corrected)
	intent := e.classifier.Classify(corrected, entities)

	reply, err := e.builder.Build(ctx, intent, entities, conv, corrected)
	if err != nil {
		if !errors.Is(err, knowledge.ErrUnavailable) {
			e.log.Warn("unexpected build failure",
				zap.String("session", sessionID),
				zap.String("intent", string(intent)),
				zap.Error(err))
		} else {
			e.log.Warn("knowledge store unavailable",
				zap.String("session", sessionID),
				zap.Error(err))
		}
		reply = Apology
	}
	if reply == "" {
		reply = Apology
	}

	now := e.clock()
	conv.AddTurn(model.RoleUser, message, intent, now)
	conv.AddTurn(model.RoleAssistant, reply, intent, now)
	conv.LastIntent = intent
	conv.MarkDiscussed()

	e.log.Debug("turn processed",
		zap.String("session", sessionID),
		zap.String("intent", string(intent)),
		zap.String("stage", string(conv.Stage)),
		zap.Int("history", len(conv.History)))

	return Result{
		Reply:      reply,
		Intent:     intent,
		Corrected:  corrected,
		Expansions: expansions,
		Entities:   entities,
		Stage:      conv.Stage,
	}
}
