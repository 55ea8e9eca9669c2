// Package memory tracks per-session conversation state: the bounded
// turn history, the conversational stage, and the entities and topics
// already discussed.
package memory

import (
	"time"

	"github.com/mchowdhury/fishtalk/internal/model"
)

// HistoryLimit bounds the rolling turn history.
const HistoryLimit = 10

// Conversation is the mutable state of one session. It is not safe for
// concurrent use; callers serialize access through Sessions.Acquire.
type Conversation struct {
	History           []model.Turn
	Stage             model.Stage
	CurrentTopic      string
	TopicsDiscussed   map[string]bool
	EntitiesDiscussed map[string]bool
	LastIntent        model.Intent

	// messagesSeen counts every message ever added, including those
	// truncated out of History. Stage derives from it so later stages
	// stay reachable despite the bounded window.
	messagesSeen int
}

// NewConversation creates an empty conversation in the greeting stage.
func NewConversation() *Conversation {
	return &Conversation{
		Stage:             model.StageGreeting,
		TopicsDiscussed:   map[string]bool{},
		EntitiesDiscussed: map[string]bool{},
	}
}

// AddTurn appends a turn, dropping the oldest entry once the history
// exceeds HistoryLimit.
func (c *Conversation) AddTurn(role, text string, intent model.Intent, at time.Time) {
	c.History = append(c.History, model.Turn{
		Role:      role,
		Text:      text,
		Intent:    intent,
		Timestamp: at,
	})
	c.messagesSeen++
	if len(c.History) > HistoryLimit {
		c.History = c.History[len(c.History)-HistoryLimit:]
	}
}

// RefreshStage recomputes the stage from the cumulative message count.
// It runs at the start of each turn; the stage is never mutated
// independently.
func (c *Conversation) RefreshStage() {
	c.Stage = model.StageFor(c.messagesSeen)
}

// MessagesSeen returns the cumulative message count.
func (c *Conversation) MessagesSeen() int {
	return c.messagesSeen
}

// MarkDiscussed records the current topic as discussed.
func (c *Conversation) MarkDiscussed() {
	if c.CurrentTopic != "" {
		c.TopicsDiscussed[c.CurrentTopic] = true
	}
}
