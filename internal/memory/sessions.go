package memory

import (
	"container/list"
	"sync"
	"time"
)

// Defaults for the session table.
const (
	DefaultMaxSessions = 1024
	DefaultSessionTTL  = time.Hour
)

type session struct {
	mu       sync.Mutex
	conv     *Conversation
	lastSeen time.Time
	elem     *list.Element // position in the recency list
}

// Sessions is the process-wide session table. Turns for the same session
// key are serialized through a per-session mutex; turns for different
// sessions proceed in parallel. Idle sessions expire after the TTL and
// the least-recently-used session is evicted when the table is full.
type Sessions struct {
	mu     sync.Mutex
	byID   map[string]*session
	recent *list.List // front = most recently acquired, values are ids
	max    int
	ttl    time.Duration
	clock  func() time.Time
}

// NewSessions creates a session table. Non-positive max or ttl fall back
// to the defaults.
func NewSessions(max int, ttl time.Duration) *Sessions {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		byID:   map[string]*session{},
		recent: list.New(),
		max:    max,
		ttl:    ttl,
		clock:  time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (s *Sessions) SetClock(clock func() time.Time) {
	s.mu.Lock()
	s.clock = clock
	s.mu.Unlock()
}

// Acquire returns the session's conversation with its per-session lock
// held. The caller must invoke release when the turn is done. New
// sessions are created lazily; acquiring also sweeps expired sessions
// and evicts the least-recently-used one when over capacity.
func (s *Sessions) Acquire(id string) (conv *Conversation, release func()) {
	s.mu.Lock()
	now := s.clock()
	s.sweepLocked(now)

	sess, ok := s.byID[id]
	if !ok {
		sess = &session{conv: NewConversation()}
		s.byID[id] = sess
		sess.elem = s.recent.PushFront(id)
		if len(s.byID) > s.max {
			s.evictOldestLocked(id)
		}
	} else {
		s.recent.MoveToFront(sess.elem)
	}
	sess.lastSeen = now
	s.mu.Unlock()

	sess.mu.Lock()
	return sess.conv, sess.mu.Unlock
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// sweepLocked drops sessions idle past the TTL. A session whose turn is
// still in flight is skipped so its memory updates are not orphaned.
// Caller holds s.mu.
func (s *Sessions) sweepLocked(now time.Time) {
	for e := s.recent.Back(); e != nil; {
		id := e.Value.(string)
		sess := s.byID[id]
		if now.Sub(sess.lastSeen) < s.ttl {
			break // recency order: everything further front is fresher
		}
		prev := e.Prev()
		if sess.mu.TryLock() {
			sess.mu.Unlock()
			s.recent.Remove(e)
			delete(s.byID, id)
		}
		e = prev
	}
}

// evictOldestLocked removes the least-recently-used idle session other
// than keep. Busy victims are skipped; if every candidate is mid-turn
// the table temporarily stays over capacity. Caller holds s.mu.
func (s *Sessions) evictOldestLocked(keep string) {
	for e := s.recent.Back(); e != nil; e = e.Prev() {
		id := e.Value.(string)
		if id == keep {
			continue
		}
		sess := s.byID[id]
		if !sess.mu.TryLock() {
			continue
		}
		sess.mu.Unlock()
		s.recent.Remove(e)
		delete(s.byID, id)
		return
	}
}
