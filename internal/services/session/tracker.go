package session

import (
	"sync"

	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/services/tetris"
)

// Tracker holds the session currently being played, if any, so readers
// such as the HTTP API can follow it
type Tracker struct {
	mu      sync.RWMutex
	current *Session
}

// NewTracker creates an empty Tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// Attach makes s the tracked session, replacing any previous one
func (t *Tracker) Attach(s *Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = s
}

// Detach stops tracking s. A different session attached since is kept.
func (t *Tracker) Detach(s *Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == s {
		t.current = nil
	}
}

// CurrentSnapshot returns the tracked session's latest snapshot, or
// model.ErrNoGameInProgress when nothing is attached
func (t *Tracker) CurrentSnapshot() (tetris.Snapshot, error) {
	t.mu.RLock()
	s := t.current
	t.mu.RUnlock()
	if s == nil {
		return tetris.Snapshot{}, model.ErrNoGameInProgress
	}
	return s.Snapshot(), nil
}
