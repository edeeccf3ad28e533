package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/tetris-go/internal/dependencies/clock"
	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/services/tetris"
)

// EndReason says why a session stopped
type EndReason int

const (
	EndReasonGameOver EndReason = iota
	EndReasonQuit
	EndReasonCancelled
)

func (r EndReason) String() string {
	switch r {
	case EndReasonGameOver:
		return "game_over"
	case EndReasonQuit:
		return "quit"
	case EndReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is the outcome of a finished session
type Result struct {
	Reason       EndReason
	Score        int
	LastCombo    int
	LinesCleared int
	PiecesPlaced int
	StartedAt    time.Time
	EndedAt      time.Time
}

// Session drives one engine: it waits for commands up to the engine's
// timeout, dispatches them, and applies the timer rule when the wait
// expires. Run is the engine's only writer; Snapshot may be called from
// any goroutine.
type Session struct {
	engine *tetris.Engine
	clock  clock.Clock
	logger *slog.Logger

	mu        sync.RWMutex
	snapshot  tetris.Snapshot
	started   bool
	observers []func(tetris.Snapshot)
}

// New creates a session around an engine
func New(engine *tetris.Engine, clock clock.Clock, logger *slog.Logger) *Session {
	return &Session{
		engine:   engine,
		clock:    clock,
		logger:   logger,
		snapshot: engine.Snapshot(),
	}
}

// Snapshot returns the most recently published engine state
func (s *Session) Snapshot() tetris.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Observe registers fn to be called, on the session's goroutine, with
// every snapshot Run publishes
func (s *Session) Observe(fn func(tetris.Snapshot)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Run plays the game until it is over, a Quit command arrives, the command
// channel is closed, or ctx is cancelled. render, if non-nil, is called
// with every published snapshot. A session can only be run once.
func (s *Session) Run(ctx context.Context, commands <-chan Command, render func(tetris.Snapshot)) (Result, error) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return Result{}, model.ErrSessionStarted
	}
	s.started = true
	s.mu.Unlock()

	startedAt := s.clock.Now()
	s.logger.Info("session started")

	for {
		snap := s.publish()
		if render != nil {
			render(snap)
		}
		if snap.Over {
			return s.finish(EndReasonGameOver, startedAt), nil
		}

		expired := s.clock.After(snap.Timeout)
		select {
		case <-ctx.Done():
			s.publish()
			return s.finish(EndReasonCancelled, startedAt), ctx.Err()

		case cmd, ok := <-commands:
			if !ok || cmd == CommandQuit {
				s.publish()
				return s.finish(EndReasonQuit, startedAt), nil
			}
			s.dispatch(cmd)

		case <-expired:
			action := s.engine.HandleTimeout()
			s.logger.Debug("timer expired", slog.String("action", action.String()))
		}
	}
}

func (s *Session) dispatch(cmd Command) {
	switch cmd {
	case CommandMoveLeft:
		s.engine.MoveLeft()
	case CommandMoveRight:
		s.engine.MoveRight()
	case CommandMoveDown:
		s.engine.MoveDown()
	case CommandDrop:
		s.engine.DropToBottom()
	case CommandRotateClockwise:
		s.engine.RotateClockwise()
	case CommandRotateCounterClockwise:
		s.engine.RotateCounterClockwise()
	case CommandHold:
		s.engine.UseSpare()
	default:
		s.logger.Warn("ignoring unknown command", slog.Int("command", int(cmd)))
	}
}

func (s *Session) publish() tetris.Snapshot {
	snap := s.engine.Snapshot()
	s.mu.Lock()
	s.snapshot = snap
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	return snap
}

// finish builds the result. The final snapshot must already be published.
func (s *Session) finish(reason EndReason, startedAt time.Time) Result {
	result := Result{
		Reason:       reason,
		Score:        s.engine.Score(),
		LastCombo:    s.engine.LastCombo(),
		LinesCleared: s.engine.LinesCleared(),
		PiecesPlaced: s.engine.PiecesPlaced(),
		StartedAt:    startedAt,
		EndedAt:      s.clock.Now(),
	}
	s.logger.Info("session finished",
		slog.String("reason", reason.String()),
		slog.Int("score", result.Score),
		slog.Int("lines_cleared", result.LinesCleared),
		slog.Int("pieces_placed", result.PiecesPlaced),
	)
	return result
}
