package tetris

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/tetris-go/internal/config"
	"github.com/mcoot/tetris-go/internal/dependencies/clock"
	"github.com/mcoot/tetris-go/internal/dependencies/random"
	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/services/timing"
)

// kickOffsets are the horizontal shifts tried, in order, after a rotation
var kickOffsets = [...]int{0, -1, 1, -2, 2}

// TimeoutAction is what HandleTimeout did when the input wait expired
type TimeoutAction int

const (
	// TimeoutNone means the game was already over
	TimeoutNone TimeoutAction = iota
	// TimeoutGravity means the piece moved down one row
	TimeoutGravity
	// TimeoutLock means the grounded piece was locked into the pile
	TimeoutLock
	// TimeoutGrace means the grounded piece used up one tick of grace
	TimeoutGrace
)

func (a TimeoutAction) String() string {
	switch a {
	case TimeoutGravity:
		return "gravity"
	case TimeoutLock:
		return "lock"
	case TimeoutGrace:
		return "grace"
	default:
		return "none"
	}
}

// Engine runs one game: the falling piece, the next and spare pieces, the
// pile, scoring and gravity.
//
// Engine is not safe for concurrent use. A single owner (the session loop)
// issues every command; readers take a Snapshot.
type Engine struct {
	cfg         config.Config
	columns     int
	rows        int
	spawnColumn int

	random random.Random
	clock  clock.Clock
	timer  *timing.Manager
	logger *slog.Logger

	current   *model.Piece
	next      *model.Piece
	spare     *model.Piece
	projected *model.Piece
	pile      *model.Board

	spareUsed    bool
	score        int
	lastCombo    int
	linesCleared int
	piecesPlaced int
}

// New creates an engine with an empty pile and three random pieces: the
// current one at the spawn position, then next, then spare.
func New(cfg config.Config, clk clock.Clock, rnd random.Random, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		columns:     cfg.Columns(),
		rows:        cfg.Rows(),
		spawnColumn: cfg.SpawnColumn(),
		random:      rnd,
		clock:       clk,
		timer:       timing.New(cfg, clk),
		logger:      logger,
		pile:        model.NewBoard(cfg.Columns(), cfg.Rows()),
	}
	e.current = model.NewRandomPiece(rnd, 0, 0)
	e.next = model.NewRandomPiece(rnd, 0, 0)
	e.spare = model.NewRandomPiece(rnd, 0, 0)
	e.putInStartingPosition()
	e.project()

	logger.Debug("engine created",
		slog.Int("columns", e.columns),
		slog.Int("rows", e.rows),
		slog.String("current", e.current.Kind().String()),
	)
	return e, nil
}

// Columns returns the board width
func (e *Engine) Columns() int {
	return e.columns
}

// Rows returns the board height
func (e *Engine) Rows() int {
	return e.rows
}

// MoveLeft shifts the current piece one column left if it fits
func (e *Engine) MoveLeft() {
	e.shift(-1)
}

// MoveRight shifts the current piece one column right if it fits
func (e *Engine) MoveRight() {
	e.shift(1)
}

func (e *Engine) shift(dx int) {
	if e.IsOver() || e.collides(e.current, dx, 0) {
		return
	}
	e.current.AnchorX += dx
	e.project()
}

// MoveDown moves the current piece one row down and restarts the gravity
// clock. Resting pieces are left alone.
func (e *Engine) MoveDown() {
	if e.IsOver() || !e.CanMoveDown() {
		return
	}
	e.timer.Tick()
	e.current.MoveDownUnsafe()
}

// DropToBottom moves the current piece as far down as it goes and locks it
func (e *Engine) DropToBottom() {
	if e.IsOver() {
		return
	}
	for e.CanMoveDown() {
		e.current.MoveDownUnsafe()
	}
	e.FinishTurn()
}

// RotateClockwise rotates the current piece, kicking it sideways if needed
func (e *Engine) RotateClockwise() {
	e.rotate(true)
}

// RotateCounterClockwise rotates the current piece, kicking it sideways if
// needed
func (e *Engine) RotateCounterClockwise() {
	e.rotate(false)
}

// rotate commits the first kick offset at which the rotated piece fits.
// When none fit the piece is left as it was.
func (e *Engine) rotate(clockwise bool) {
	if e.IsOver() {
		return
	}
	candidate := e.current.Clone()
	if clockwise {
		candidate.RotateClockwise()
	} else {
		candidate.RotateCounterClockwise()
	}

	for _, dx := range kickOffsets {
		if e.collides(candidate, dx, 0) {
			continue
		}
		candidate.AnchorX += dx
		e.current = candidate
		e.project()
		return
	}
}

// UseSpare swaps the current piece with the spare one. Allowed once per turn.
func (e *Engine) UseSpare() {
	if e.IsOver() || e.spareUsed {
		return
	}
	e.current.SwapFigures(e.spare)
	e.spare.Refresh()
	e.putInStartingPosition()
	e.project()
	e.spareUsed = true
}

// FinishTurn locks the current piece into the pile, clears full rows,
// promotes the next piece and scores the turn
func (e *Engine) FinishTurn() {
	if e.IsOver() {
		return
	}
	e.pile.Add(e.current)
	cleared := e.pile.CleanupFullLines()
	e.piecesPlaced++

	e.current.SwapFigures(e.next)
	e.next.Randomize(e.random)
	e.putInStartingPosition()
	e.project()
	e.spareUsed = false

	e.score += cleared * e.columns
	if cleared > 1 {
		e.score += cleared * cleared
		e.lastCombo = cleared
	}
	e.linesCleared += cleared

	e.timer.UpdateTickSpeed(cleared)
	e.timer.Tick()

	if cleared > 0 {
		e.logger.Debug("rows cleared",
			slog.Int("cleared_rows", cleared),
			slog.Int("score", e.score),
			slog.Duration("tick_time", e.timer.TickTime()),
		)
	}
	if e.IsOver() {
		e.logger.Info("game over",
			slog.Int("score", e.score),
			slog.Int("lines_cleared", e.linesCleared),
			slog.Int("pieces_placed", e.piecesPlaced),
		)
	}
}

// HandleTimeout applies the timer rule once the input wait expires:
// gravity if the piece can descend, otherwise lock once grace is spent,
// otherwise spend grace.
func (e *Engine) HandleTimeout() TimeoutAction {
	switch {
	case e.IsOver():
		return TimeoutNone
	case e.CanMoveDown():
		e.MoveDown()
		return TimeoutGravity
	case e.ShouldFinishTurn():
		e.FinishTurn()
		return TimeoutLock
	default:
		e.AdvanceStuck()
		return TimeoutGrace
	}
}

// IsOver reports whether the current piece overlaps the pile or the walls
func (e *Engine) IsOver() bool {
	return e.collides(e.current, 0, 0)
}

// CanMoveDown reports whether the current piece has room below it
func (e *Engine) CanMoveDown() bool {
	return !e.touchesOnBottom(e.current)
}

// Timeout returns how long to wait for input before the next timer action
func (e *Engine) Timeout() time.Duration {
	return e.timer.Timeout()
}

// ShouldFinishTurn reports whether a grounded piece must lock now
func (e *Engine) ShouldFinishTurn() bool {
	return e.timer.ShouldFinishTurn()
}

// AdvanceStuck spends one tick of the grounded piece's grace
func (e *Engine) AdvanceStuck() {
	e.timer.AdvanceStuck()
}

// TickSpeed returns the current gravity interval
func (e *Engine) TickSpeed() time.Duration {
	return e.timer.TickTime()
}

// Score returns the points earned so far
func (e *Engine) Score() int {
	return e.score
}

// LastCombo returns the row count of the last multi-row clear
func (e *Engine) LastCombo() int {
	return e.lastCombo
}

// LinesCleared returns the total number of rows cleared
func (e *Engine) LinesCleared() int {
	return e.linesCleared
}

// PiecesPlaced returns how many pieces have been locked
func (e *Engine) PiecesPlaced() int {
	return e.piecesPlaced
}

// SpareUsed reports whether the spare was already taken this turn
func (e *Engine) SpareUsed() bool {
	return e.spareUsed
}

func (e *Engine) String() string {
	return fmt.Sprintf("tetris(%dx%d score=%d over=%t)", e.columns, e.rows, e.score, e.IsOver())
}

func (e *Engine) putInStartingPosition() {
	e.current.PlaceAt(e.spawnColumn, 0)
}

// project recomputes the ghost: the current piece dropped as far as it goes
func (e *Engine) project() {
	ghost := e.current.Clone()
	for !e.touchesOnBottom(ghost) {
		ghost.MoveDownUnsafe()
	}
	e.projected = ghost
}

func (e *Engine) touchesOnBottom(piece *model.Piece) bool {
	return e.collides(piece, 0, 1)
}

// collides reports whether the piece, shifted by (dx, dy), leaves the board
// or lands on an occupied pile cell
func (e *Engine) collides(piece *model.Piece, dx, dy int) bool {
	for _, pos := range piece.PositionsUnsafe() {
		row, col := pos.Row+dy, pos.Col+dx
		if row < 0 || col < 0 || row >= e.rows || col >= e.columns {
			return true
		}
		if e.pile.Contains(row, col) {
			return true
		}
	}
	return false
}
