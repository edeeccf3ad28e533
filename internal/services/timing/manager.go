package timing

import (
	"time"

	"github.com/mcoot/tetris-go/internal/config"
	"github.com/mcoot/tetris-go/internal/dependencies/clock"
)

// Manager tracks the gravity interval and the lock delay of a grounded piece.
//
// The gravity clock restarts on every real descent or lock (Tick). When the
// timer fires and the piece cannot descend, AdvanceStuck spends one tick of
// the grace budget; once the remaining budget no longer covers a tick the
// piece must lock (ShouldFinishTurn).
type Manager struct {
	clock clock.Clock

	tickTime    time.Duration
	speedUp     time.Duration
	minTickTime time.Duration
	graceBudget time.Duration

	last   time.Time
	sticky time.Duration
	offset time.Duration
}

// New creates a Manager with a full grace budget and the gravity clock
// started now
func New(cfg config.Config, clk clock.Clock) *Manager {
	return &Manager{
		clock:       clk,
		tickTime:    cfg.InitialTickTime,
		speedUp:     cfg.SpeedUpPerRow,
		minTickTime: cfg.MinTickTime,
		graceBudget: cfg.GraceBudget,
		last:        clk.Now(),
		sticky:      cfg.GraceBudget,
	}
}

// Tick restarts the gravity clock and refills the grace budget
func (m *Manager) Tick() {
	m.last = m.clock.Now()
	m.sticky = m.graceBudget
	m.offset = 0
}

// Timeout returns how long the driver may wait for input before forcing a
// timer action. Never negative.
func (m *Manager) Timeout() time.Duration {
	used := m.offset + clock.Since(m.clock, m.last)
	if used >= m.tickTime {
		return 0
	}
	return m.tickTime - used
}

// ShouldFinishTurn reports whether the grace budget is exhausted
func (m *Manager) ShouldFinishTurn() bool {
	return m.sticky <= m.tickTime
}

// AdvanceStuck spends one tick of grace. When less than a tick of grace
// remains, the shortfall is carried into the next Timeout so the final
// window is shortened instead of granted in full.
func (m *Manager) AdvanceStuck() {
	m.sticky -= m.tickTime
	if m.sticky < 0 {
		m.sticky = 0
	}
	if m.sticky < m.tickTime {
		m.offset = m.tickTime - m.sticky
	}
	m.last = m.clock.Now()
}

// UpdateTickSpeed shortens the gravity interval for cleared rows, never
// going below the configured floor
func (m *Manager) UpdateTickSpeed(clearedRows int) {
	quickening := m.speedUp * time.Duration(clearedRows)
	if m.tickTime >= quickening+m.minTickTime {
		m.tickTime -= quickening
		return
	}
	m.tickTime = m.minTickTime
}

// TickTime returns the current gravity interval
func (m *Manager) TickTime() time.Duration {
	return m.tickTime
}

// GraceRemaining returns the unspent grace budget
func (m *Manager) GraceRemaining() time.Duration {
	return m.sticky
}
