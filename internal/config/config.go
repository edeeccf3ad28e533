package config

import (
	"fmt"
	"time"

	"github.com/mcoot/tetris-go/internal/model"
)

// Build-time engine constants
const (
	PlayfieldWidth  = 74
	PlayfieldHeight = 54
	BlockHeight     = 2
	BlockWidth      = BlockHeight * 2
	LeftThreshold   = 0

	InitialTickTime = 1000 * time.Millisecond
	SpeedUpPerRow   = 20 * time.Millisecond
	MinTickTime     = 20 * time.Millisecond
)

// Config holds the immutable engine configuration.
// It is built once at startup and passed to every component that needs the
// board geometry or the timing constants.
type Config struct {
	// Playfield size in terminal cells
	PlayfieldWidth  int
	PlayfieldHeight int

	// Size of one block in terminal cells
	BlockWidth  int
	BlockHeight int

	// InitialTickTime is the gravity interval at game start
	InitialTickTime time.Duration
	// SpeedUpPerRow is subtracted from the tick time for every cleared row
	SpeedUpPerRow time.Duration
	// MinTickTime is the floor for the tick time
	MinTickTime time.Duration
	// GraceBudget is how long a grounded piece may linger before it locks
	GraceBudget time.Duration
}

// Default returns the standard configuration
func Default() Config {
	return Config{
		PlayfieldWidth:  PlayfieldWidth,
		PlayfieldHeight: PlayfieldHeight,
		BlockWidth:      BlockWidth,
		BlockHeight:     BlockHeight,
		InitialTickTime: InitialTickTime,
		SpeedUpPerRow:   SpeedUpPerRow,
		MinTickTime:     MinTickTime,
		GraceBudget:     InitialTickTime,
	}
}

// Columns returns the board width in blocks
func (c Config) Columns() int {
	return c.PlayfieldWidth / c.BlockWidth
}

// Rows returns the board height in blocks
func (c Config) Rows() int {
	return c.PlayfieldHeight / c.BlockHeight
}

// SpawnColumn returns the anchor column new pieces start at
func (c Config) SpawnColumn() int {
	return (LeftThreshold+c.Columns())/2 - 2
}

// Validate checks that the configuration describes a playable board.
// Pieces use templates up to 4x4, so the board must be at least that big.
func (c Config) Validate() error {
	if c.BlockWidth <= 0 || c.BlockHeight <= 0 {
		return fmt.Errorf("%w: block size must be positive", model.ErrInvalidConfig)
	}
	if c.Columns() < 4 || c.Rows() < 4 {
		return fmt.Errorf("%w: board must be at least 4x4 blocks, got %dx%d",
			model.ErrInvalidConfig, c.Columns(), c.Rows())
	}
	if c.MinTickTime <= 0 {
		return fmt.Errorf("%w: minimum tick time must be positive", model.ErrInvalidConfig)
	}
	if c.InitialTickTime < c.MinTickTime {
		return fmt.Errorf("%w: initial tick time below minimum", model.ErrInvalidConfig)
	}
	if c.SpeedUpPerRow < 0 || c.GraceBudget < 0 {
		return fmt.Errorf("%w: durations must not be negative", model.ErrInvalidConfig)
	}
	return nil
}
