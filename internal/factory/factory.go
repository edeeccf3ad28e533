package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/tetris-go/internal/config"
	"github.com/mcoot/tetris-go/internal/dependencies/clock"
	"github.com/mcoot/tetris-go/internal/dependencies/random"
	"github.com/mcoot/tetris-go/internal/services/scores"
	"github.com/mcoot/tetris-go/internal/services/session"
	"github.com/mcoot/tetris-go/internal/services/tetris"
	"github.com/mcoot/tetris-go/internal/storage"
	"github.com/mcoot/tetris-go/internal/storage/memory"
	redisstorage "github.com/mcoot/tetris-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Logger *slog.Logger

	// EngineConfig is handed to every engine the app creates
	EngineConfig config.Config

	// Services
	ScoreService *scores.Service
	// Tracker exposes the running session to the HTTP API
	Tracker *session.Tracker
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// EngineConfig overrides the engine configuration (optional)
	// If nil, config.Default() is used
	EngineConfig *config.Config
	// Seed makes piece selection reproducible (optional)
	// If zero, the random source is seeded from crypto/rand
	Seed uint64
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	engineCfg := config.Default()
	if cfg.EngineConfig != nil {
		engineCfg = *cfg.EngineConfig
	}
	if err := engineCfg.Validate(); err != nil {
		return nil, err
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	var rnd *random.Source
	if cfg.Seed != 0 {
		rnd = random.NewSeeded(cfg.Seed)
	} else {
		rnd = random.New()
	}
	logger.Debug("app created",
		slog.String("storage", storageType),
		slog.Uint64("seed", rnd.Seed()),
	)

	return newWithDependencies(store, clk, rnd, engineCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, engineCfg config.Config, logger *slog.Logger) *App {
	return &App{
		Storage:      store,
		Clock:        clk,
		Random:       rnd,
		Logger:       logger,
		EngineConfig: engineCfg,
		ScoreService: scores.New(store, rnd, logger),
		Tracker:      session.NewTracker(),
	}
}

// NewSession creates a fresh game. The app's random source is shared, so
// only one session should run at a time.
func (a *App) NewSession() (*session.Session, error) {
	engine, err := tetris.New(a.EngineConfig, a.Clock, a.Random, a.Logger)
	if err != nil {
		return nil, err
	}
	return session.New(engine, a.Clock, a.Logger), nil
}

// Close releases the storage backend if it holds resources
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
