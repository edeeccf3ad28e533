package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mcoot/tetris-go/internal/factory"
	redisstorage "github.com/mcoot/tetris-go/internal/storage/redis"
)

// Config holds CLI configuration
type Config struct {
	Storage   string
	RedisURL  string
	LogFile   string
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Storage:   getEnvOrDefault("TETRIS_STORAGE", factory.StorageTypeMemory),
		RedisURL:  os.Getenv("TETRIS_REDIS_URL"),
		LogFile:   os.Getenv("TETRIS_LOG_FILE"),
		ServerURL: os.Getenv("TETRIS_SERVER"),
		Output:    "text",
		Verbose:   false,
	}
}

// Validate checks the flag combination before any command runs
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", c.Output)
	}
	switch c.Storage {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("--redis-url (or TETRIS_REDIS_URL) is required with --storage=redis")
		}
	default:
		return fmt.Errorf("unknown storage %q (want memory or redis)", c.Storage)
	}
	return nil
}

// NewLogger builds the JSON logger for a command. Logs go to the log file
// when one is configured and to fallback otherwise. The returned close
// function must be called when the command finishes.
func (c *Config) NewLogger(fallback io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}

	w := fallback
	closeFn := func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

// FactoryConfig translates the CLI flags into application wiring
func (c *Config) FactoryConfig(logger *slog.Logger, seed uint64) factory.Config {
	fc := factory.Config{
		Logger:      logger,
		StorageType: c.Storage,
		Seed:        seed,
	}
	if c.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	}
	return fc
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
