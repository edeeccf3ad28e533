package scores

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcoot/tetris-go/internal/dependencies/random"
	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/services/session"
	"github.com/mcoot/tetris-go/internal/storage"
)

const (
	ScoreIDLength       = 12
	ScoreIDAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultPlayerName   = "anonymous"
	MaxPlayerNameLength = 32

	DefaultLimit = 10
	MaxLimit     = 100
)

// Service records finished games and serves the leaderboard
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// New creates a new score Service
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

// Record stores the outcome of a finished session under a fresh ID
func (s *Service) Record(ctx context.Context, player string, result session.Result) (*model.ScoreRecord, error) {
	name, err := NormalizePlayerName(player)
	if err != nil {
		return nil, err
	}

	var id model.ScoreID
	for {
		id = model.ScoreID(s.random.String(ScoreIDLength, ScoreIDAlphabet))
		_, err := s.storage.GetScore(ctx, id)
		if errors.Is(err, model.ErrScoreNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	record := &model.ScoreRecord{
		ID:           id,
		Player:       name,
		Score:        result.Score,
		LastCombo:    result.LastCombo,
		LinesCleared: result.LinesCleared,
		PiecesPlaced: result.PiecesPlaced,
		StartedAt:    result.StartedAt,
		EndedAt:      result.EndedAt,
	}
	if err := s.storage.SaveScore(ctx, record); err != nil {
		return nil, fmt.Errorf("saving score: %w", err)
	}

	s.logger.Info("score recorded",
		slog.String("score_id", string(id)),
		slog.String("player", name),
		slog.Int("score", record.Score),
		slog.String("reason", result.Reason.String()),
	)
	return record, nil
}

// Get returns a single record
func (s *Service) Get(ctx context.Context, id model.ScoreID) (*model.ScoreRecord, error) {
	return s.storage.GetScore(ctx, id)
}

// Top returns the leaderboard. A non-positive limit means DefaultLimit;
// larger limits are capped at MaxLimit.
func (s *Service) Top(ctx context.Context, limit int) ([]*model.ScoreRecord, error) {
	return s.storage.TopScores(ctx, ClampLimit(limit))
}

// Count returns the number of recorded games
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.CountScores(ctx)
}

// ClampLimit maps a requested leaderboard size into [1, MaxLimit]
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// NormalizePlayerName trims the name and applies the default. Names that
// are too long or contain control characters are rejected.
func NormalizePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName, nil
	}
	if utf8.RuneCountInString(name) > MaxPlayerNameLength {
		return "", fmt.Errorf("%w: longer than %d characters", model.ErrInvalidPlayerName, MaxPlayerNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: contains control characters", model.ErrInvalidPlayerName)
		}
	}
	return name, nil
}
