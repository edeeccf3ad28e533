package storage

import (
	"context"

	"github.com/mcoot/tetris-go/internal/model"
)

// Storage defines the interface for score history persistence
type Storage interface {
	// SaveScore stores a finished game's record, replacing any record with
	// the same ID
	SaveScore(ctx context.Context, record *model.ScoreRecord) error
	// GetScore returns model.ErrScoreNotFound when no record has the ID
	GetScore(ctx context.Context, id model.ScoreID) (*model.ScoreRecord, error)
	DeleteScore(ctx context.Context, id model.ScoreID) error

	// TopScores returns at most limit records, best first (see
	// model.ScoreRecord.RanksAbove)
	TopScores(ctx context.Context, limit int) ([]*model.ScoreRecord, error)
	CountScores(ctx context.Context) (int, error)
}
