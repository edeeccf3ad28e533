package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu     sync.RWMutex
	scores map[model.ScoreID]model.ScoreRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		scores: make(map[model.ScoreID]model.ScoreRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveScore(ctx context.Context, record *model.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[record.ID] = *record
	return nil
}

func (s *Storage) GetScore(ctx context.Context, id model.ScoreID) (*model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.scores[id]
	if !ok {
		return nil, model.ErrScoreNotFound
	}
	return &record, nil
}

func (s *Storage) DeleteScore(ctx context.Context, id model.ScoreID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scores, id)
	return nil
}

func (s *Storage) TopScores(ctx context.Context, limit int) ([]*model.ScoreRecord, error) {
	if limit <= 0 {
		return []*model.ScoreRecord{}, nil
	}

	s.mu.RLock()
	records := make([]*model.ScoreRecord, 0, len(s.scores))
	for _, record := range s.scores {
		r := record
		records = append(records, &r)
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].RanksAbove(records[j])
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *Storage) CountScores(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scores), nil
}
