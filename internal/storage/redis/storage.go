package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Records are JSON strings; the leaderboard is a sorted set of IDs keyed
// by score.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveScore(ctx context.Context, record *model.ScoreRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	// Record and index are written in one transaction
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, scoreKey(record.ID), data, s.cfg.ScoreTTL)
	pipe.ZAdd(ctx, leaderboardKey(), redis.Z{
		Score:  float64(record.Score),
		Member: string(record.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetScore(ctx context.Context, id model.ScoreID) (*model.ScoreRecord, error) {
	data, err := s.client.Get(ctx, scoreKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrScoreNotFound
		}
		return nil, err
	}

	var record model.ScoreRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) DeleteScore(ctx context.Context, id model.ScoreID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, scoreKey(id))
	pipe.ZRem(ctx, leaderboardKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// TopScores reads the best IDs from the sorted set. Every ID tied with the
// last one is fetched too, so ties are broken by RanksAbove rather than by
// member order.
func (s *Storage) TopScores(ctx context.Context, limit int) ([]*model.ScoreRecord, error) {
	if limit <= 0 {
		return []*model.ScoreRecord{}, nil
	}

	top, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return []*model.ScoreRecord{}, nil
	}

	cutoff := top[len(top)-1].Score
	ids, err := s.client.ZRevRangeByScore(ctx, leaderboardKey(), &redis.ZRangeBy{
		Min: strconv.FormatFloat(cutoff, 'f', -1, 64),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = scoreKey(model.ScoreID(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.ScoreRecord, 0, len(values))
	var expired []interface{}
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			expired = append(expired, ids[i]) // record TTL elapsed
			continue
		}
		var record model.ScoreRecord
		if err := json.Unmarshal([]byte(str), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}

	if len(expired) > 0 {
		if err := s.client.ZRem(ctx, leaderboardKey(), expired...).Err(); err != nil {
			return nil, err
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RanksAbove(records[j])
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *Storage) CountScores(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, leaderboardKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
