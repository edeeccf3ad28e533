package redis

import (
	"fmt"

	"github.com/mcoot/tetris-go/internal/model"
)

// Key prefix for all score data
const keyPrefix = "tetris"

// scoreKey returns the Redis key for a ScoreRecord
func scoreKey(id model.ScoreID) string {
	return fmt.Sprintf("%s:score:%s", keyPrefix, id)
}

// leaderboardKey returns the Redis key for the ZSET of score IDs by score
func leaderboardKey() string {
	return fmt.Sprintf("%s:idx:leaderboard", keyPrefix)
}
