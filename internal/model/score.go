package model

import "time"

// ScoreID uniquely identifies a recorded score
type ScoreID string

// ScoreRecord is the final outcome of one finished game
type ScoreRecord struct {
	ID           ScoreID
	Player       string
	Score        int
	LastCombo    int
	LinesCleared int
	PiecesPlaced int
	StartedAt    time.Time
	EndedAt      time.Time
}

// Duration returns how long the game lasted
func (r *ScoreRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// RanksAbove orders records for the leaderboard: higher score first,
// earlier finish wins a tie.
func (r *ScoreRecord) RanksAbove(other *ScoreRecord) bool {
	if r.Score != other.Score {
		return r.Score > other.Score
	}
	if !r.EndedAt.Equal(other.EndedAt) {
		return r.EndedAt.Before(other.EndedAt)
	}
	return r.ID < other.ID
}
