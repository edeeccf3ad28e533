package response

import (
	"time"

	"github.com/mcoot/tetris-go/internal/model"
	"github.com/mcoot/tetris-go/internal/services/tetris"
)

// Score represents a recorded game in API responses
type Score struct {
	ID           string    `json:"id"`
	Player       string    `json:"player"`
	Score        int       `json:"score"`
	LastCombo    int       `json:"last_combo"`
	LinesCleared int       `json:"lines_cleared"`
	PiecesPlaced int       `json:"pieces_placed"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
	DurationMS   int64     `json:"duration_ms"`
}

// ScoreFromModel converts a model.ScoreRecord to a response Score
func ScoreFromModel(r *model.ScoreRecord) Score {
	return Score{
		ID:           string(r.ID),
		Player:       r.Player,
		Score:        r.Score,
		LastCombo:    r.LastCombo,
		LinesCleared: r.LinesCleared,
		PiecesPlaced: r.PiecesPlaced,
		StartedAt:    r.StartedAt,
		EndedAt:      r.EndedAt,
		DurationMS:   r.Duration().Milliseconds(),
	}
}

// ScoreList is the leaderboard response
type ScoreList struct {
	Scores []Score `json:"scores"`
	Total  int     `json:"total"`
}

// ScoreListFromModel converts ranked records; total is the number of
// recorded games, not the length of the page
func ScoreListFromModel(records []*model.ScoreRecord, total int) ScoreList {
	scores := make([]Score, len(records))
	for i, r := range records {
		scores[i] = ScoreFromModel(r)
	}
	return ScoreList{
		Scores: scores,
		Total:  total,
	}
}

// Position is a board coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Piece represents a tetromino in API responses
type Piece struct {
	Kind  string     `json:"kind"`
	Color string     `json:"color"`
	Cells []Position `json:"cells"`
}

func pieceFromView(v tetris.PieceView) Piece {
	cells := make([]Position, len(v.Cells))
	for i, p := range v.Cells {
		cells[i] = Position{Row: p.Row, Col: p.Col}
	}
	return Piece{
		Kind:  v.Kind.String(),
		Color: v.Color.String(),
		Cells: cells,
	}
}

// Cell is an occupied cell of the pile
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Color string `json:"color"`
}

// GameSnapshot is the live view of the game being played
type GameSnapshot struct {
	Columns       int    `json:"columns"`
	Rows          int    `json:"rows"`
	Current       Piece  `json:"current"`
	Projected     Piece  `json:"projected"`
	Next          Piece  `json:"next"`
	Spare         Piece  `json:"spare"`
	Pile          []Cell `json:"pile"`
	HighlightRows []int  `json:"highlight_rows"`
	Score         int    `json:"score"`
	LastCombo     int    `json:"last_combo"`
	LinesCleared  int    `json:"lines_cleared"`
	PiecesPlaced  int    `json:"pieces_placed"`
	SpareUsed     bool   `json:"spare_used"`
	TickSpeedMS   int64  `json:"tick_speed_ms"`
	Over          bool   `json:"over"`
}

// GameSnapshotFromEngine converts an engine snapshot
func GameSnapshotFromEngine(s tetris.Snapshot) GameSnapshot {
	pile := make([]Cell, len(s.Pile))
	for i, c := range s.Pile {
		pile[i] = Cell{Row: c.Row, Col: c.Col, Color: c.Color.String()}
	}
	highlight := s.HighlightRows
	if highlight == nil {
		highlight = []int{}
	}

	return GameSnapshot{
		Columns:       s.Columns,
		Rows:          s.Rows,
		Current:       pieceFromView(s.Current),
		Projected:     pieceFromView(s.Projected),
		Next:          pieceFromView(s.Next),
		Spare:         pieceFromView(s.Spare),
		Pile:          pile,
		HighlightRows: highlight,
		Score:         s.Score,
		LastCombo:     s.LastCombo,
		LinesCleared:  s.LinesCleared,
		PiecesPlaced:  s.PiecesPlaced,
		SpareUsed:     s.SpareUsed,
		TickSpeedMS:   s.TickSpeed.Milliseconds(),
		Over:          s.Over,
	}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
