package tetris

import (
	"time"

	"github.com/mcoot/tetris-go/internal/model"
)

// PieceView is a read-only copy of a piece's shape and cells
type PieceView struct {
	Kind  model.ShapeKind
	Color model.Color
	// Cells are board coordinates for the current and projected pieces and
	// template coordinates for the next and spare previews
	Cells []model.Position
}

// Snapshot is an immutable copy of everything a front-end needs to draw
type Snapshot struct {
	Columns int
	Rows    int

	Current   PieceView
	Projected PieceView
	Next      PieceView
	Spare     PieceView

	Pile []model.Cell
	// HighlightRows are the rows the projected piece would complete
	HighlightRows []int

	Score        int
	LastCombo    int
	LinesCleared int
	PiecesPlaced int
	SpareUsed    bool

	TickSpeed time.Duration
	Timeout   time.Duration
	Over      bool
}

// Snapshot copies the engine state
func (e *Engine) Snapshot() Snapshot {
	projected := e.projected.PositionsUnsafe()

	return Snapshot{
		Columns:       e.columns,
		Rows:          e.rows,
		Current:       boardView(e.current),
		Projected:     boardView(e.projected),
		Next:          previewView(e.next),
		Spare:         previewView(e.spare),
		Pile:          e.pile.Cells(),
		HighlightRows: e.pile.CompleteLinesWith(projected[:]),
		Score:         e.score,
		LastCombo:     e.lastCombo,
		LinesCleared:  e.linesCleared,
		PiecesPlaced:  e.piecesPlaced,
		SpareUsed:     e.spareUsed,
		TickSpeed:     e.timer.TickTime(),
		Timeout:       e.timer.Timeout(),
		Over:          e.IsOver(),
	}
}

func boardView(p *model.Piece) PieceView {
	positions := p.PositionsUnsafe()
	return PieceView{
		Kind:  p.Kind(),
		Color: p.Color(),
		Cells: positions[:],
	}
}

func previewView(p *model.Piece) PieceView {
	preview := p.Clone()
	preview.PlaceAt(0, 0)
	return boardView(preview)
}
